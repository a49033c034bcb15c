package terminal

import (
	"errors"
	"fmt"
)

// ErrIO is matched by every failure reported by a Terminal.
var ErrIO = errors.New("terminal I/O error")

// IOError records the terminal operation that failed and the driver error.
type IOError struct {
	Op  string // Operation name (e.g. "execute", "size", "enable raw mode")
	Err error  // Underlying driver error
}

// newIOError wraps err, returning nil when err is nil.
func newIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("terminal %s failed", e.Op)
	}
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrIO, the same wrapper, or the wrapped error.
func (e *IOError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrIO {
		return true
	}
	if t, ok := target.(*IOError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
