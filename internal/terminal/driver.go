package terminal

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a non-terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Driver is the raw-mode handle behind the ANSI terminal.
type Driver interface {
	// EnableRawMode switches input to raw mode, remembering the prior state.
	EnableRawMode() error

	// DisableRawMode restores the state saved by EnableRawMode.
	// It is a no-op when raw mode is not enabled.
	DisableRawMode() error

	// Size returns the current terminal dimensions.
	Size() (width, height int, err error)
}

type termDriver struct {
	inFd    int
	outFd   int
	oldTerm *term.State
}

// NewDriver returns a Driver for the given input and output files.
func NewDriver(in, out *os.File) Driver {
	return &termDriver{
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (d *termDriver) EnableRawMode() error {
	if !term.IsTerminal(d.inFd) {
		return ErrNotTerminal
	}

	old, err := term.MakeRaw(d.inFd)
	if err != nil {
		return err
	}
	d.oldTerm = old
	return nil
}

func (d *termDriver) DisableRawMode() error {
	if d.oldTerm == nil {
		return nil
	}
	err := term.Restore(d.inFd, d.oldTerm)
	d.oldTerm = nil
	return err
}

func (d *termDriver) Size() (int, int, error) {
	return term.GetSize(d.outFd)
}
