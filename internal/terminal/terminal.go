// Package terminal provides the screen façade used by the editor.
//
// Every mutating operation is queued and only becomes visible when Execute
// flushes the queue, so a full frame can be composed and then revealed in a
// single write. Implementations exist for raw ANSI output, tcell screens and
// an in-memory recorder used by tests.
package terminal

import "math"

// MaxCoord is the largest caret coordinate the output protocol can address.
const MaxCoord = math.MaxUint16

// Size is a snapshot of the terminal dimensions at query time.
type Size struct {
	Width  int
	Height int
}

// Position is a caret location in viewport coordinates, origin top-left.
// The zero value is the origin.
type Position struct {
	Column int
	Row    int
}

// Terminal defines the capabilities the editor needs from a terminal.
type Terminal interface {
	// Initialize enables raw mode, clears the screen and homes the caret.
	// Must be called once before any other method.
	Initialize() error

	// Terminate flushes pending output and disables raw mode.
	// Must be called once, on every exit path.
	Terminate() error

	// ClearScreen queues a full-screen clear.
	ClearScreen() error

	// ClearLine queues a clear of the line under the caret.
	ClearLine() error

	// MoveCaretTo queues a caret move. Coordinates are truncated with
	// ProtocolCoord.
	MoveCaretTo(pos Position) error

	// HideCaret queues hiding the caret.
	HideCaret() error

	// ShowCaret queues showing the caret.
	ShowCaret() error

	// Print queues text. Operands are formatted as with fmt.Sprint.
	Print(a ...any) error

	// Size returns the current terminal dimensions. Not cached.
	Size() (Size, error)

	// Execute flushes all queued operations in order.
	Execute() error

	// ReadEvent blocks until one input event is available.
	ReadEvent() (Event, error)
}

// ProtocolCoord converts a coordinate to the range the output protocol can
// address. Negative values become 0 and values above MaxCoord become
// MaxCoord. The conversion is lossy on purpose and never fails.
func ProtocolCoord(n int) uint16 {
	if n < 0 {
		return 0
	}
	if n > MaxCoord {
		return MaxCoord
	}
	return uint16(n)
}

var (
	_ Terminal = (*ANSI)(nil)
	_ Terminal = (*Tcell)(nil)
	_ Terminal = (*Recorder)(nil)
)
