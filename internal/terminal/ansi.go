package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// readChunk is the size of a single input read.
const readChunk = 256

// ANSI implements Terminal by emitting VT100/xterm control sequences.
// Output is queued in memory and written with a single Write per Execute.
type ANSI struct {
	driver Driver
	in     io.Reader
	out    io.Writer

	queue   bytes.Buffer
	pending []byte
	readBuf []byte
}

// NewANSI creates an ANSI terminal on the given files.
func NewANSI(in, out *os.File) *ANSI {
	return NewANSIWithDriver(NewDriver(in, out), in, out)
}

// NewANSIWithDriver creates an ANSI terminal with a custom raw-mode driver.
func NewANSIWithDriver(driver Driver, in io.Reader, out io.Writer) *ANSI {
	return &ANSI{
		driver:  driver,
		in:      in,
		out:     out,
		readBuf: make([]byte, readChunk),
	}
}

// Initialize enables raw mode, then clears the screen and homes the caret.
func (a *ANSI) Initialize() error {
	if err := a.driver.EnableRawMode(); err != nil {
		return newIOError("enable raw mode", err)
	}
	if err := a.ClearScreen(); err != nil {
		return err
	}
	if err := a.MoveCaretTo(Position{}); err != nil {
		return err
	}
	return a.Execute()
}

// Terminate flushes pending output and restores the terminal mode. Raw mode
// is disabled even when the flush fails.
func (a *ANSI) Terminate() error {
	flushErr := a.Execute()
	rawErr := newIOError("disable raw mode", a.driver.DisableRawMode())
	return errors.Join(flushErr, rawErr)
}

// ClearScreen queues ED 2.
func (a *ANSI) ClearScreen() error {
	a.queue.Write(csiClearScreen)
	return nil
}

// ClearLine queues EL 2 for the caret line.
func (a *ANSI) ClearLine() error {
	a.queue.Write(csiClearLine)
	return nil
}

// MoveCaretTo queues a CUP sequence for pos.
func (a *ANSI) MoveCaretTo(pos Position) error {
	writeCursorPos(&a.queue, pos)
	return nil
}

// HideCaret queues DECTCEM reset.
func (a *ANSI) HideCaret() error {
	a.queue.Write(csiCursorHide)
	return nil
}

// ShowCaret queues DECTCEM set.
func (a *ANSI) ShowCaret() error {
	a.queue.Write(csiCursorShow)
	return nil
}

// Print queues the operands formatted with fmt.Sprint.
func (a *ANSI) Print(args ...any) error {
	if _, err := fmt.Fprint(&a.queue, args...); err != nil {
		return newIOError("print", err)
	}
	return nil
}

// Size queries the driver for the current window size.
func (a *ANSI) Size() (Size, error) {
	w, h, err := a.driver.Size()
	if err != nil {
		return Size{}, newIOError("size", err)
	}
	return Size{Width: w, Height: h}, nil
}

// Execute writes the queued frame. The queue is discarded even on failure.
func (a *ANSI) Execute() error {
	if a.queue.Len() == 0 {
		return nil
	}
	defer a.queue.Reset()

	if _, err := a.out.Write(a.queue.Bytes()); err != nil {
		return newIOError("execute", err)
	}
	return nil
}

// Pending returns the number of queued, unflushed bytes.
func (a *ANSI) Pending() int {
	return a.queue.Len()
}

// ReadEvent blocks until one event has been decoded from the input.
func (a *ANSI) ReadEvent() (Event, error) {
	for {
		if len(a.pending) > 0 {
			n, ev := parseInput(a.pending)
			if n > 0 {
				a.pending = a.pending[n:]
				if ev.Type != EventNone {
					return ev, nil
				}
				continue
			}
		}

		n, err := a.in.Read(a.readBuf)
		if n > 0 {
			a.pending = append(a.pending, a.readBuf[:n]...)
			continue
		}
		if err != nil {
			return Event{}, newIOError("read input", err)
		}
	}
}
