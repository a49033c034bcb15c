package terminal

import (
	"fmt"
	"io"
	"strings"
)

// CommandKind identifies a queued terminal operation.
type CommandKind int

const (
	CmdClearScreen CommandKind = iota
	CmdClearLine
	CmdMoveCaret
	CmdHideCaret
	CmdShowCaret
	CmdPrint
)

// String returns a readable name for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CmdClearScreen:
		return "clear-screen"
	case CmdClearLine:
		return "clear-line"
	case CmdMoveCaret:
		return "move-caret"
	case CmdHideCaret:
		return "hide-caret"
	case CmdShowCaret:
		return "show-caret"
	case CmdPrint:
		return "print"
	default:
		return "unknown"
	}
}

// Command is one queued operation captured by a Recorder.
type Command struct {
	Kind CommandKind
	Text string   // For CmdPrint
	Pos  Position // For CmdMoveCaret
}

// String renders the command for test failure messages.
func (c Command) String() string {
	switch c.Kind {
	case CmdPrint:
		return fmt.Sprintf("print(%q)", c.Text)
	case CmdMoveCaret:
		return fmt.Sprintf("move-caret(%d,%d)", c.Pos.Column, c.Pos.Row)
	default:
		return c.Kind.String()
	}
}

// Frame is the ordered list of commands revealed by one Execute.
type Frame []Command

// Text concatenates the printed text of the frame.
func (f Frame) Text() string {
	var b strings.Builder
	for _, c := range f {
		if c.Kind == CmdPrint {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Count returns how many commands of the given kind the frame holds.
func (f Frame) Count(kind CommandKind) int {
	n := 0
	for _, c := range f {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Operation names accepted by Recorder.FailOn.
const (
	OpInitialize = "initialize"
	OpTerminate  = "terminate"
	OpSize       = "size"
	OpExecute    = "execute"
	OpRead       = "read input"
)

// Recorder is an in-memory Terminal for tests. It records queued commands
// separately from flushed frames and serves scripted input events.
type Recorder struct {
	size     Size
	events   []Event
	queued   []Command
	frames   []Frame
	failures map[string]error

	rawMode         bool
	initializeCount int
	terminateCount  int
	sizeQueryCount  int
}

// NewRecorder creates a recorder reporting the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		size:     Size{Width: width, Height: height},
		failures: make(map[string]error),
	}
}

// Script appends events to be returned by ReadEvent.
func (r *Recorder) Script(events ...Event) {
	r.events = append(r.events, events...)
}

// FailOn makes the named operation fail with err wrapped in an IOError.
func (r *Recorder) FailOn(op string, err error) {
	r.failures[op] = err
}

// Resize changes the dimensions reported by subsequent Size calls.
func (r *Recorder) Resize(width, height int) {
	r.size = Size{Width: width, Height: height}
}

func (r *Recorder) fail(op string) error {
	if err, ok := r.failures[op]; ok {
		return newIOError(op, err)
	}
	return nil
}

func (r *Recorder) enqueue(c Command) error {
	r.queued = append(r.queued, c)
	return nil
}

// Initialize enters raw mode and records a clear-and-home frame.
func (r *Recorder) Initialize() error {
	r.initializeCount++
	if err := r.fail(OpInitialize); err != nil {
		return err
	}
	r.rawMode = true
	_ = r.ClearScreen()
	_ = r.MoveCaretTo(Position{})
	return r.Execute()
}

// Terminate flushes and leaves raw mode. Raw mode is released even when a
// failure is injected.
func (r *Recorder) Terminate() error {
	r.terminateCount++
	flushErr := r.Execute()
	r.rawMode = false
	if err := r.fail(OpTerminate); err != nil {
		return err
	}
	return flushErr
}

// ClearScreen queues a full-screen clear.
func (r *Recorder) ClearScreen() error {
	return r.enqueue(Command{Kind: CmdClearScreen})
}

// ClearLine queues a clear of the caret line.
func (r *Recorder) ClearLine() error {
	return r.enqueue(Command{Kind: CmdClearLine})
}

// MoveCaretTo queues a caret move. The position is recorded untruncated.
func (r *Recorder) MoveCaretTo(pos Position) error {
	return r.enqueue(Command{Kind: CmdMoveCaret, Pos: pos})
}

// HideCaret queues hiding the caret.
func (r *Recorder) HideCaret() error {
	return r.enqueue(Command{Kind: CmdHideCaret})
}

// ShowCaret queues showing the caret.
func (r *Recorder) ShowCaret() error {
	return r.enqueue(Command{Kind: CmdShowCaret})
}

// Print queues the operands formatted with fmt.Sprint.
func (r *Recorder) Print(args ...any) error {
	return r.enqueue(Command{Kind: CmdPrint, Text: fmt.Sprint(args...)})
}

// Size returns the configured dimensions and counts the query.
func (r *Recorder) Size() (Size, error) {
	r.sizeQueryCount++
	if err := r.fail(OpSize); err != nil {
		return Size{}, err
	}
	return r.size, nil
}

// Execute moves the queued commands into a new frame. A failing Execute
// discards the queue without recording a frame.
func (r *Recorder) Execute() error {
	queued := r.queued
	r.queued = nil
	if err := r.fail(OpExecute); err != nil {
		return err
	}
	if len(queued) > 0 {
		r.frames = append(r.frames, Frame(queued))
	}
	return nil
}

// ReadEvent returns the next scripted event, or an IOError wrapping io.EOF
// once the script is exhausted.
func (r *Recorder) ReadEvent() (Event, error) {
	if err := r.fail(OpRead); err != nil {
		return Event{}, err
	}
	if len(r.events) == 0 {
		return Event{}, newIOError(OpRead, io.EOF)
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev, nil
}

// Frames returns the flushed frames in order.
func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// LastFrame returns the most recently flushed frame, or nil.
func (r *Recorder) LastFrame() Frame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// Queued returns commands queued since the last Execute.
func (r *Recorder) Queued() []Command {
	out := make([]Command, len(r.queued))
	copy(out, r.queued)
	return out
}

// RawMode reports whether raw mode is currently enabled.
func (r *Recorder) RawMode() bool {
	return r.rawMode
}

// InitializeCalls returns how many times Initialize was called.
func (r *Recorder) InitializeCalls() int {
	return r.initializeCount
}

// TerminateCalls returns how many times Terminate was called.
func (r *Recorder) TerminateCalls() int {
	return r.terminateCount
}

// SizeQueries returns how many times Size was called.
func (r *Recorder) SizeQueries() int {
	return r.sizeQueryCount
}

// RemainingEvents returns how many scripted events have not been read.
func (r *Recorder) RemainingEvents() int {
	return len(r.events)
}
