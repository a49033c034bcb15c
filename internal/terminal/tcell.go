package terminal

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell implements Terminal on top of a tcell screen. The screen's cell
// buffer serves as the queue; Execute calls Show.
type Tcell struct {
	screen tcell.Screen
	caret  Position
	active bool
}

// NewTcell creates a terminal backed by a new tcell screen.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, newIOError("create screen", err)
	}
	return NewTcellWithScreen(screen), nil
}

// NewTcellWithScreen wraps an existing screen, such as a simulation screen.
func NewTcellWithScreen(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

// Initialize initializes the screen, clears it and homes the caret.
func (t *Tcell) Initialize() error {
	if err := t.screen.Init(); err != nil {
		return newIOError("init screen", err)
	}
	t.active = true
	if err := t.ClearScreen(); err != nil {
		return err
	}
	if err := t.MoveCaretTo(Position{}); err != nil {
		return err
	}
	return t.Execute()
}

// Terminate flushes and releases the screen. It does nothing when the
// screen was never initialized.
func (t *Tcell) Terminate() error {
	if !t.active {
		return nil
	}
	t.active = false
	err := t.Execute()
	t.screen.Fini()
	return err
}

// ClearScreen clears the back buffer.
func (t *Tcell) ClearScreen() error {
	t.screen.Clear()
	return nil
}

// ClearLine blanks the row under the write position.
func (t *Tcell) ClearLine() error {
	width, _ := t.screen.Size()
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, t.caret.Row, ' ', nil, tcell.StyleDefault)
	}
	return nil
}

// MoveCaretTo sets the write position.
func (t *Tcell) MoveCaretTo(pos Position) error {
	t.caret = Position{
		Column: int(ProtocolCoord(pos.Column)),
		Row:    int(ProtocolCoord(pos.Row)),
	}
	return nil
}

// HideCaret hides the cursor.
func (t *Tcell) HideCaret() error {
	t.screen.HideCursor()
	return nil
}

// ShowCaret shows the cursor at the current write position, which is where
// a VT terminal would leave it after the queued output.
func (t *Tcell) ShowCaret() error {
	t.screen.ShowCursor(t.caret.Column, t.caret.Row)
	return nil
}

// Print writes text at the write position and advances it. Carriage return
// and line feed move the position the way a terminal in raw mode does.
func (t *Tcell) Print(args ...any) error {
	for _, r := range fmt.Sprint(args...) {
		switch r {
		case '\r':
			t.caret.Column = 0
		case '\n':
			t.caret.Row++
		default:
			t.screen.SetContent(t.caret.Column, t.caret.Row, r, nil, tcell.StyleDefault)
			w := runewidth.RuneWidth(r)
			if w < 1 {
				w = 1
			}
			t.caret.Column += w
		}
	}
	return nil
}

// Size returns the screen dimensions.
func (t *Tcell) Size() (Size, error) {
	w, h := t.screen.Size()
	return Size{Width: w, Height: h}, nil
}

// Execute shows the back buffer.
func (t *Tcell) Execute() error {
	t.screen.Show()
	return nil
}

// ReadEvent waits for the next screen event. A finalized screen reports
// io.EOF.
func (t *Tcell) ReadEvent() (Event, error) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, newIOError("read input", io.EOF)
	}
	return convertEvent(ev), nil
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		return Event{
			Type: EventMouse,
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h)

	case *tcell.EventPaste:
		return Event{Type: EventPaste}

	case *tcell.EventFocus:
		return Event{
			Type:    EventFocus,
			Focused: e.Focused,
		}

	default:
		return Event{Type: EventNone}
	}
}

// tcellKeys maps tcell keys to our Key type.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlSpace:  KeyCtrlSpace,
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	// Tab, Enter and Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H,
	// so the table is consulted first.
	if mapped, ok := tcellKeys[k]; ok {
		return mapped
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA)
	}
	return KeyNone
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
