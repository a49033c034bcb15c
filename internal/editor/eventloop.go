package editor

import "github.com/dshills/hecto/internal/terminal"

// EvaluateEvent applies one input event to the session state. Only key
// presses are interpreted; everything else, including resize notifications,
// is ignored because every frame re-queries the size. Once quit has been
// requested no event changes the state again.
func (e *Editor) EvaluateEvent(ev terminal.Event) error {
	if e.shouldQuit || ev.Type != terminal.EventKey {
		return nil
	}

	if isQuit(ev) {
		e.log.Debug("quit requested")
		e.shouldQuit = true
		return nil
	}

	size, err := e.term.Size()
	if err != nil {
		return err
	}

	e.position = move(e.position, ev.Key, size)
	return nil
}

// isQuit reports whether ev is Ctrl+Q. Drivers report it either as a control
// key or as the rune with the Ctrl modifier.
func isQuit(ev terminal.Event) bool {
	if ev.Key == terminal.KeyCtrlQ {
		return true
	}
	return ev.Key == terminal.KeyRune && ev.Mod.Has(terminal.ModCtrl) &&
		(ev.Rune == 'q' || ev.Rune == 'Q')
}

// move returns pos after applying a navigation key, clamped to size.
func move(pos terminal.Position, k terminal.Key, size terminal.Size) terminal.Position {
	lastColumn := max(size.Width-1, 0)
	lastRow := max(size.Height-1, 0)

	switch k {
	case terminal.KeyLeft:
		if pos.Column > 0 {
			pos.Column--
		}
	case terminal.KeyRight:
		if pos.Column < size.Width-1 {
			pos.Column++
		}
	case terminal.KeyUp:
		if pos.Row > 0 {
			pos.Row--
		}
	case terminal.KeyDown:
		if pos.Row < size.Height-1 {
			pos.Row++
		}
	case terminal.KeyPageUp:
		pos.Row = 0
	case terminal.KeyPageDown:
		pos.Row = lastRow
	case terminal.KeyHome:
		pos.Column = 0
	case terminal.KeyEnd:
		pos.Column = lastColumn
	}
	return pos
}
