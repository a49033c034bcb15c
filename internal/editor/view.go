package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/hecto/internal/terminal"
)

const goodbyeMessage = "Goodbye.\r\n"

// RefreshScreen composes one frame and flushes it. The caret is hidden while
// the frame is built.
func (e *Editor) RefreshScreen() error {
	if err := e.term.HideCaret(); err != nil {
		return err
	}

	if e.shouldQuit {
		if err := e.drawGoodbye(); err != nil {
			return err
		}
	} else {
		if err := e.term.MoveCaretTo(terminal.Position{}); err != nil {
			return err
		}
		if err := e.drawRows(); err != nil {
			return err
		}
		if err := e.term.MoveCaretTo(e.position); err != nil {
			return err
		}
	}

	if err := e.term.ShowCaret(); err != nil {
		return err
	}
	return e.term.Execute()
}

func (e *Editor) drawGoodbye() error {
	if err := e.term.ClearScreen(); err != nil {
		return err
	}
	if err := e.term.MoveCaretTo(terminal.Position{}); err != nil {
		return err
	}
	return e.term.Print(goodbyeMessage)
}

// drawRows draws every visible row. Row height/3 carries the welcome banner.
func (e *Editor) drawRows() error {
	size, err := e.term.Size()
	if err != nil {
		return err
	}

	bannerRow := size.Height / 3
	for row := 0; row < size.Height; row++ {
		if err := e.term.ClearLine(); err != nil {
			return err
		}

		line := e.opts.Placeholder
		if row == bannerRow {
			line = e.welcomeLine(size.Width)
		}
		if err := e.term.Print(line); err != nil {
			return err
		}

		if row+1 < size.Height {
			if err := e.term.Print("\r\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// welcomeMessage returns the product banner text.
func (e *Editor) welcomeMessage() string {
	return fmt.Sprintf("%s editor -- version %s", e.opts.Name, e.opts.Version)
}

// welcomeLine centers the banner after the placeholder and truncates the
// result to width cells.
func (e *Editor) welcomeLine(width int) string {
	return bannerLine(e.opts.Placeholder, e.welcomeMessage(), width)
}

// bannerLine lays out glyph, padding and message. The padding is
// (width-len)/2 cells including the glyph; no space is emitted when it is 0
// or 1.
func bannerLine(glyph, message string, width int) string {
	padding := 0
	if msgWidth := runewidth.StringWidth(message); width > msgWidth {
		padding = (width - msgWidth) / 2
	}

	var b strings.Builder
	b.WriteString(glyph)
	if padding > 1 {
		b.WriteString(strings.Repeat(" ", padding-1))
	}
	b.WriteString(message)

	return runewidth.Truncate(b.String(), max(width, 0), "")
}
