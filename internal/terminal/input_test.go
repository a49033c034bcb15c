package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want Event
	}{
		{"empty", "", 0, Event{}},
		{"letter", "a", 1, RuneEvent('a', ModNone)},
		{"space", " ", 1, RuneEvent(' ', ModNone)},
		{"letter then more", "ab", 1, RuneEvent('a', ModNone)},
		{"utf8", "é", 2, RuneEvent('é', ModNone)},
		{"partial utf8", "\xe4\xb8", 0, Event{}},
		{"invalid utf8", "\xff", 1, Event{}},
		{"delete", "\x7f", 1, KeyEvent(KeyBackspace, ModNone)},
		{"ctrl-h", "\x08", 1, KeyEvent(KeyBackspace, ModNone)},
		{"tab", "\t", 1, KeyEvent(KeyTab, ModNone)},
		{"carriage return", "\r", 1, KeyEvent(KeyEnter, ModNone)},
		{"ctrl-q", "\x11", 1, KeyEvent(KeyCtrlQ, ModCtrl)},
		{"ctrl-a", "\x01", 1, KeyEvent(KeyCtrlA, ModCtrl)},
		{"ctrl-space", "\x00", 1, KeyEvent(KeyCtrlSpace, ModCtrl)},
		{"lone escape", "\x1b", 1, KeyEvent(KeyEscape, ModNone)},
		{"double escape", "\x1b\x1b", 2, KeyEvent(KeyEscape, ModAlt)},
		{"alt letter", "\x1bx", 2, RuneEvent('x', ModAlt)},
		{"alt ctrl", "\x1b\x11", 2, KeyEvent(KeyCtrlQ, ModCtrl|ModAlt)},
		{"escape then high byte", "\x1b\xc3\xa9", 1, KeyEvent(KeyEscape, ModNone)},
		{"up", "\x1b[A", 3, KeyEvent(KeyUp, ModNone)},
		{"down", "\x1b[B", 3, KeyEvent(KeyDown, ModNone)},
		{"right", "\x1b[C", 3, KeyEvent(KeyRight, ModNone)},
		{"left", "\x1b[D", 3, KeyEvent(KeyLeft, ModNone)},
		{"home letter", "\x1b[H", 3, KeyEvent(KeyHome, ModNone)},
		{"end letter", "\x1b[F", 3, KeyEvent(KeyEnd, ModNone)},
		{"ctrl up", "\x1b[1;5A", 6, KeyEvent(KeyUp, ModCtrl)},
		{"shift alt right", "\x1b[1;4C", 6, KeyEvent(KeyRight, ModShift|ModAlt)},
		{"backtab", "\x1b[Z", 3, KeyEvent(KeyBacktab, ModShift)},
		{"home tilde", "\x1b[1~", 4, KeyEvent(KeyHome, ModNone)},
		{"home vt", "\x1b[7~", 4, KeyEvent(KeyHome, ModNone)},
		{"insert", "\x1b[2~", 4, KeyEvent(KeyInsert, ModNone)},
		{"delete tilde", "\x1b[3~", 4, KeyEvent(KeyDelete, ModNone)},
		{"end tilde", "\x1b[4~", 4, KeyEvent(KeyEnd, ModNone)},
		{"end vt", "\x1b[8~", 4, KeyEvent(KeyEnd, ModNone)},
		{"page up", "\x1b[5~", 4, KeyEvent(KeyPageUp, ModNone)},
		{"page down", "\x1b[6~", 4, KeyEvent(KeyPageDown, ModNone)},
		{"ctrl page down", "\x1b[6;5~", 6, KeyEvent(KeyPageDown, ModCtrl)},
		{"f5", "\x1b[15~", 5, KeyEvent(KeyF5, ModNone)},
		{"f12", "\x1b[24~", 5, KeyEvent(KeyF12, ModNone)},
		{"unknown tilde", "\x1b[99~", 5, Event{}},
		{"bad modifier", "\x1b[1;?A", 6, Event{}},
		{"unknown final", "\x1b[1;5X", 6, Event{}},
		{"partial csi", "\x1b[", 0, Event{}},
		{"partial csi params", "\x1b[1;5", 0, Event{}},
		{"csi with control byte", "\x1b[1\x01", 3, Event{}},
		{"ss3 up", "\x1bOA", 3, KeyEvent(KeyUp, ModNone)},
		{"ss3 home", "\x1bOH", 3, KeyEvent(KeyHome, ModNone)},
		{"ss3 f1", "\x1bOP", 3, KeyEvent(KeyF1, ModNone)},
		{"ss3 partial", "\x1bO", 0, Event{}},
		{"ss3 unknown", "\x1bOz", 3, Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ev := parseInput([]byte(tt.in))
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestXtermModifier(t *testing.T) {
	assert.Equal(t, ModNone, xtermModifier(1))
	assert.Equal(t, ModShift, xtermModifier(2))
	assert.Equal(t, ModAlt, xtermModifier(3))
	assert.Equal(t, ModCtrl, xtermModifier(5))
	assert.Equal(t, ModShift|ModCtrl, xtermModifier(6))
	assert.Equal(t, ModMeta, xtermModifier(9))
}
