package terminal

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	keyEsc = 0x1b
	keyDel = 0x7f

	// maxCSILen bounds the scan for a CSI final byte.
	maxCSILen = 32
)

// letterKeys maps CSI and SS3 final letters to keys.
var letterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'Z': KeyBacktab,
}

// tildeKeys maps the numeric parameter of ESC [ n ~ sequences to keys.
var tildeKeys = map[string]Key{
	"1":  KeyHome,
	"2":  KeyInsert,
	"3":  KeyDelete,
	"4":  KeyEnd,
	"5":  KeyPageUp,
	"6":  KeyPageDown,
	"7":  KeyHome,
	"8":  KeyEnd,
	"11": KeyF1,
	"12": KeyF2,
	"13": KeyF3,
	"14": KeyF4,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
	"21": KeyF10,
	"23": KeyF11,
	"24": KeyF12,
}

// parseInput decodes the first event in data and returns the number of bytes
// consumed. It returns 0 when data holds an incomplete sequence. Consumed
// bytes that do not form a known key yield an EventNone event.
func parseInput(data []byte) (int, Event) {
	if len(data) == 0 {
		return 0, Event{}
	}

	b := data[0]
	switch {
	case b >= 0x20 && b < keyDel:
		return 1, RuneEvent(rune(b), ModNone)
	case b == keyEsc:
		if len(data) == 1 {
			return 1, KeyEvent(KeyEscape, ModNone)
		}
		return parseEscape(data)
	case b < 0x20:
		return 1, parseControl(b)
	case b == keyDel:
		return 1, KeyEvent(KeyBackspace, ModNone)
	}

	if !utf8.FullRune(data) {
		return 0, Event{}
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError {
		return size, Event{}
	}
	return size, RuneEvent(r, ModNone)
}

// parseEscape decodes a sequence starting with ESC. len(data) >= 2.
func parseEscape(data []byte) (int, Event) {
	switch c := data[1]; {
	case c == '[':
		return parseCSI(data)
	case c == 'O':
		return parseSS3(data)
	case c == keyEsc:
		return 2, KeyEvent(KeyEscape, ModAlt)
	case c < 0x20:
		ev := parseControl(c)
		ev.Mod |= ModAlt
		return 2, ev
	case c < keyDel:
		return 2, RuneEvent(rune(c), ModAlt)
	default:
		return 1, KeyEvent(KeyEscape, ModNone)
	}
}

// parseCSI decodes ESC [ params final.
func parseCSI(data []byte) (int, Event) {
	end := 2
	for ; end < len(data); end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f || end >= maxCSILen {
			// Not a CSI parameter byte; drop what was scanned.
			return end, Event{}
		}
	}
	if end >= len(data) {
		return 0, Event{}
	}
	end++

	if k, mod, ok := decodeCSI(data[2:end]); ok {
		return end, KeyEvent(k, mod)
	}
	return end, Event{}
}

// decodeCSI maps CSI parameters plus final byte to a key.
func decodeCSI(seq []byte) (Key, ModMask, bool) {
	final := seq[len(seq)-1]
	params := string(seq[:len(seq)-1])

	mod := ModNone
	if i := strings.IndexByte(params, ';'); i >= 0 {
		m, err := strconv.Atoi(params[i+1:])
		if err != nil {
			return KeyNone, ModNone, false
		}
		mod = xtermModifier(m)
		params = params[:i]
	}

	if final == '~' {
		k, ok := tildeKeys[params]
		return k, mod, ok
	}

	if params != "" && params != "1" {
		return KeyNone, ModNone, false
	}
	k, ok := letterKeys[final]
	if k == KeyBacktab {
		mod |= ModShift
	}
	return k, mod, ok
}

// parseSS3 decodes ESC O final.
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if k, ok := letterKeys[data[2]]; ok && k != KeyBacktab {
		return 3, KeyEvent(k, ModNone)
	}
	return 3, Event{}
}

// parseControl maps C0 control bytes to keys.
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return KeyEvent(KeyCtrlSpace, ModCtrl)
	case 0x08:
		return KeyEvent(KeyBackspace, ModNone)
	case 0x09:
		return KeyEvent(KeyTab, ModNone)
	case 0x0a, 0x0d:
		return KeyEvent(KeyEnter, ModNone)
	case keyEsc:
		return KeyEvent(KeyEscape, ModNone)
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent(ctrlKey(b), ModCtrl)
	}
	return Event{}
}

// xtermModifier decodes the xterm modifier parameter (1 + bitmask).
func xtermModifier(m int) ModMask {
	bits := m - 1
	mod := ModNone
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	if bits&8 != 0 {
		mod |= ModMeta
	}
	return mod
}
