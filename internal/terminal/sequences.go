package terminal

import (
	"bytes"
	"strconv"
)

// Pre-allocated ANSI sequences.
var (
	csiClearScreen = []byte("\x1b[2J")
	csiClearLine   = []byte("\x1b[2K")
	csiCursorHide  = []byte("\x1b[?25l")
	csiCursorShow  = []byte("\x1b[?25h")
	csiCursorPos   = []byte("\x1b[") // followed by row;colH
)

// writeCursorPos writes a cursor positioning sequence for a 0-indexed
// position. The protocol is 1-indexed and its parameters never exceed
// MaxCoord, so the last row and column addressable this way are MaxCoord-1.
func writeCursorPos(w *bytes.Buffer, pos Position) {
	w.Write(csiCursorPos)
	w.WriteString(strconv.Itoa(cursorParam(pos.Row)))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(cursorParam(pos.Column)))
	w.WriteByte('H')
}

// cursorParam converts a 0-indexed coordinate to a CUP parameter.
func cursorParam(n int) int {
	return min(int(ProtocolCoord(n))+1, MaxCoord)
}
