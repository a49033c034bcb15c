package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	raw        bool
	enableErr  error
	disableErr error
	sizeErr    error
	width      int
	height     int
	enables    int
	disables   int
}

func (d *fakeDriver) EnableRawMode() error {
	d.enables++
	if d.enableErr != nil {
		return d.enableErr
	}
	d.raw = true
	return nil
}

func (d *fakeDriver) DisableRawMode() error {
	d.disables++
	d.raw = false
	return d.disableErr
}

func (d *fakeDriver) Size() (int, int, error) {
	return d.width, d.height, d.sizeErr
}

// countingWriter records each Write call separately.
type countingWriter struct {
	writes []string
	err    error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (w *countingWriter) String() string {
	return strings.Join(w.writes, "")
}

func newTestANSI(input string) (*ANSI, *fakeDriver, *countingWriter) {
	drv := &fakeDriver{width: 80, height: 24}
	out := &countingWriter{}
	return NewANSIWithDriver(drv, strings.NewReader(input), out), drv, out
}

func TestANSI_Initialize(t *testing.T) {
	a, drv, out := newTestANSI("")

	require.NoError(t, a.Initialize())

	assert.True(t, drv.raw)
	assert.Equal(t, []string{"\x1b[2J\x1b[1;1H"}, out.writes)
	assert.Zero(t, a.Pending())
}

func TestANSI_InitializeRawModeFailure(t *testing.T) {
	a, drv, out := newTestANSI("")
	drv.enableErr = ErrNotTerminal

	err := a.Initialize()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.Empty(t, out.writes)
}

func TestANSI_QueueIsInvisibleUntilExecute(t *testing.T) {
	a, _, out := newTestANSI("")

	require.NoError(t, a.HideCaret())
	require.NoError(t, a.ClearLine())
	require.NoError(t, a.Print("~"))
	require.NoError(t, a.MoveCaretTo(Position{Column: 4, Row: 2}))
	require.NoError(t, a.ShowCaret())

	assert.Empty(t, out.writes)
	assert.Positive(t, a.Pending())

	require.NoError(t, a.Execute())

	assert.Equal(t, []string{"\x1b[?25l\x1b[2K~\x1b[3;5H\x1b[?25h"}, out.writes, "one write per frame")
	assert.Zero(t, a.Pending())
}

func TestANSI_ExecuteEmptyQueue(t *testing.T) {
	a, _, out := newTestANSI("")

	require.NoError(t, a.Execute())

	assert.Empty(t, out.writes)
}

func TestANSI_ExecuteFailureDropsQueue(t *testing.T) {
	a, _, out := newTestANSI("")
	out.err = io.ErrClosedPipe

	require.NoError(t, a.Print("frame"))
	err := a.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Zero(t, a.Pending())
}

func TestANSI_Print(t *testing.T) {
	a, _, out := newTestANSI("")

	require.NoError(t, a.Print("Goodbye.\r\n"))
	require.NoError(t, a.Print(42))
	require.NoError(t, a.Print("a", "b"))
	require.NoError(t, a.Execute())

	assert.Equal(t, "Goodbye.\r\n42ab", out.String())
}

func TestANSI_MoveCaretClamps(t *testing.T) {
	a, _, out := newTestANSI("")

	require.NoError(t, a.MoveCaretTo(Position{Column: -3, Row: 70000}))
	require.NoError(t, a.Execute())

	assert.Equal(t, "\x1b[65535;1H", out.String())
}

func TestANSI_MoveCaretParamsStayInRange(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{}, "\x1b[1;1H"},
		{Position{Column: 79, Row: 23}, "\x1b[24;80H"},
		{Position{Column: MaxCoord - 2, Row: MaxCoord - 1}, "\x1b[65535;65534H"},
		{Position{Column: MaxCoord, Row: MaxCoord}, "\x1b[65535;65535H"},
		{Position{Column: 70000, Row: -3}, "\x1b[1;65535H"},
	}

	for _, tt := range tests {
		a, _, out := newTestANSI("")
		require.NoError(t, a.MoveCaretTo(tt.pos))
		require.NoError(t, a.Execute())
		assert.Equal(t, tt.want, out.String(), "MoveCaretTo(%+v)", tt.pos)
	}
}

func TestANSI_Size(t *testing.T) {
	a, drv, _ := newTestANSI("")

	size, err := a.Size()
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 80, Height: 24}, size)

	drv.width, drv.height = 100, 40
	size, err = a.Size()
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 100, Height: 40}, size, "size is not cached")

	drv.sizeErr = errors.New("ioctl")
	_, err = a.Size()
	assert.ErrorIs(t, err, ErrIO)
}

func TestANSI_Terminate(t *testing.T) {
	a, drv, out := newTestANSI("")
	require.NoError(t, a.Initialize())
	require.NoError(t, a.Print("tail"))

	require.NoError(t, a.Terminate())

	assert.False(t, drv.raw)
	assert.Equal(t, "tail", out.writes[len(out.writes)-1])
}

func TestANSI_TerminateRestoresOnFlushFailure(t *testing.T) {
	a, drv, out := newTestANSI("")
	require.NoError(t, a.Initialize())
	require.NoError(t, a.Print("tail"))
	out.err = io.ErrClosedPipe

	err := a.Terminate()

	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Equal(t, 1, drv.disables)
	assert.False(t, drv.raw)
}

func TestANSI_TerminateReportsRestoreFailure(t *testing.T) {
	a, drv, _ := newTestANSI("")
	drv.disableErr = errors.New("tcsetattr")

	err := a.Terminate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), "disable raw mode")
}

func TestANSI_ReadEvent(t *testing.T) {
	a, _, _ := newTestANSI("\x1b[A\x1b[6~x\x11")

	want := []Event{
		KeyEvent(KeyUp, ModNone),
		KeyEvent(KeyPageDown, ModNone),
		RuneEvent('x', ModNone),
		KeyEvent(KeyCtrlQ, ModCtrl),
	}
	for _, w := range want {
		ev, err := a.ReadEvent()
		require.NoError(t, err)
		assert.Equal(t, w, ev)
	}

	_, err := a.ReadEvent()
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, err, ErrIO)
}

func TestANSI_ReadEventSkipsUnknownSequences(t *testing.T) {
	a, _, _ := newTestANSI("\x1b[99~\xffq")

	ev, err := a.ReadEvent()

	require.NoError(t, err)
	assert.Equal(t, RuneEvent('q', ModNone), ev)
}

// chunkReader returns one chunk per Read.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestANSI_ReadEventJoinsSplitSequence(t *testing.T) {
	drv := &fakeDriver{width: 80, height: 24}
	in := &chunkReader{chunks: []string{"\x1b[1", ";5", "C"}}
	a := NewANSIWithDriver(drv, in, &bytes.Buffer{})

	ev, err := a.ReadEvent()

	require.NoError(t, err)
	assert.Equal(t, KeyEvent(KeyRight, ModCtrl), ev)
}
