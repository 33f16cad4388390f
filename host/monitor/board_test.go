package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakePort replays data, then reports EOF like a timed-out serial read
type fakePort struct {
	data     *bytes.Reader
	flushErr error
	flushed  bool
	closed   bool
}

func newFakePort(data []byte) *fakePort {
	return &fakePort{data: bytes.NewReader(data)}
}

func (p *fakePort) Read(b []byte) (int, error) {
	n, err := p.data.Read(b)
	if errors.Is(err, io.EOF) {
		return 0, io.EOF
	}
	return n, err
}

func (p *fakePort) Write(b []byte) (int, error) { return len(b), nil }

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func (p *fakePort) Flush() error {
	p.flushed = true
	return p.flushErr
}

func TestBoardWatch(t *testing.T) {
	port := newFakePort(stream(nil, regular(4, 0, 250)...))
	board := NewBoard()
	require.NoError(t, board.Attach(port))
	require.True(t, port.flushed)
	require.True(t, board.IsConnected())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := board.Watch(ctx, Options{MaxToggles: 4}, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, uint32(4), stats.Toggles)
	require.True(t, stats.OK())

	require.NoError(t, board.Close())
	require.True(t, port.closed)
	require.False(t, board.IsConnected())
}

func TestBoardWatchNotConnected(t *testing.T) {
	_, err := NewBoard().Watch(context.Background(), Options{}, zerolog.Nop())
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestBoardAttachFlushError(t *testing.T) {
	port := newFakePort(nil)
	port.flushErr = errors.New("tcflush failed")

	err := NewBoard().Attach(port)
	require.ErrorIs(t, err, port.flushErr)
	require.True(t, port.closed)
}
