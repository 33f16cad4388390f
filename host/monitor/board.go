package monitor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"nucleoblink/host/serial"
)

// Board is a connection to the blink firmware's telemetry port
type Board struct {
	port      serial.Port
	connected bool
}

// NewBoard creates a new Board instance (not yet connected)
func NewBoard() *Board {
	return &Board{}
}

// ConnectWithConfig connects to a board with a custom serial config
func (b *Board) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	return b.Attach(port)
}

// Attach uses an already open port, dropping anything it had buffered
func (b *Board) Attach(port serial.Port) error {
	if err := port.Flush(); err != nil {
		_ = port.Close()
		return fmt.Errorf("flush serial port: %w", err)
	}
	b.port = port
	b.connected = true
	return nil
}

// Watch runs a Monitor over the board's telemetry until ctx is done or the
// monitor's toggle limit is reached
func (b *Board) Watch(ctx context.Context, opts Options, log zerolog.Logger) (Stats, error) {
	if !b.connected {
		return Stats{}, ErrNotConnected
	}
	opts.Follow = true
	return New(opts, log).Run(ctx, b.port)
}

// IsConnected returns whether a port is attached
func (b *Board) IsConnected() bool {
	return b.connected
}

// Close closes the connection
func (b *Board) Close() error {
	if !b.connected {
		return nil
	}
	b.connected = false
	return b.port.Close()
}
