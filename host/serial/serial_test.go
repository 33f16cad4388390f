package serial

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	require.Equal(t, "/dev/ttyACM0", cfg.Device)
	require.Equal(t, 115200, cfg.Baud)
	require.Equal(t, 100*time.Millisecond, cfg.ReadTimeout)
}

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, ErrNilConfig)
}

func TestOpenMissingDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "no-such-tty")

	_, err := Open(DefaultConfig(dev))
	require.Error(t, err)
	require.Contains(t, err.Error(), dev)
}
