// Command blinkmon watches the blink firmware's telemetry on a serial port and
// checks every toggle: strict alternation, no gaps in the sequence, and
// spacing within [interval, interval+tolerance] milliseconds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"nucleoblink/host/config"
	"nucleoblink/host/monitor"
	"nucleoblink/host/serial"
	"nucleoblink/protocol"
)

var exampleUsage = strings.TrimSpace(`
  blinkmon --device /dev/ttyACM0
  blinkmon --device /dev/ttyACM0 --count 40 --tolerance 2
  blinkmon --config $HOME/.blinkmon/config.toml
`)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "blinkmon",
		Short:        "Verify NUCLEO-F446RE blink timing from its telemetry stream",
		Example:      exampleUsage,
		Version:      protocol.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath()
			}
			if cfgFile != "" && config.FileExists(cfgFile) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := config.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "config file (default $HOME/.blinkmon/config.toml)")
	flags.StringVarP(&cfg.Device, "device", "d", cfg.Device, "serial device of the ST-LINK virtual COM port")
	flags.IntVar(&cfg.Baud, "baud", cfg.Baud, "baud rate, must match the firmware")
	flags.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "serial read timeout, must be positive")
	flags.Uint32Var(&cfg.Interval, "interval", cfg.Interval, "expected toggle interval in ms (0 = from boot frame)")
	flags.Uint32Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "allowed lateness per toggle in ms")
	flags.Uint32VarP(&cfg.MaxToggles, "count", "n", cfg.MaxToggles, "stop after this many toggles (0 = until interrupted)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return root
}

func run(parent context.Context, cfg config.Config) error {
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := monitor.NewBoard()
	err := board.ConnectWithConfig(&serial.Config{
		Device:      cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return err
	}
	defer board.Close()

	log.Info().Str("device", cfg.Device).Int("baud", cfg.Baud).Msg("watching board")

	stats, err := board.Watch(ctx, monitor.Options{
		Interval:   cfg.Interval,
		Tolerance:  cfg.Tolerance,
		MaxToggles: cfg.MaxToggles,
	}, log)
	if err != nil {
		return fmt.Errorf("read telemetry: %w", err)
	}

	log.Info().
		Uint32("toggles", stats.Toggles).
		Uint32("boots", stats.Boots).
		Uint32("interval_ms", stats.Interval).
		Uint32("min_gap_ms", stats.MinGap).
		Uint32("max_gap_ms", stats.MaxGap).
		Uint32("frame_errors", stats.FrameErrors).
		Uint32("violations", stats.Violations).
		Msg("summary")

	if !stats.OK() {
		return fmt.Errorf("%d toggle check(s) failed", stats.Violations)
	}
	return nil
}
