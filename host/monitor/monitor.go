// Package monitor verifies the firmware's toggle telemetry on the host:
// strict alternation, no missed toggles, and toggle spacing within
// [interval, interval+tolerance] milliseconds of the board's tick counter.
package monitor

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"nucleoblink/protocol"
)

// DefaultInterval is assumed until a boot frame or option says otherwise.
const DefaultInterval = 250

// ErrNotConnected is returned when watching a board with no open port
var ErrNotConnected = errors.New("board not connected")

// followPoll is how long Run waits after an empty read in follow mode
const followPoll = 10 * time.Millisecond

// Violation kinds
const (
	KindMissed    = "missed"     // toggle sequence skipped
	KindLevel     = "level"      // line did not alternate
	KindEarly     = "early"      // toggled before the interval elapsed
	KindLate      = "late"       // toggled after interval+tolerance
	KindBadFrame  = "bad_frame"  // frame decoded but payload malformed
	KindFirstHigh = "first_high" // first toggle after boot was not LOW->HIGH
)

// Options configures a Monitor.
type Options struct {
	Interval   uint32 // expected period in ms; 0 takes it from the boot frame
	Tolerance  uint32 // allowed lateness in ms
	MaxToggles uint32 // stop after this many toggles; 0 for no limit
	Follow     bool   // keep reading after io.EOF (serial ports with a read timeout)
}

// Violation is one failed check.
type Violation struct {
	Kind string
	Seq  uint32
	Gap  uint32 // ms since the previous toggle, for timing violations
}

// Stats summarises a monitoring run.
type Stats struct {
	Boots       uint32
	Toggles     uint32
	Violations  uint32
	FrameErrors uint32
	Interval    uint32
	SysClockHz  uint32
	MinGap      uint32
	MaxGap      uint32
}

// OK reports whether the run saw no violations
func (s Stats) OK() bool {
	return s.Violations == 0
}

// Monitor checks a telemetry stream.
type Monitor struct {
	opts    Options
	log     zerolog.Logger
	decoder *protocol.Decoder
	stats   Stats

	last    protocol.Toggle
	hasLast bool
	hasGap  bool
}

// New creates a Monitor
func New(opts Options, log zerolog.Logger) *Monitor {
	m := &Monitor{
		opts:    opts,
		log:     log,
		decoder: protocol.NewDecoder(),
	}
	m.stats.Interval = opts.Interval
	if m.stats.Interval == 0 {
		m.stats.Interval = DefaultInterval
	}
	return m
}

// Stats returns the counters so far
func (m *Monitor) Stats() Stats {
	s := m.stats
	s.FrameErrors += m.decoder.Errors
	return s
}

// Done reports whether the toggle limit has been reached
func (m *Monitor) Done() bool {
	return m.opts.MaxToggles > 0 && m.stats.Toggles >= m.opts.MaxToggles
}

// Feed decodes raw bytes and checks every complete message
func (m *Monitor) Feed(data []byte) []Violation {
	var out []Violation
	for _, msg := range m.decoder.Feed(data) {
		if m.Done() {
			break
		}
		out = append(out, m.Observe(msg)...)
	}
	return out
}

// Observe checks one decoded message
func (m *Monitor) Observe(msg protocol.Message) []Violation {
	switch msg.ID {
	case protocol.MsgBoot:
		boot, err := msg.Boot()
		if err != nil {
			return m.report(Violation{Kind: KindBadFrame})
		}
		m.observeBoot(boot)
		return nil
	case protocol.MsgToggle:
		toggle, err := msg.Toggle()
		if err != nil {
			return m.report(Violation{Kind: KindBadFrame})
		}
		return m.observeToggle(toggle)
	default:
		m.log.Debug().Uint32("id", msg.ID).Msg("ignoring unknown message")
		return nil
	}
}

func (m *Monitor) observeBoot(boot protocol.Boot) {
	m.stats.Boots++
	m.stats.SysClockHz = boot.SysClockHz
	if m.opts.Interval == 0 && boot.IntervalMs != 0 {
		m.stats.Interval = boot.IntervalMs
	}
	// The board reset: the next toggle starts a new sequence
	m.hasLast = false

	m.log.Info().
		Uint32("interval_ms", boot.IntervalMs).
		Uint32("sysclk_hz", boot.SysClockHz).
		Msg("board booted")
}

func (m *Monitor) observeToggle(t protocol.Toggle) []Violation {
	m.stats.Toggles++
	m.log.Debug().
		Uint32("seq", t.Seq).
		Uint32("tick", t.Tick).
		Bool("high", t.High).
		Msg("toggle")

	var out []Violation
	defer func() {
		m.last = t
		m.hasLast = true
	}()

	if !m.hasLast {
		if t.Seq == 1 && !t.High {
			out = append(out, m.report(Violation{Kind: KindFirstHigh, Seq: t.Seq})...)
		}
		return out
	}

	if t.Seq != m.last.Seq+1 {
		// Frames were lost; spacing across the gap says nothing
		return append(out, m.report(Violation{Kind: KindMissed, Seq: t.Seq})...)
	}
	if t.High == m.last.High {
		out = append(out, m.report(Violation{Kind: KindLevel, Seq: t.Seq})...)
	}

	gap := t.Tick - m.last.Tick // unsigned: correct across counter wrap
	m.recordGap(gap)
	switch {
	case gap < m.stats.Interval:
		out = append(out, m.report(Violation{Kind: KindEarly, Seq: t.Seq, Gap: gap})...)
	case gap > m.stats.Interval+m.opts.Tolerance:
		out = append(out, m.report(Violation{Kind: KindLate, Seq: t.Seq, Gap: gap})...)
	}
	return out
}

func (m *Monitor) recordGap(gap uint32) {
	if !m.hasGap || gap < m.stats.MinGap {
		m.stats.MinGap = gap
	}
	m.hasGap = true
	if gap > m.stats.MaxGap {
		m.stats.MaxGap = gap
	}
}

func (m *Monitor) report(v Violation) []Violation {
	m.stats.Violations++
	m.log.Warn().
		Str("kind", v.Kind).
		Uint32("seq", v.Seq).
		Uint32("gap_ms", v.Gap).
		Uint32("interval_ms", m.stats.Interval).
		Msg("toggle check failed")
	return []Violation{v}
}

// Run reads r until ctx is done, the toggle limit is reached, or r ends.
// In follow mode io.EOF means "no data yet" and reading continues.
func (m *Monitor) Run(ctx context.Context, r io.Reader) (Stats, error) {
	buf := make([]byte, 256)
	for !m.Done() {
		if err := ctx.Err(); err != nil {
			return m.Stats(), nil
		}

		n, err := r.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		switch {
		case err == nil:
			if n == 0 && m.opts.Follow {
				m.idle(ctx)
			}
		case errors.Is(err, io.EOF):
			if !m.opts.Follow {
				return m.Stats(), nil
			}
			m.idle(ctx)
		default:
			return m.Stats(), err
		}
	}
	return m.Stats(), nil
}

func (m *Monitor) idle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(followPoll):
	}
}
