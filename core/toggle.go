package core

// DefaultInterval is the toggle period in milliseconds.
const DefaultInterval = 250

// OutputLine is a single digital output.
type OutputLine interface {
	Set(high bool)
}

// ToggleEvent describes one flip of the output line.
type ToggleEvent struct {
	Seq  uint32 // 1 for the first toggle after Init
	Tick uint32 // counter value at the start of the iteration
	High bool   // level after the flip
}

// ToggleLoop flips one output line every Interval milliseconds.
// The line has exactly one writer: the loop itself.
type ToggleLoop struct {
	line     OutputLine
	clock    Clock
	interval uint32
	hook     func(ToggleEvent)

	high    bool
	toggles uint32
}

// ToggleOption configures a ToggleLoop.
type ToggleOption func(*ToggleLoop)

// WithInterval sets the toggle period in milliseconds.
func WithInterval(ms uint32) ToggleOption {
	return func(t *ToggleLoop) {
		t.interval = ms
	}
}

// WithToggleHook registers a callback run after every flip, before the wait.
// The hook runs inside the interval, so it must finish well within it.
func WithToggleHook(fn func(ToggleEvent)) ToggleOption {
	return func(t *ToggleLoop) {
		t.hook = fn
	}
}

// NewToggleLoop creates a loop driving line and timed by clock.
func NewToggleLoop(line OutputLine, clock Clock, opts ...ToggleOption) *ToggleLoop {
	t := &ToggleLoop{
		line:     line,
		clock:    clock,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init drives the line LOW so the first toggle is always LOW->HIGH,
// whatever the pin's power-on level was.
func (t *ToggleLoop) Init() {
	t.high = false
	t.toggles = 0
	t.line.Set(false)
}

// Interval returns the configured toggle period in milliseconds
func (t *ToggleLoop) Interval() uint32 {
	return t.interval
}

// State returns the current line level
func (t *ToggleLoop) State() bool {
	return t.high
}

// Toggles returns the number of flips since Init
func (t *ToggleLoop) Toggles() uint32 {
	return t.toggles
}

// Step runs one iteration: flip the line, then wait out the interval.
func (t *ToggleLoop) Step() ToggleEvent {
	start := t.clock.Now()
	evt := t.flip(start)
	waitUntil(t.clock, start, t.interval)
	return evt
}

// Run toggles the line forever.
func (t *ToggleLoop) Run() {
	now := t.clock.Now()
	for {
		now = t.step(now)
	}
}

// RunFor toggles until d milliseconds have passed since the call and
// returns the number of flips made.
func (t *ToggleLoop) RunFor(d uint32) uint32 {
	begin := t.clock.Now()
	now := begin
	var n uint32
	for now-begin < d {
		now = t.step(now)
		n++
	}
	return n
}

// step runs one iteration that started at tick start and returns the tick at
// which the wait ended, which is where the next iteration starts.
func (t *ToggleLoop) step(start uint32) uint32 {
	t.flip(start)
	return waitUntil(t.clock, start, t.interval)
}

func (t *ToggleLoop) flip(tick uint32) ToggleEvent {
	t.high = !t.high
	t.line.Set(t.high)
	t.toggles++

	evt := ToggleEvent{Seq: t.toggles, Tick: tick, High: t.high}
	if t.hook != nil {
		t.hook(evt)
	}
	return evt
}
