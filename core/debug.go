package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

const (
	ToggleRingSize = 32 // Keep last 32 toggles for post-mortem
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln produces output
	debugEnabled bool = true

	// Toggle capture ring buffer, inspectable from a debugger
	toggleRing     [ToggleRingSize]ToggleEvent
	toggleRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, semihosting, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordToggle captures a toggle in the ring buffer.
// Called from the main loop only; never from interrupt context.
func RecordToggle(evt ToggleEvent) {
	idx := toggleRingHead
	toggleRing[idx] = evt
	toggleRingHead = (idx + 1) % ToggleRingSize
}

// ToggleEvents returns the recorded toggles, oldest first
func ToggleEvents() []ToggleEvent {
	events := make([]ToggleEvent, 0, ToggleRingSize)
	start := toggleRingHead
	for i := uint8(0); i < ToggleRingSize; i++ {
		evt := toggleRing[(start+i)%ToggleRingSize]
		if evt.Seq == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpToggleRing writes the toggle ring through the debug writer
func DumpToggleRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TOGGLE] === Toggle Ring Dump ===")
	for _, evt := range ToggleEvents() {
		debugPrintln("[TOGGLE] " + FormatToggle(evt))
	}
	debugPrintln("[TOGGLE] === End Dump ===")
}

// ClearToggleRing clears the toggle buffer
func ClearToggleRing() {
	for i := range toggleRing {
		toggleRing[i] = ToggleEvent{}
	}
	toggleRingHead = 0
}

// FormatToggle renders a toggle as "seq=N tick=T level=L"
func FormatToggle(evt ToggleEvent) string {
	level := "0"
	if evt.High {
		level = "1"
	}
	return "seq=" + utoa(evt.Seq) + " tick=" + utoa(evt.Tick) + " level=" + level
}
