package core

// TickHz is the SysTick interrupt rate. One tick is one millisecond.
const TickHz = 1000

// Clock is a monotonic millisecond time source.
type Clock interface {
	Now() uint32
}

// OnTick advances the millisecond counter by one.
// Called only from the SysTick interrupt handler.
func OnTick() {
	incTicks()
}

// Now returns the current millisecond counter
func Now() uint32 {
	return loadTicks()
}

// Elapsed returns the milliseconds since the given tick.
// Unsigned subtraction keeps the result correct across counter wraparound.
func Elapsed(since uint32) uint32 {
	return Now() - since
}

// SetTicks positions the counter (for testing/hardware integration)
func SetTicks(ticks uint32) {
	storeTicks(ticks)
}

// SysTick is the Clock backed by the interrupt-fed counter.
type SysTick struct{}

// Now implements Clock
func (SysTick) Now() uint32 {
	return Now()
}
