package core

// Delay spins until ms milliseconds have elapsed on the SysTick counter.
func Delay(ms uint32) {
	DelayOn(SysTick{}, ms)
}

// DelayOn spins against c until ms milliseconds have passed and returns the
// tick at which the wait completed. The comparison uses the unsigned
// difference from the starting tick so a counter wrap mid-wait is harmless.
func DelayOn(c Clock, ms uint32) uint32 {
	return waitUntil(c, c.Now(), ms)
}

// waitUntil spins until interval ticks have passed since start.
func waitUntil(c Clock, start, interval uint32) uint32 {
	for {
		now := c.Now()
		if now-start >= interval {
			return now
		}
	}
}
