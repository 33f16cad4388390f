//go:build !tinygo

package core

import "sync/atomic"

// Host tests may drive the counter from a goroutine standing in for the interrupt.
var tickCount atomic.Uint32

func incTicks() {
	tickCount.Add(1)
}

func loadTicks() uint32 {
	return tickCount.Load()
}

func storeTicks(ticks uint32) {
	tickCount.Store(ticks)
}
