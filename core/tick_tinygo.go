//go:build tinygo

package core

import "runtime/volatile"

// Single core, single writer: the handler is the only mutator and a 32-bit
// aligned access cannot tear, so volatile access is sufficient.
var tickCount uint32

func incTicks() {
	volatile.StoreUint32(&tickCount, volatile.LoadUint32(&tickCount)+1)
}

func loadTicks() uint32 {
	return volatile.LoadUint32(&tickCount)
}

func storeTicks(ticks uint32) {
	volatile.StoreUint32(&tickCount, ticks)
}
