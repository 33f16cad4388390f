//go:build stm32f446

package main

import "nucleoblink/core"

var (
	systCSR = reg(systBase + 0x00)
	systRVR = reg(systBase + 0x04)
	systCVR = reg(systBase + 0x08)
)

const (
	systCSR_ENABLE    = 1 << 0
	systCSR_TICKINT   = 1 << 1
	systCSR_CLKSOURCE = 1 << 2 // processor clock (HCLK)
)

// InitSysTick starts the 1 kHz tick from hclk
func InitSysTick(hclk uint32) error {
	reload, err := core.SysTickReloadFor(hclk, core.TickHz)
	if err != nil {
		return err
	}

	systCSR.Set(0)
	systRVR.Set(reload)
	systCVR.Set(0) // any write clears the current value
	systCSR.Set(systCSR_ENABLE | systCSR_TICKINT | systCSR_CLKSOURCE)
	return nil
}

// The vector table routes the SysTick exception to this symbol.
//
//export SysTick_Handler
func sysTickHandler() {
	core.OnTick()
}
