//go:build stm32f446

package main

import "nucleoblink/core"

// vosBits maps a regulator scale to PWR_CR.VOS
var vosBits = [4]uint32{0, 0x3, 0x2, 0x1}

// InitClock switches SYSCLK to the main PLL as described by cfg and returns
// the resulting HCLK and PCLK1. A configuration that fails validation is not
// applied: the core runs from the 16 MHz HSI with undivided buses.
func InitClock(cfg core.ClockConfig) (hclk, pclk1 uint32, err error) {
	// PLL can only be reconfigured while it is off, and cannot be turned
	// off while it drives SYSCLK (warm restart, bootloader jump, runtime init)
	plan := core.PlanPLL(rccCFGR.Get(), rccCR.Get())

	rccCR.SetBits(rccCR_HSION)
	for !rccCR.HasBits(rccCR_HSIRDY) {
	}
	if plan.SwitchToHSI {
		useHSI()
	}

	if err := cfg.Validate(); err != nil {
		rccCFGR.ClearBits(rccCFGR_PRESC)
		return core.HSIFreq, core.HSIFreq, err
	}

	if plan.StopPLL {
		rccCR.ClearBits(rccCR_PLLON)
		for rccCR.HasBits(rccCR_PLLRDY) {
		}
	}

	// Regulator scale is only writable with the PLL off
	rccAPB1ENR.SetBits(rccAPB1ENR_PWREN)
	_ = rccAPB1ENR.Get() // delay after clock enable
	pwrCR.ReplaceBits(vosBits[cfg.VoltageScale], pwrCR_VOSMsk, pwrCR_VOSPos)

	rccPLLCFGR.Set(cfg.MergePLLCFGR(rccPLLCFGR.Get()))
	rccCR.SetBits(rccCR_PLLON)
	for !rccCR.HasBits(rccCR_PLLRDY) {
	}

	// Flash wait states before the switch, prescalers too
	flashACR.Set(cfg.FlashLatency | flashACR_PRFTEN | flashACR_ICEN | flashACR_DCEN)
	for flashACR.Get()&flashACR_LATENCYMsk != cfg.FlashLatency {
	}
	rccCFGR.Set(rccCFGR.Get()&^rccCFGR_PRESC | cfg.CFGRPrescalers())

	rccCFGR.ReplaceBits(core.SysClkPLL, rccCFGR_SWMask, 0)
	for core.SysClockSource(rccCFGR.Get()) != core.SysClkPLL {
	}

	return cfg.HCLKHz(), cfg.PCLK1Hz(), nil
}

// useHSI moves SYSCLK to the HSI, which must already be ready.
func useHSI() {
	rccCFGR.ReplaceBits(core.SysClkHSI, rccCFGR_SWMask, 0)
	for core.SysClockSource(rccCFGR.Get()) != core.SysClkHSI {
	}
}
