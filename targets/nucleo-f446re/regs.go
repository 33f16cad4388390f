//go:build stm32f446

package main

import (
	"runtime/volatile"
	"unsafe"
)

// STM32F446 peripheral memory map (RM0390)
const (
	rccBase    = 0x40023800
	pwrBase    = 0x40007000
	flashBase  = 0x40023C00
	gpioBase   = 0x40020000 // GPIOA; ports are 0x400 apart
	gpioStride = 0x400
	usart2Base = 0x40004400
	systBase   = 0xE000E010
)

func reg(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

var (
	rccCR      = reg(rccBase + 0x00)
	rccPLLCFGR = reg(rccBase + 0x04)
	rccCFGR    = reg(rccBase + 0x08)
	rccAHB1ENR = reg(rccBase + 0x30)
	rccAPB1ENR = reg(rccBase + 0x40)

	pwrCR    = reg(pwrBase + 0x00)
	flashACR = reg(flashBase + 0x00)
)

// RCC bits
const (
	rccCR_HSION    = 1 << 0
	rccCR_HSIRDY   = 1 << 1
	rccCR_PLLON    = 1 << 24
	rccCR_PLLRDY   = 1 << 25
	rccCFGR_SWMask = 0x3
	rccCFGR_PRESC  = 0xF<<4 | 0x7<<10 | 0x7<<13 // HPRE | PPRE1 | PPRE2

	rccAPB1ENR_USART2EN = 1 << 17
	rccAPB1ENR_PWREN    = 1 << 28

	pwrCR_VOSPos = 14
	pwrCR_VOSMsk = 0x3

	flashACR_LATENCYMsk = 0xF
	flashACR_PRFTEN     = 1 << 8
	flashACR_ICEN       = 1 << 9
	flashACR_DCEN       = 1 << 10
)
