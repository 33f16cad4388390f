package core

// HSIFreq is the STM32F4 internal RC oscillator frequency.
const HSIFreq = 16000000

// Bus limits for STM32F446 (datasheet, 2.7-3.6 V supply)
const (
	MaxPCLK1         = 45000000
	MaxPCLK2         = 90000000
	FlashWaitStateHz = 30000000 // HCLK covered by each flash wait state at 3.3 V
)

// ClockConfig describes the RCC clock tree fed from the HSI through the main PLL.
type ClockConfig struct {
	PLLM uint32 // VCO input divider
	PLLN uint32 // VCO multiplier
	PLLP uint32 // SYSCLK divider (2, 4, 6, 8)
	PLLQ uint32 // 48 MHz domain divider

	AHBDiv  uint32
	APB1Div uint32
	APB2Div uint32

	FlashLatency uint32 // wait states
	VoltageScale uint32 // PWR regulator scale 1..3
}

// DefaultClockConfig runs SYSCLK at 84 MHz from the HSI with APB1 at 42 MHz.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		PLLM:         16,
		PLLN:         336,
		PLLP:         4,
		PLLQ:         7,
		AHBDiv:       1,
		APB1Div:      2,
		APB2Div:      1,
		FlashLatency: 2,
		VoltageScale: 2,
	}
}

// VCOInHz returns the PLL input frequency
func (c ClockConfig) VCOInHz() uint32 {
	return HSIFreq / c.PLLM
}

// VCOOutHz returns the PLL VCO frequency
func (c ClockConfig) VCOOutHz() uint32 {
	return c.VCOInHz() * c.PLLN
}

// SysClockHz returns SYSCLK
func (c ClockConfig) SysClockHz() uint32 {
	return c.VCOOutHz() / c.PLLP
}

// PLL48Hz returns the PLLQ output used by USB/SDIO
func (c ClockConfig) PLL48Hz() uint32 {
	return c.VCOOutHz() / c.PLLQ
}

// HCLKHz returns the AHB clock, which also feeds SysTick
func (c ClockConfig) HCLKHz() uint32 {
	return c.SysClockHz() / c.AHBDiv
}

// PCLK1Hz returns the APB1 clock
func (c ClockConfig) PCLK1Hz() uint32 {
	return c.HCLKHz() / c.APB1Div
}

// PCLK2Hz returns the APB2 clock
func (c ClockConfig) PCLK2Hz() uint32 {
	return c.HCLKHz() / c.APB2Div
}

// maxSysClock returns the SYSCLK ceiling for a regulator scale (no over-drive)
func maxSysClock(scale uint32) uint32 {
	switch scale {
	case 1:
		return 168000000
	case 2:
		return 144000000
	case 3:
		return 120000000
	}
	return 0
}

// Validate checks the configuration against the F446 PLL and bus limits.
func (c ClockConfig) Validate() error {
	if c.PLLM < 2 || c.PLLM > 63 {
		return ErrPLLM
	}
	if c.PLLN < 50 || c.PLLN > 432 {
		return ErrPLLN
	}
	switch c.PLLP {
	case 2, 4, 6, 8:
	default:
		return ErrPLLP
	}
	if c.PLLQ < 2 || c.PLLQ > 15 {
		return ErrPLLQ
	}
	if in := c.VCOInHz(); in < 1000000 || in > 2000000 {
		return ErrVCOInput
	}
	if out := c.VCOOutHz(); out < 100000000 || out > 432000000 {
		return ErrVCOOutput
	}
	limit := maxSysClock(c.VoltageScale)
	if limit == 0 {
		return ErrVoltageScale
	}
	if c.SysClockHz() > limit {
		return ErrSysClock
	}
	if _, ok := ahbPrescalerBits(c.AHBDiv); !ok {
		return ErrAHBDivider
	}
	if _, ok := apbPrescalerBits(c.APB1Div); !ok {
		return ErrAPBDivider
	}
	if _, ok := apbPrescalerBits(c.APB2Div); !ok {
		return ErrAPBDivider
	}
	if c.PCLK1Hz() > MaxPCLK1 {
		return ErrAPB1Clock
	}
	if c.PCLK2Hz() > MaxPCLK2 {
		return ErrAPB2Clock
	}
	if c.FlashLatency < RequiredFlashLatency(c.HCLKHz()) {
		return ErrFlashLatency
	}
	return nil
}

// RequiredFlashLatency returns the minimum wait states for hclk at 3.3 V
func RequiredFlashLatency(hclk uint32) uint32 {
	if hclk == 0 {
		return 0
	}
	return (hclk - 1) / FlashWaitStateHz
}

// SysTickReload returns the SysTick RVR value for tickHz interrupts from HCLK.
func (c ClockConfig) SysTickReload(tickHz uint32) (uint32, error) {
	return SysTickReloadFor(c.HCLKHz(), tickHz)
}

// SysTickReloadFor returns the SysTick RVR value for tickHz interrupts from hclk.
func SysTickReloadFor(hclk, tickHz uint32) (uint32, error) {
	if tickHz == 0 || hclk/tickHz == 0 {
		return 0, ErrSysTickReload
	}
	reload := hclk/tickHz - 1
	if reload > 0xFFFFFF {
		return 0, ErrSysTickReload
	}
	return reload, nil
}

// UARTDivisor returns the USART BRR value for 16x oversampling, rounded to nearest.
func UARTDivisor(pclk, baud uint32) (uint32, error) {
	if baud == 0 || baud > pclk/16 {
		return 0, ErrBaudRate
	}
	return (pclk + baud/2) / baud, nil
}

// PLLCFGRMask covers the PLLM, PLLN, PLLP, PLLSRC and PLLQ fields of
// RCC_PLLCFGR. PLLR and the reserved bits are outside it.
const PLLCFGRMask = 0x3F | 0x1FF<<6 | 0x3<<16 | 1<<22 | 0xF<<24

// PLLCFGR returns the RCC_PLLCFGR fields selecting HSI as PLL source.
func (c ClockConfig) PLLCFGR() uint32 {
	return c.PLLM |
		c.PLLN<<6 |
		(c.PLLP/2-1)<<16 |
		c.PLLQ<<24
}

// MergePLLCFGR returns current with the fields under PLLCFGRMask replaced.
func (c ClockConfig) MergePLLCFGR(current uint32) uint32 {
	return current&^PLLCFGRMask | c.PLLCFGR()
}

// SYSCLK sources as encoded in RCC_CFGR SW and SWS
const (
	SysClkHSI = 0x0
	SysClkHSE = 0x1
	SysClkPLL = 0x2
)

const (
	cfgrSWSPos = 2
	crPLLON    = 1 << 24
)

// SysClockSource decodes RCC_CFGR.SWS
func SysClockSource(cfgr uint32) uint32 {
	return (cfgr >> cfgrSWSPos) & 0x3
}

// PLLPlan is the preparation needed before RCC_PLLCFGR may be written.
type PLLPlan struct {
	// SYSCLK runs from the PLL: switch to HSI and wait for SWS first.
	// PLLON cannot be cleared while the PLL drives SYSCLK.
	SwitchToHSI bool
	// PLL is running: clear PLLON and wait for PLLRDY to drop
	StopPLL bool
}

// PlanPLL derives the bring-up preparation from the current RCC_CFGR and
// RCC_CR values.
func PlanPLL(cfgr, cr uint32) PLLPlan {
	onPLL := SysClockSource(cfgr) == SysClkPLL
	return PLLPlan{
		SwitchToHSI: onPLL,
		StopPLL:     onPLL || cr&crPLLON != 0,
	}
}

// CFGRPrescalers returns the HPRE, PPRE1 and PPRE2 fields positioned for RCC_CFGR.
func (c ClockConfig) CFGRPrescalers() uint32 {
	hpre, _ := ahbPrescalerBits(c.AHBDiv)
	ppre1, _ := apbPrescalerBits(c.APB1Div)
	ppre2, _ := apbPrescalerBits(c.APB2Div)
	return hpre<<4 | ppre1<<10 | ppre2<<13
}

func ahbPrescalerBits(div uint32) (uint32, bool) {
	switch div {
	case 1:
		return 0x0, true
	case 2:
		return 0x8, true
	case 4:
		return 0x9, true
	case 8:
		return 0xA, true
	case 16:
		return 0xB, true
	case 64:
		return 0xC, true
	case 128:
		return 0xD, true
	case 256:
		return 0xE, true
	case 512:
		return 0xF, true
	}
	return 0, false
}

func apbPrescalerBits(div uint32) (uint32, bool) {
	switch div {
	case 1:
		return 0x0, true
	case 2:
		return 0x4, true
	case 4:
		return 0x5, true
	case 8:
		return 0x6, true
	case 16:
		return 0x7, true
	}
	return 0, false
}

