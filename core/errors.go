package core

import "errors"

// Clock tree validation errors
var (
	ErrPLLM          = errors.New("PLLM out of range 2..63")
	ErrPLLN          = errors.New("PLLN out of range 50..432")
	ErrPLLP          = errors.New("PLLP must be 2, 4, 6 or 8")
	ErrPLLQ          = errors.New("PLLQ out of range 2..15")
	ErrVCOInput      = errors.New("PLL VCO input outside 1-2 MHz")
	ErrVCOOutput     = errors.New("PLL VCO output outside 100-432 MHz")
	ErrSysClock      = errors.New("SYSCLK above limit for voltage scale")
	ErrVoltageScale  = errors.New("voltage scale must be 1, 2 or 3")
	ErrAHBDivider    = errors.New("invalid AHB prescaler")
	ErrAPBDivider    = errors.New("invalid APB prescaler")
	ErrAPB1Clock     = errors.New("PCLK1 above 45 MHz")
	ErrAPB2Clock     = errors.New("PCLK2 above 90 MHz")
	ErrFlashLatency  = errors.New("flash latency too low for HCLK")
	ErrSysTickReload = errors.New("SysTick reload does not fit 24 bits")
	ErrBaudRate      = errors.New("baud rate not reachable from PCLK")
)
