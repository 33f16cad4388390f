//go:build stm32f446

package main

import "nucleoblink/core"

var (
	usart2SR  = reg(usart2Base + 0x00)
	usart2DR  = reg(usart2Base + 0x04)
	usart2BRR = reg(usart2Base + 0x08)
	usart2CR1 = reg(usart2Base + 0x0C)
)

const (
	usartSR_TXE = 1 << 7
	usartCR1_TE = 1 << 3
	usartCR1_UE = 1 << 13
	afUSART2    = 7
	uartTXLine  = 2 // PA2, wired to the ST-LINK virtual COM port
)

// InitUART enables transmit-only USART2 on PA2
func InitUART(pclk1, baud uint32) error {
	brr, err := core.UARTDivisor(pclk1, baud)
	if err != nil {
		return err
	}

	configureAlternate(Pin('A', uartTXLine), afUSART2)
	rccAPB1ENR.SetBits(rccAPB1ENR_USART2EN)
	_ = rccAPB1ENR.Get()

	usart2CR1.Set(0)
	usart2BRR.Set(brr)
	usart2CR1.Set(usartCR1_UE | usartCR1_TE)
	return nil
}

// UARTWrite blocks until every byte is in the transmit register
func UARTWrite(data []byte) {
	for _, b := range data {
		for !usart2SR.HasBits(usartSR_TXE) {
		}
		usart2DR.Set(uint32(b))
	}
}

// uartPrintln is the core debug writer
func uartPrintln(s string) {
	UARTWrite([]byte(s))
	UARTWrite([]byte("\r\n"))
}
