//go:build stm32f446

package main

import (
	"errors"
	"runtime/volatile"

	"nucleoblink/core"
)

// GPIO register offsets
const (
	gpioMODER   = 0x00
	gpioOTYPER  = 0x04
	gpioOSPEEDR = 0x08
	gpioPUPDR   = 0x0C
	gpioODR     = 0x14
	gpioBSRR    = 0x18
	gpioAFRL    = 0x20

	gpioModeOutput    = 0x1
	gpioModeAlternate = 0x2

	gpioPorts = 8 // GPIOA..GPIOH
)

var (
	errInvalidPin    = errors.New("invalid GPIO pin")
	errNotConfigured = errors.New("GPIO pin not configured as output")
)

// Pin encodes port*16 + line
func Pin(port byte, line uint8) core.GPIOPin {
	return core.GPIOPin(uint32(port-'A')*16 + uint32(line))
}

func pinPort(pin core.GPIOPin) (base uintptr, line uint8, ok bool) {
	port := uint32(pin) / 16
	if port >= gpioPorts {
		return 0, 0, false
	}
	return gpioBase + uintptr(port)*gpioStride, uint8(pin % 16), true
}

func gpioReg(base uintptr, off uintptr) *volatile.Register32 {
	return reg(base + off)
}

// enableGPIOPort turns on the AHB1 clock for the pin's port
func enableGPIOPort(pin core.GPIOPin) {
	rccAHB1ENR.SetBits(1 << (uint32(pin) / 16))
	_ = rccAHB1ENR.Get() // delay after clock enable
}

// STM32GPIODriver implements core.GPIODriver on the F4 GPIO block
type STM32GPIODriver struct {
	outputs [gpioPorts]uint16 // configured output lines per port
}

// NewSTM32GPIODriver creates a driver with no pins configured
func NewSTM32GPIODriver() *STM32GPIODriver {
	return &STM32GPIODriver{}
}

// ConfigureOutput sets push-pull output, low speed, no pull
func (d *STM32GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	base, line, ok := pinPort(pin)
	if !ok {
		return errInvalidPin
	}
	enableGPIOPort(pin)

	gpioReg(base, gpioMODER).ReplaceBits(gpioModeOutput, 0x3, line*2)
	gpioReg(base, gpioOTYPER).ClearBits(1 << line)
	gpioReg(base, gpioOSPEEDR).ReplaceBits(0, 0x3, line*2)
	gpioReg(base, gpioPUPDR).ReplaceBits(0, 0x3, line*2)

	d.outputs[uint32(pin)/16] |= 1 << line
	return nil
}

// SetPin drives the pin through BSRR, which needs no read-modify-write
func (d *STM32GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	base, line, err := d.output(pin)
	if err != nil {
		return err
	}
	if value {
		gpioReg(base, gpioBSRR).Set(1 << line)
	} else {
		gpioReg(base, gpioBSRR).Set(1 << (line + 16))
	}
	return nil
}

// GetPin reads back the output data register
func (d *STM32GPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	base, line, err := d.output(pin)
	if err != nil {
		return false, err
	}
	return gpioReg(base, gpioODR).HasBits(1 << line), nil
}

func (d *STM32GPIODriver) output(pin core.GPIOPin) (uintptr, uint8, error) {
	base, line, ok := pinPort(pin)
	if !ok {
		return 0, 0, errInvalidPin
	}
	if d.outputs[uint32(pin)/16]&(1<<line) == 0 {
		return 0, 0, errNotConfigured
	}
	return base, line, nil
}

// configureAlternate routes pin to alternate function af (lines 0-7 only)
func configureAlternate(pin core.GPIOPin, af uint32) {
	base, line, _ := pinPort(pin)
	enableGPIOPort(pin)
	gpioReg(base, gpioAFRL).ReplaceBits(af, 0xF, line*4)
	gpioReg(base, gpioMODER).ReplaceBits(gpioModeAlternate, 0x3, line*2)
}
