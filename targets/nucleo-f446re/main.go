//go:build stm32f446

// Command nucleo-f446re blinks LD2 (PA5) on a NUCLEO-F446RE every 250 ms and
// streams a telemetry frame per toggle on the ST-LINK virtual COM port.
package main

import (
	"nucleoblink/core"
	"nucleoblink/protocol"
)

const (
	ledLine  = 5 // LD2 on PA5
	interval = core.DefaultInterval
	baudRate = 115200
)

var (
	// Frame scratch space shared by boot and toggle reports
	frame   = protocol.NewScratchOutput()
	encoder = protocol.NewEncoder(frame)
)

func main() {
	hclk, pclk1, clockErr := InitClock(core.DefaultClockConfig())

	if err := InitSysTick(hclk); err != nil {
		// Without a tick the delay would spin forever; nothing else to do
		panic("systick: " + err.Error())
	}

	uartErr := InitUART(pclk1, baudRate)
	if uartErr == nil {
		core.SetDebugWriter(uartPrintln)
	}
	if clockErr != nil {
		core.DebugPrintln("clock config rejected, running from HSI: " + clockErr.Error())
	}
	core.DebugPrintln("hclk " + core.Utoa(hclk) + " Hz")

	core.SetGPIODriver(NewSTM32GPIODriver())
	line, err := core.NewPinLine(core.MustGPIO(), Pin('A', ledLine))
	if err != nil {
		panic("LED pin: " + err.Error())
	}

	hook := core.RecordToggle
	if uartErr == nil {
		frame.Reset()
		encoder.SendBoot(interval, hclk)
		UARTWrite(frame.Result())
		hook = reportToggle
	}

	loop := core.NewToggleLoop(line, core.SysTick{},
		core.WithInterval(interval),
		core.WithToggleHook(hook),
	)
	loop.Init()
	loop.Run()
}

// reportToggle records the toggle for post-mortem and sends it to the host.
// A toggle frame is at most 17 bytes, under 1.5 ms at 115200 baud.
func reportToggle(evt core.ToggleEvent) {
	core.RecordToggle(evt)
	frame.Reset()
	encoder.SendToggle(evt.Seq, evt.Tick, evt.High)
	UARTWrite(frame.Result())
}
