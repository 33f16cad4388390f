package core

// GPIOPin identifies a hardware GPIO pin.
// Targets encode port and line, e.g. PA5 = port A (0) * 16 + 5.
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a push-pull digital output
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads back the current output state
	GetPin(pin GPIOPin) (bool, error)
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}

// PinLine drives a single GPIO pin as an OutputLine.
type PinLine struct {
	Driver GPIODriver
	Pin    GPIOPin
}

// NewPinLine configures pin as an output on d and returns it as a line.
func NewPinLine(d GPIODriver, pin GPIOPin) (*PinLine, error) {
	if err := d.ConfigureOutput(pin); err != nil {
		return nil, err
	}
	return &PinLine{Driver: d, Pin: pin}, nil
}

// Set implements OutputLine. Write errors are dropped: the pin was validated
// when it was configured and the toggle loop has no failure path.
func (l *PinLine) Set(high bool) {
	_ = l.Driver.SetPin(l.Pin, high)
}
