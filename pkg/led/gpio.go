package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOPin drives a host GPIO line.
type GPIOPin struct {
	pin gpio.PinIO
}

// OpenGPIO initializes the host drivers and looks up the named pin,
// e.g. "GPIO17". The pin starts low.
func OpenGPIO(name string) (*GPIOPin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("GPIO pin %q not found", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("GPIO pin %s: %w", name, err)
	}
	return &GPIOPin{pin: pin}, nil
}

// Set implements Pin.
func (p *GPIOPin) Set(high bool) error {
	return p.pin.Out(gpio.Level(high))
}

// Name returns the pin name.
func (p *GPIOPin) Name() string {
	return p.pin.Name()
}
