// Package device provides the key input and indicator output hardware
// boundary. The real implementations drive periph.io GPIO pins on a
// Raspberry Pi; the simulated implementations run tests and development
// machines without hardware.
package device

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpioutil"
	"periph.io/x/host/v3"
)

// GPIOKey reads a straight key wired between a GPIO pin and ground. The
// pin uses the internal pull-up and is debounced at the driver layer, so
// consumers see a clean pressed/released stream.
type GPIOKey struct {
	pin gpio.PinIO
}

// OpenGPIOKey initializes the GPIO host and opens the named pin with the
// given debounce window.
func OpenGPIOKey(name string, debounce time.Duration) (*GPIOKey, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init gpio host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no gpio pin named %q", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure pin %q: %w", name, err)
	}
	debounced, err := gpioutil.Debounce(pin, debounce, 0, gpio.NoEdge)
	if err != nil {
		return nil, fmt.Errorf("debounce pin %q: %w", name, err)
	}
	return &GPIOKey{pin: debounced}, nil
}

// Pressed reports whether the key is held. Closing the key pulls the pin
// low.
func (k *GPIOKey) Pressed() bool {
	return k.pin.Read() == gpio.Low
}

// GPIOBuzzer drives an active buzzer or LED on a GPIO pin.
type GPIOBuzzer struct {
	pin gpio.PinIO
}

// OpenGPIOBuzzer initializes the GPIO host and opens the named pin, off.
func OpenGPIOBuzzer(name string) (*GPIOBuzzer, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init gpio host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no gpio pin named %q", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configure pin %q: %w", name, err)
	}
	return &GPIOBuzzer{pin: pin}, nil
}

func (b *GPIOBuzzer) On() {
	_ = b.pin.Out(gpio.High)
}

func (b *GPIOBuzzer) Off() {
	_ = b.pin.Out(gpio.Low)
}
