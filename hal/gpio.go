package hal

import (
	"errors"
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

func (m GPIOMode) String() string {
	switch m {
	case GPIOModeInput:
		return "input"
	case GPIOModeOutput:
		return "output"
	default:
		return "invalid"
	}
}

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOIRQ selects the edge interrupt policy of a pin.
type GPIOIRQ uint8

const (
	GPIOIRQDisabled GPIOIRQ = iota
	GPIOIRQRising
	GPIOIRQFalling
	GPIOIRQBoth
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
	GPIOCapIRQ
)

// PinConfig is the full electrical setup of one pin.
type PinConfig struct {
	Mode GPIOMode
	Pull GPIOPull
	IRQ  GPIOIRQ
}

var (
	// ButtonConfig is the setup shared by the three button lines.
	ButtonConfig = PinConfig{Mode: GPIOModeInput, Pull: GPIOPullUp, IRQ: GPIOIRQDisabled}
	// SpeakerPinConfig is the setup of the PWM speaker line before the PWM takes it over.
	SpeakerPinConfig = PinConfig{Mode: GPIOModeOutput, Pull: GPIOPullNone, IRQ: GPIOIRQDisabled}
)

// GPIO provides access to general-purpose IO pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(cfg PinConfig) error
	Read() (level bool, err error)
	Write(level bool) error
}

// ConfigurePins applies cfg to every pin and reports all failures.
//
// A nil pin is reported as a failure; the remaining pins are still configured.
func ConfigurePins(cfg PinConfig, pins ...GPIOPin) error {
	var errs []error
	for i, p := range pins {
		if p == nil {
			errs = append(errs, fmt.Errorf("gpio: pin #%d: missing", i))
			continue
		}
		if err := p.Configure(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkConfig validates cfg against a pin's declared capabilities.
func checkConfig(name string, caps GPIOCaps, cfg PinConfig) error {
	switch cfg.Mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch cfg.Pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}

	switch cfg.IRQ {
	case GPIOIRQDisabled:
	case GPIOIRQRising, GPIOIRQFalling, GPIOIRQBoth:
		if caps&GPIOCapIRQ == 0 {
			return fmt.Errorf("gpio: pin %s: interrupts unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid irq policy", name)
	}
	return nil
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type virtualGPIO struct {
	pins []GPIOPin
}

func newVirtualGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &virtualGPIO{pins: pins}
}

func (g *virtualGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *virtualGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

// virtualPin simulates a pin with an optional external driver.
//
// An input with nothing driving it reads its pull level; a simulated switch to
// ground (drive(false)) overrides the pull-up the way a real button does.
type virtualPin struct {
	mu   sync.Mutex
	name string
	caps GPIOCaps

	configured bool
	cfg        PinConfig

	level   bool
	driven  bool
	extHigh bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{name: name, caps: caps}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(cfg PinConfig) error {
	if err := checkConfig(p.name, p.caps, cfg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	p.configured = true
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if p.cfg.Mode == GPIOModeOutput {
		return p.level, nil
	}
	if p.driven {
		return p.extHigh, nil
	}
	switch p.cfg.Pull {
	case GPIOPullUp:
		return true, nil
	case GPIOPullDown:
		return false, nil
	default:
		return p.level, nil
	}
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured || p.cfg.Mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// drive connects (or with release, disconnects) an external source to the pin.
func (p *virtualPin) drive(high bool) {
	p.mu.Lock()
	p.driven = true
	p.extHigh = high
	p.mu.Unlock()
}

func (p *virtualPin) release() {
	p.mu.Lock()
	p.driven = false
	p.mu.Unlock()
}

// setPressed models a normally-open button wired to ground.
func (p *virtualPin) setPressed(pressed bool) {
	if pressed {
		p.drive(false)
		return
	}
	p.release()
}
