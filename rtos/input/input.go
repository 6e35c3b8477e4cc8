package input

import (
	"fmt"

	"whirl/hal"
)

// Snapshot is the pressed state of the three buttons at one instant.
type Snapshot struct {
	A bool
	B bool
	C bool
}

func (s Snapshot) String() string {
	return fmt.Sprintf("A=%s B=%s C=%s", onOff(s.A), onOff(s.B), onOff(s.C))
}

func onOff(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Sampler reads the button lines. Buttons pull their line low when pressed.
type Sampler struct {
	pins [3]hal.GPIOPin
}

func New(pins [3]hal.GPIOPin) *Sampler {
	return &Sampler{pins: pins}
}

// FromBoard looks up the button pins named by b.
func FromBoard(g hal.GPIO, b hal.Board) *Sampler {
	var pins [3]hal.GPIOPin
	if g != nil {
		for i, id := range [3]int{b.ButtonA, b.ButtonB, b.ButtonC} {
			pins[i] = g.Pin(id)
		}
	}
	return New(pins)
}

// Configure sets every button line to pulled-up input with interrupts off.
// A failing line is reported and will read as released.
func (s *Sampler) Configure() error {
	if err := hal.ConfigurePins(hal.ButtonConfig, s.pins[:]...); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	return nil
}

func (s *Sampler) Sample() Snapshot {
	return Snapshot{
		A: pressed(s.pins[0]),
		B: pressed(s.pins[1]),
		C: pressed(s.pins[2]),
	}
}

func pressed(p hal.GPIOPin) bool {
	if p == nil {
		return false
	}
	level, err := p.Read()
	if err != nil {
		return false
	}
	return !level
}
