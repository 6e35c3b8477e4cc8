//go:build tinygo && baremetal

package hal

import (
	"errors"
	"fmt"
	"machine"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// pwmSpeaker maps the timer/channel model onto one RP2 PWM slice: the
// slice period is the timer frequency, the pin's channel carries the duty.
type pwmSpeaker struct {
	pin machine.Pin
	pwm pwmDevice
	ch  uint8

	timers map[uint8]PWMTimerConfig
}

func newPWMSpeaker(pin machine.Pin) (*pwmSpeaker, error) {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil, errors.New("pwm: no slice for speaker pin")
	}
	return &pwmSpeaker{pin: pin, pwm: pwm, timers: make(map[uint8]PWMTimerConfig)}, nil
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (s *pwmSpeaker) ConfigureTimer(cfg PWMTimerConfig) error {
	if err := validateTimer(cfg); err != nil {
		return err
	}
	if err := s.pwm.Configure(machine.PWMConfig{Period: 1e9 / uint64(cfg.FreqHz)}); err != nil {
		return fmt.Errorf("pwm: timer %d: %w", cfg.Timer, err)
	}
	ch, err := s.pwm.Channel(s.pin)
	if err != nil {
		return fmt.Errorf("pwm: timer %d: %w", cfg.Timer, err)
	}
	s.ch = ch
	s.timers[cfg.Timer] = cfg
	return nil
}

func (s *pwmSpeaker) ConfigureChannel(cfg PWMChannelConfig) error {
	t, ok := s.timers[cfg.Timer]
	if !ok {
		return fmt.Errorf("pwm: channel %d: timer %d not configured", cfg.Channel, cfg.Timer)
	}
	full := MaxDuty(t.Resolution)
	if cfg.Duty > full {
		return fmt.Errorf("pwm: channel %d: duty %d exceeds %d-bit range", cfg.Channel, cfg.Duty, t.Resolution)
	}
	top := s.pwm.Top()
	s.pwm.Set(s.ch, uint32(uint64(top)*uint64(cfg.Duty)/uint64(full+1)))
	s.pwm.Enable(cfg.Duty != 0)
	return nil
}
