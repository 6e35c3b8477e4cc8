package hal

import "fmt"

// PWMSpeedMode selects the PWM timer clocking group.
type PWMSpeedMode uint8

const (
	PWMLowSpeed PWMSpeedMode = iota
	PWMHighSpeed
)

func (m PWMSpeedMode) String() string {
	switch m {
	case PWMLowSpeed:
		return "low-speed"
	case PWMHighSpeed:
		return "high-speed"
	default:
		return "invalid"
	}
}

// PWMTimerConfig sets up the timer that clocks a PWM channel.
type PWMTimerConfig struct {
	Timer      uint8
	FreqHz     uint32
	Resolution uint8 // duty resolution in bits
	Mode       PWMSpeedMode
}

// PWMChannelConfig binds a channel to a timer and sets its duty.
type PWMChannelConfig struct {
	Channel uint8
	Timer   uint8
	Duty    uint32
}

// Speaker is a PWM-driven piezo or speaker.
//
// Both calls report a status that callers are free to ignore; a speaker that
// failed to configure simply stays silent.
type Speaker interface {
	ConfigureTimer(cfg PWMTimerConfig) error
	ConfigureChannel(cfg PWMChannelConfig) error
}

// MaxDuty returns the full-scale duty value for a resolution in bits.
func MaxDuty(resolution uint8) uint32 {
	if resolution == 0 {
		return 0
	}
	if resolution >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<resolution - 1
}

// ToneDuty is the duty for an enabled (half-scale) or disabled tone.
//
// At 8 bit resolution an enabled tone uses 0x7F.
func ToneDuty(resolution uint8, enable bool) uint32 {
	if !enable {
		return 0
	}
	return MaxDuty(resolution) >> 1
}

func validateTimer(cfg PWMTimerConfig) error {
	if cfg.FreqHz == 0 {
		return fmt.Errorf("pwm: timer %d: zero frequency", cfg.Timer)
	}
	if cfg.Resolution == 0 || cfg.Resolution > 20 {
		return fmt.Errorf("pwm: timer %d: invalid resolution %d", cfg.Timer, cfg.Resolution)
	}
	if cfg.Mode != PWMLowSpeed && cfg.Mode != PWMHighSpeed {
		return fmt.Errorf("pwm: timer %d: invalid speed mode", cfg.Timer)
	}
	return nil
}
