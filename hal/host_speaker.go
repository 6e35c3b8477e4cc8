//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

// toneSink receives the audible output of the simulated PWM peripheral.
//
// duty is the high fraction of the square wave (0 silences it).
type toneSink interface {
	setTone(freqHz uint32, duty float64)
}

// hostSpeaker emulates a timer/channel PWM peripheral and forwards the
// resulting square wave to the attached sinks.
type hostSpeaker struct {
	mu       sync.Mutex
	timers   map[uint8]PWMTimerConfig
	channels map[uint8]PWMChannelConfig
	sinks    []toneSink
}

func newHostSpeaker() *hostSpeaker {
	return &hostSpeaker{
		timers:   make(map[uint8]PWMTimerConfig),
		channels: make(map[uint8]PWMChannelConfig),
	}
}

func (s *hostSpeaker) attach(sink toneSink) {
	if sink == nil {
		return
	}
	s.mu.Lock()
	s.sinks = append(s.sinks, sink)
	s.mu.Unlock()
}

func (s *hostSpeaker) ConfigureTimer(cfg PWMTimerConfig) error {
	if err := validateTimer(cfg); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[cfg.Timer] = cfg
	for _, ch := range s.channels {
		if ch.Timer == cfg.Timer {
			s.emitLocked(cfg, ch)
		}
	}
	return nil
}

func (s *hostSpeaker) ConfigureChannel(cfg PWMChannelConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[cfg.Timer]
	if !ok {
		return fmt.Errorf("pwm: channel %d: timer %d not configured", cfg.Channel, cfg.Timer)
	}
	if cfg.Duty > MaxDuty(t.Resolution) {
		return fmt.Errorf("pwm: channel %d: duty %d exceeds %d-bit range", cfg.Channel, cfg.Duty, t.Resolution)
	}
	s.channels[cfg.Channel] = cfg
	s.emitLocked(t, cfg)
	return nil
}

func (s *hostSpeaker) emitLocked(t PWMTimerConfig, ch PWMChannelConfig) {
	duty := float64(ch.Duty) / float64(MaxDuty(t.Resolution)+1)
	for _, sink := range s.sinks {
		sink.setTone(t.FreqHz, duty)
	}
}
