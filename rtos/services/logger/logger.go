package logger

import (
	"whirl/hal"
	"whirl/rtos/kernel"
	"whirl/rtos/proto"
)

// Service drains MsgLogLine messages into the board's line logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Name() string { return "logger" }

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if s.log == nil || msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		s.log.WriteLineBytes(msg.Payload())
	}
}
