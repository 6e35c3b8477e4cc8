package app

import (
	"whirl/hal"
	"whirl/internal/buildinfo"
	"whirl/rtos/kernel"
	"whirl/rtos/services/logger"
)

type system struct {
	k      *kernel.Kernel
	logCap kernel.Capability
	main   *mainTask
}

// New boots the firmware on h and returns the per-frame hook host runners
// call. All work happens on kernel tasks, so the hook has nothing to do.
func New(h hal.HAL) func() error {
	_ = newSystem(h)
	return func() error { return nil }
}

// Run boots the firmware and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func newSystem(h hal.HAL) *system {
	installPanicHandler(h)
	if l := h.Logger(); l != nil {
		l.WriteLineString("whirl " + buildinfo.String())
	}

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	s := &system{
		k:      k,
		logCap: logEP.Restrict(kernel.RightSend),
	}

	if _, err := k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv))); err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("app: logger: " + err.Error())
		}
	}

	s.main = newMainTask(h, s.logCap)
	if _, err := k.AddTask(s.main); err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("app: main: " + err.Error())
		}
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}
