package app

import (
	"time"

	"whirl/hal"
	"whirl/internal/buildinfo"
	logclient "whirl/rtos/client/logger"
	"whirl/rtos/gfx"
	"whirl/rtos/input"
	"whirl/rtos/kernel"
	"whirl/rtos/tasks/melody"
	"whirl/rtos/tasks/spinner"
)

// FramePeriod is the delay between two iterations of the main loop.
const FramePeriod = 40 * time.Millisecond

const mainTaskName = "main"

type sampler interface {
	Sample() input.Snapshot
}

type renderer interface {
	Render(s input.Snapshot)
}

type mainTask struct {
	h      hal.HAL
	logCap kernel.Capability

	melodyID kernel.TaskID
}

func newMainTask(h hal.HAL, logCap kernel.Capability) *mainTask {
	return &mainTask{h: h, logCap: logCap}
}

func (t *mainTask) Name() string { return mainTaskName }

func (t *mainTask) Run(ctx *kernel.Context) {
	canvas := gfx.NewCanvas(t.h.Display())
	if err := canvas.Init(); err != nil {
		logclient.Logf(ctx, t.logCap, "app: display: %v", err)
	} else {
		canvas.Clear(gfx.Black)
		gfx.Banner(canvas, gfx.White, "whirl", buildinfo.Short())
		canvas.Present()
	}

	board := t.h.Board()
	gpio := t.h.GPIO()

	in := input.FromBoard(gpio, board)
	if err := in.Configure(); err != nil {
		logclient.Logf(ctx, t.logCap, "app: %v", err)
	}

	var spk hal.GPIOPin
	if gpio != nil {
		spk = gpio.Pin(board.Speaker)
	}
	if err := hal.ConfigurePins(hal.SpeakerPinConfig, spk); err != nil {
		logclient.Logf(ctx, t.logCap, "app: speaker: %v", err)
	}

	id, err := ctx.AddTask(melody.New(t.h.Speaker(), t.logCap))
	if err != nil {
		logclient.Logf(ctx, t.logCap, "app: melody: %v", err)
	}
	t.melodyID = id

	r := spinner.New(canvas)
	r.Init()
	logclient.Logf(ctx, t.logCap, "app: running %dx%d", canvas.Width(), canvas.Height())

	loop(ctx, in, r)

	if info, ok := kernel.LastPanic(); ok && canvas.Width() > 0 {
		drawPanic(canvas, info)
	}
}

// loop runs sample, render, sleep until the kernel panics.
func loop(ctx *kernel.Context, in sampler, r renderer) {
	for !kernel.InPanicMode() {
		r.Render(in.Sample())
		ctx.Sleep(FramePeriod)
	}
}
