// Package melody plays a fixed scale once on the speaker, then goes quiet
// and exits.
package melody

import (
	"errors"
	"sync"
	"time"

	"whirl/hal"
	logclient "whirl/rtos/client/logger"
	"whirl/rtos/kernel"
)

// Step is one note of the script.
type Step struct {
	FreqHz uint32
	Hold   time.Duration
}

const noteHold = 500 * time.Millisecond

// Scale is C4 up to C5.
var Scale = [...]Step{
	{FreqHz: 262, Hold: noteHold},
	{FreqHz: 294, Hold: noteHold},
	{FreqHz: 330, Hold: noteHold},
	{FreqHz: 349, Hold: noteHold},
	{FreqHz: 392, Hold: noteHold},
	{FreqHz: 440, Hold: noteHold},
	{FreqHz: 494, Hold: noteHold},
	{FreqHz: 523, Hold: noteHold},
}

const (
	LeadIn = 3000 * time.Millisecond
	Tail   = 3000 * time.Millisecond
)

// doneRetries bounds how many ticks the final log line may wait for room in
// the logger queue.
const doneRetries = 100

// Speaker wiring.
const (
	pwmTimer      = 3
	pwmChannel    = 1
	pwmResolution = 8
	pwmMode       = hal.PWMHighSpeed
)

// Duration is the time from Run to Terminated.
func Duration() time.Duration {
	d := LeadIn + Tail
	for _, s := range Scale {
		d += s.Hold
	}
	return d
}

type State uint8

const (
	Idle State = iota
	Playing
	Silence
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Silence:
		return "silence"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Status is the outcome of one SetSound call.
type Status struct {
	Timer   error
	Channel error
}

func (s Status) Err() error {
	return errors.Join(s.Timer, s.Channel)
}

// SetSound retunes the tone timer to freqHz and turns the channel on or off.
// The channel is configured even when the timer failed.
func SetSound(sp hal.Speaker, freqHz uint32, enable bool) Status {
	if sp == nil {
		return Status{Timer: hal.ErrUnsupported, Channel: hal.ErrUnsupported}
	}
	var st Status
	st.Timer = sp.ConfigureTimer(hal.PWMTimerConfig{
		Timer:      pwmTimer,
		FreqHz:     freqHz,
		Resolution: pwmResolution,
		Mode:       pwmMode,
	})
	st.Channel = sp.ConfigureChannel(hal.PWMChannelConfig{
		Channel: pwmChannel,
		Timer:   pwmTimer,
		Duty:    hal.ToneDuty(pwmResolution, enable),
	})
	return st
}

// Task runs the script once. Its state only moves forward.
type Task struct {
	speaker hal.Speaker
	logCap  kernel.Capability

	mu    sync.Mutex
	state State
	step  int
}

func New(speaker hal.Speaker, logCap kernel.Capability) *Task {
	return &Task{speaker: speaker, logCap: logCap, step: -1}
}

func (t *Task) Name() string { return "melody" }

func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Step returns the index into Scale being played, or -1 outside Playing.
func (t *Task) Step() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.step
}

func (t *Task) set(state State, step int) {
	t.mu.Lock()
	t.state = state
	t.step = step
	t.mu.Unlock()
}

// Run sleeps against absolute deadlines so a late wakeup never stretches
// the rest of the script.
func (t *Task) Run(ctx *kernel.Context) {
	deadline := ctx.NowTick() + kernel.Ticks(LeadIn)
	ctx.SleepUntil(deadline)

	for i, s := range Scale {
		t.set(Playing, i)
		t.sound(ctx, s.FreqHz, true)
		deadline += kernel.Ticks(s.Hold)
		ctx.SleepUntil(deadline)
	}

	t.set(Silence, -1)
	t.sound(ctx, Scale[len(Scale)-1].FreqHz, false)
	deadline += kernel.Ticks(Tail)
	ctx.SleepUntil(deadline)

	t.set(Terminated, -1)
	logclient.LogRetry(ctx, t.logCap, "melody: done", doneRetries)
}

func (t *Task) sound(ctx *kernel.Context, freqHz uint32, enable bool) {
	st := SetSound(t.speaker, freqHz, enable)
	onOff := "off"
	if enable {
		onOff = "on"
	}
	if err := st.Err(); err != nil {
		logclient.Logf(ctx, t.logCap, "melody: %d Hz %s: %v", freqHz, onOff, err)
		return
	}
	logclient.Logf(ctx, t.logCap, "melody: %d Hz %s", freqHz, onOff)
}
