//go:build !tinygo

package hal

import (
	"sync/atomic"
	"time"
)

type hostTime struct {
	ch  chan uint64
	seq atomic.Uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// now returns the last emitted tick.
func (t *hostTime) now() uint64 { return t.seq.Load() }

// step converts wall time elapsed since the previous call into 1ms ticks.
func (t *hostTime) step() {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

// stepN emits n ticks. Only the newest value matters to consumers, so a full
// channel drops the tick without losing time.
func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		seq := t.seq.Add(1)
		select {
		case t.ch <- seq:
		default:
		}
	}
}
