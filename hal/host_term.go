//go:build !tinygo && !windows

package hal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/term"
)

// termHold is how long a key press keeps a button down. Terminals report
// presses only, so releases are synthesized.
const termHold = 150 * time.Millisecond

// termButtons feeds key presses from the controlling terminal into the
// button pins: a/b/c press the buttons, q cancels the run.
type termButtons struct {
	t      *term.Term
	h      *hostHAL
	cancel context.CancelFunc

	mu     sync.Mutex
	timers [3]*time.Timer
}

func openTermButtons(h *hostHAL, cancel context.CancelFunc) (*termButtons, error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return &termButtons{t: t, h: h, cancel: cancel}, nil
}

func (b *termButtons) run() {
	buf := make([]byte, 16)
	for {
		n, err := b.t.Read(buf)
		if err != nil {
			return
		}
		for _, c := range buf[:n] {
			switch c {
			case 'a', 'A':
				b.hold(0)
			case 'b', 'B':
				b.hold(1)
			case 'c', 'C':
				b.hold(2)
			case 'q', 'Q', 0x03:
				if b.cancel != nil {
					b.cancel()
				}
			}
		}
	}
}

func (b *termButtons) hold(i int) {
	b.h.press(i, true)

	b.mu.Lock()
	defer b.mu.Unlock()
	if t := b.timers[i]; t != nil {
		t.Reset(termHold)
		return
	}
	b.timers[i] = time.AfterFunc(termHold, func() { b.h.press(i, false) })
}

func (b *termButtons) close() error {
	b.mu.Lock()
	for _, t := range b.timers {
		if t != nil {
			t.Stop()
		}
	}
	b.mu.Unlock()

	if err := b.t.Restore(); err != nil {
		_ = b.t.Close()
		return err
	}
	return b.t.Close()
}
