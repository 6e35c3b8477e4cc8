//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Keys reads a/b/c presses from the controlling terminal.
	Keys bool
	// WAVPath, if set, receives the speaker output when the run ends.
	WAVPath string
}

// RunHeadless runs the firmware without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := New().(*hostHAL)

	if cfg.WAVPath != "" {
		rec := newWAVRecorder(h.t.now)
		h.speaker.attach(rec)
		defer func() {
			if werr := rec.writeFile(cfg.WAVPath); werr != nil {
				err = errors.Join(err, werr)
			}
		}()
	}

	if cfg.Keys {
		keys, kerr := openTermButtons(h, cancel)
		if kerr != nil {
			h.logger.WriteLineString(kerr.Error())
		} else {
			go keys.run()
			defer keys.close()
		}
	}

	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
