//go:build !tinygo && windows

package hal

import (
	"context"
	"errors"
)

type termButtons struct{}

func openTermButtons(h *hostHAL, cancel context.CancelFunc) (*termButtons, error) {
	_ = h
	_ = cancel
	return nil, errors.New("terminal: key input unsupported on this platform")
}

func (b *termButtons) run()         {}
func (b *termButtons) close() error { return nil }
