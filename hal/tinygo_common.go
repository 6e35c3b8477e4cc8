//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin is a GPIOPin backed by a real MCU pin.
type machinePin struct {
	name string
	pin  machine.Pin
	cfg  PinConfig
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin}
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(cfg PinConfig) error {
	if err := checkConfig(p.name, p.Caps(), cfg); err != nil {
		return err
	}
	var mode machine.PinMode
	switch {
	case cfg.Mode == GPIOModeOutput:
		mode = machine.PinOutput
	case cfg.Pull == GPIOPullUp:
		mode = machine.PinInputPullup
	case cfg.Pull == GPIOPullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})
	p.cfg = cfg
	return nil
}

func (p *machinePin) Read() (bool, error) {
	return p.pin.Get(), nil
}

func (p *machinePin) Write(level bool) error {
	if p.cfg.Mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// memFramebuffer keeps the firmware running when no panel answers.
type memFramebuffer struct {
	w   int
	h   int
	buf []byte
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int          { return f.w }
func (f *memFramebuffer) Height() int         { return f.h }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Present() error      { return ErrNotImplemented }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}

type unavailableSpeaker struct{}

func (unavailableSpeaker) ConfigureTimer(PWMTimerConfig) error     { return ErrNotImplemented }
func (unavailableSpeaker) ConfigureChannel(PWMChannelConfig) error { return ErrNotImplemented }
