//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const (
	hostWidth  = 320
	hostHeight = 240
)

// Host pin table. The order matches Board().
const (
	hostPinButtonA = iota
	hostPinButtonB
	hostPinButtonC
	hostPinSpeaker
)

type hostHAL struct {
	logger  *hostLogger
	gpio    GPIO
	buttons [3]*virtualPin
	fb      *hostFramebuffer
	t       *hostTime
	speaker *hostSpeaker
}

// New returns a host HAL implementation.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}

	var buttons [3]*virtualPin
	pins := make([]GPIOPin, 0, 4)
	for i, name := range []string{"BTN_A", "BTN_B", "BTN_C"} {
		buttons[i] = newVirtualPin(name, GPIOCapInput|GPIOCapPullUp|GPIOCapPullDown)
		pins = append(pins, buttons[i])
	}
	pins = append(pins, newVirtualPin("SPK", GPIOCapOutput))

	return &hostHAL{
		logger:  logger,
		gpio:    newVirtualGPIO(pins),
		buttons: buttons,
		fb:      newHostFramebuffer(hostWidth, hostHeight),
		t:       newHostTime(),
		speaker: newHostSpeaker(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Speaker() Speaker { return h.speaker }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) Board() Board {
	return Board{
		ButtonA: hostPinButtonA,
		ButtonB: hostPinButtonB,
		ButtonC: hostPinButtonC,
		Speaker: hostPinSpeaker,
	}
}

// press sets the simulated state of button i (0=A, 1=B, 2=C).
func (h *hostHAL) press(i int, pressed bool) {
	if i < 0 || i >= len(h.buttons) {
		return
	}
	h.buttons[i].setPressed(pressed)
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
