//go:build tinygo && baremetal

package hal

import (
	"machine"
)

// Board wiring: Raspberry Pi Pico, ILI9341 panel on SPI1, three buttons to
// ground and a piezo on a PWM-capable pin.
const (
	pinButtonA = machine.GP16
	pinButtonB = machine.GP17
	pinButtonC = machine.GP18
	pinSpeaker = machine.GP2
)

type tinyGoHAL struct {
	logger  *uartLogger
	gpio    GPIO
	fb      Framebuffer
	t       *tinyGoTime
	speaker Speaker
}

// New returns the Pico board HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	var fb Framebuffer
	if disp, err := newILI9341Framebuffer(); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = newMemFramebuffer(320, 240)
	}

	var speaker Speaker = unavailableSpeaker{}
	if sp, err := newPWMSpeaker(pinSpeaker); err == nil {
		speaker = sp
	} else {
		logger.WriteLineString("hal: speaker: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		gpio: newVirtualGPIO([]GPIOPin{
			newMachinePin("BTN_A", pinButtonA),
			newMachinePin("BTN_B", pinButtonB),
			newMachinePin("BTN_C", pinButtonC),
			newMachinePin("SPK", pinSpeaker),
		}),
		fb:      fb,
		t:       newTinyGoTime(),
		speaker: speaker,
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Speaker() Speaker { return h.speaker }
func (h *tinyGoHAL) Time() Time       { return h.t }

func (h *tinyGoHAL) Board() Board {
	return Board{ButtonA: 0, ButtonB: 1, ButtonC: 2, Speaker: 3}
}
