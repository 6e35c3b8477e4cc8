//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

// presentRows is how many rows are swapped and pushed per SPI transfer.
const presentRows = 8

type ili9341Framebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	tx     []byte

	lcd *ili9341.Device
}

func newILI9341Framebuffer() (*ili9341Framebuffer, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	if err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := ili9341.NewSPI(machine.SPI1, machine.GP14, machine.GP13, machine.GP15)
	lcd.Configure(ili9341.Config{})
	// Landscape: 320x240.
	lcd.SetRotation(1)

	w, h := lcd.Size()
	if w <= 0 || h <= 0 {
		return nil, errors.New("ili9341: no size reported")
	}
	stride := int(w) * 2
	return &ili9341Framebuffer{
		w:      int(w),
		h:      int(h),
		stride: stride,
		buf:    make([]byte, stride*int(h)),
		tx:     make([]byte, stride*presentRows),
		lcd:    lcd,
	}, nil
}

func (f *ili9341Framebuffer) Width() int          { return f.w }
func (f *ili9341Framebuffer) Height() int         { return f.h }
func (f *ili9341Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *ili9341Framebuffer) StrideBytes() int    { return f.stride }
func (f *ili9341Framebuffer) Buffer() []byte      { return f.buf }

func (f *ili9341Framebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}

// Present pushes the buffer in bands; the panel wants big-endian RGB565.
func (f *ili9341Framebuffer) Present() error {
	for y := 0; y < f.h; y += presentRows {
		rows := presentRows
		if y+rows > f.h {
			rows = f.h - y
		}
		src := f.buf[y*f.stride : (y+rows)*f.stride]
		dst := f.tx[:len(src)]
		for i := 0; i+1 < len(src); i += 2 {
			dst[i] = src[i+1]
			dst[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), dst, int16(f.w), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}
