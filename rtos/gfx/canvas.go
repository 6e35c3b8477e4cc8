package gfx

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"whirl/hal"
)

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

var (
	ErrNoFramebuffer = errors.New("gfx: no framebuffer")
	ErrPixelFormat   = errors.New("gfx: unsupported pixel format")
)

// Surface is the drawing capability the animation needs.
type Surface interface {
	Init() error
	Width() int
	Height() int
	Clear(c color.RGBA)
	FillTriangle(x1, y1, x2, y2, x3, y3 int, c color.RGBA)
	Present()
}

// Canvas draws into an RGB565 hal.Framebuffer. It also satisfies
// drivers.Displayer so tinyfont can render onto it.
type Canvas struct {
	disp hal.Display
	fb   hal.Framebuffer
}

func NewCanvas(disp hal.Display) *Canvas {
	return &Canvas{disp: disp}
}

func (c *Canvas) Init() error {
	if c.disp == nil {
		return ErrNoFramebuffer
	}
	fb := c.disp.Framebuffer()
	if fb == nil {
		return ErrNoFramebuffer
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return ErrPixelFormat
	}
	c.fb = fb
	return nil
}

func (c *Canvas) Width() int {
	if c.fb == nil {
		return 0
	}
	return c.fb.Width()
}

func (c *Canvas) Height() int {
	if c.fb == nil {
		return 0
	}
	return c.fb.Height()
}

func (c *Canvas) Clear(col color.RGBA) {
	if c.fb == nil {
		return
	}
	c.fb.ClearRGB(col.R, col.G, col.B)
}

// Present pushes the frame out. Errors are dropped: a missed frame is
// replaced by the next one 40 ms later.
func (c *Canvas) Present() {
	if c.fb == nil {
		return
	}
	_ = c.fb.Present()
}

type point struct {
	x int
	y int
}

// FillTriangle scan-converts the triangle one row at a time. Vertices may be
// given in any order and may lie outside the surface.
func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 int, col color.RGBA) {
	if c.fb == nil {
		return
	}
	pixel := RGB565(col)
	pts := []point{{x1, y1}, {x2, y2}, {x3, y3}}
	sort.Slice(pts, func(i, j int) bool { return pts[i].y < pts[j].y })
	top, mid, bot := pts[0], pts[1], pts[2]

	if bot.y == top.y {
		lo, hi := top.x, top.x
		for _, p := range pts[1:] {
			lo = min(lo, p.x)
			hi = max(hi, p.x)
		}
		c.span(top.y, lo, hi, pixel)
		return
	}

	for y := top.y; y <= bot.y; y++ {
		var xa float64
		if y < mid.y {
			xa = edgeX(top, mid, y)
		} else {
			xa = edgeX(mid, bot, y)
		}
		xb := edgeX(top, bot, y)
		c.span(y, int(math.Round(xa)), int(math.Round(xb)), pixel)
	}
}

func edgeX(a, b point, y int) float64 {
	if b.y == a.y {
		return float64(a.x)
	}
	t := float64(y-a.y) / float64(b.y-a.y)
	return float64(a.x) + t*float64(b.x-a.x)
}

func (c *Canvas) span(y, xa, xb int, pixel uint16) {
	h := c.fb.Height()
	w := c.fb.Width()
	if y < 0 || y >= h {
		return
	}
	if xa > xb {
		xa, xb = xb, xa
	}
	xa = max(xa, 0)
	xb = min(xb, w-1)
	if xa > xb {
		return
	}
	buf := c.fb.Buffer()
	row := y * c.fb.StrideBytes()
	lo, hi := byte(pixel), byte(pixel>>8)
	for x := xa; x <= xb; x++ {
		off := row + x*2
		if off+1 >= len(buf) {
			return
		}
		buf[off] = lo
		buf[off+1] = hi
	}
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	return int16(c.Width()), int16(c.Height())
}

// SetPixel implements drivers.Displayer.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if c.fb == nil {
		return
	}
	c.span(int(y), int(x), int(x), RGB565(col))
}

// Display implements drivers.Displayer.
func (c *Canvas) Display() error {
	if c.fb == nil {
		return ErrNoFramebuffer
	}
	return c.fb.Present()
}

// RGB565 packs c into the framebuffer's pixel encoding.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
