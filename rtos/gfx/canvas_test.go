package gfx

import (
	"image/color"
	"testing"

	"whirl/hal"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
	format   hal.PixelFormat
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2), format: hal.PixelFormatRGB565}
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return f.format }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { f.presents++; return nil }

func (f *memFB) ClearRGB(r, g, b uint8) {
	p := RGB565(color.RGBA{R: r, G: g, B: b, A: 255})
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type memDisplay struct{ fb hal.Framebuffer }

func (d memDisplay) Framebuffer() hal.Framebuffer { return d.fb }

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *memFB) {
	t.Helper()
	fb := newMemFB(w, h)
	c := NewCanvas(memDisplay{fb: fb})
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c, fb
}

func TestCanvasInitErrors(t *testing.T) {
	if err := NewCanvas(nil).Init(); err != ErrNoFramebuffer {
		t.Fatalf("nil display: got %v, want ErrNoFramebuffer", err)
	}
	if err := NewCanvas(memDisplay{}).Init(); err != ErrNoFramebuffer {
		t.Fatalf("display without framebuffer: got %v, want ErrNoFramebuffer", err)
	}
	fb := newMemFB(4, 4)
	fb.format = 9
	if err := NewCanvas(memDisplay{fb: fb}).Init(); err != ErrPixelFormat {
		t.Fatalf("odd format: got %v, want ErrPixelFormat", err)
	}

	var c Canvas
	if c.Width() != 0 || c.Height() != 0 {
		t.Fatal("expected zero size before Init")
	}
	c.Clear(White)
	c.FillTriangle(0, 0, 1, 1, 2, 0, White)
	c.Present()
}

func TestCanvasClearWritesEveryPixel(t *testing.T) {
	c, fb := newTestCanvas(t, 16, 8)
	c.Clear(White)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if fb.at(x, y) != 0xFFFF {
				t.Fatalf("pixel (%d,%d) = %#x, want white", x, y, fb.at(x, y))
			}
		}
	}
	c.Clear(Black)
	if fb.at(7, 3) != 0 {
		t.Fatalf("pixel after black clear = %#x", fb.at(7, 3))
	}
}

func TestFillTriangleCoversCentroidNotCorners(t *testing.T) {
	c, fb := newTestCanvas(t, 64, 48)
	c.Clear(Black)
	c.FillTriangle(32, 4, 56, 40, 8, 40, White)

	cx, cy := (32+56+8)/3, (4+40+40)/3
	if fb.at(cx, cy) != 0xFFFF {
		t.Fatalf("centroid (%d,%d) not filled", cx, cy)
	}
	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 47}, {63, 47}} {
		if fb.at(p[0], p[1]) != 0 {
			t.Fatalf("corner %v was painted", p)
		}
	}
	for _, v := range [][2]int{{32, 4}, {56, 40}, {8, 40}} {
		if fb.at(v[0], v[1]) != 0xFFFF {
			t.Fatalf("vertex %v not filled", v)
		}
	}
	if fb.presents != 0 {
		t.Fatal("fill must not present")
	}
	c.Present()
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}
}

func TestFillTriangleClipsOffscreenVertices(t *testing.T) {
	c, fb := newTestCanvas(t, 20, 20)
	c.Clear(Black)
	c.FillTriangle(-30, -30, 50, 10, 10, 60, White)
	if fb.at(10, 10) != 0xFFFF {
		t.Fatal("expected interior pixel to be filled")
	}
}

func TestFillTriangleDegenerateRow(t *testing.T) {
	c, fb := newTestCanvas(t, 10, 10)
	c.Clear(Black)
	c.FillTriangle(2, 5, 7, 5, 4, 5, White)
	for x := 2; x <= 7; x++ {
		if fb.at(x, 5) != 0xFFFF {
			t.Fatalf("pixel (%d,5) not filled", x)
		}
	}
	if fb.at(1, 5) != 0 || fb.at(8, 5) != 0 {
		t.Fatal("flat triangle painted past its ends")
	}
}

func TestCanvasAsDisplayer(t *testing.T) {
	c, fb := newTestCanvas(t, 8, 8)
	if w, h := c.Size(); w != 8 || h != 8 {
		t.Fatalf("Size() = %d,%d", w, h)
	}
	c.SetPixel(3, 4, White)
	c.SetPixel(-1, 4, White)
	c.SetPixel(3, 99, White)
	if fb.at(3, 4) != 0xFFFF {
		t.Fatal("SetPixel did not paint")
	}
	if err := c.Display(); err != nil || fb.presents != 1 {
		t.Fatalf("Display: err=%v presents=%d", err, fb.presents)
	}
}

func TestBannerDrawsText(t *testing.T) {
	c, fb := newTestCanvas(t, 120, 24)
	c.Clear(Black)
	Banner(c, White, "whirl")
	lit := 0
	for i := 0; i+1 < len(fb.buf); i += 2 {
		if fb.buf[i] != 0 || fb.buf[i+1] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("banner left the canvas blank")
	}
}

func TestWrapLines(t *testing.T) {
	got := WrapLines("abcdefg hij\n\n  \nxy", 4)
	want := []string{"abcd", "efg ", "hij", "xy"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
