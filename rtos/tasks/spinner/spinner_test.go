package spinner

import (
	"image/color"
	"math"
	"testing"

	"whirl/rtos/input"
)

type call struct {
	op    string
	verts [6]int
	col   color.RGBA
}

type recordingSurface struct {
	w, h  int
	calls []call
}

func (s *recordingSurface) Init() error { return nil }
func (s *recordingSurface) Width() int  { return s.w }
func (s *recordingSurface) Height() int { return s.h }

func (s *recordingSurface) Clear(c color.RGBA) {
	s.calls = append(s.calls, call{op: "clear", col: c})
}

func (s *recordingSurface) FillTriangle(x1, y1, x2, y2, x3, y3 int, c color.RGBA) {
	s.calls = append(s.calls, call{op: "fill", verts: [6]int{x1, y1, x2, y2, x3, y3}, col: c})
}

func (s *recordingSurface) Present() {
	s.calls = append(s.calls, call{op: "present"})
}

func TestAdvance(t *testing.T) {
	cases := []struct {
		s    input.Snapshot
		want int
	}{
		{input.Snapshot{}, 1},
		{input.Snapshot{A: true}, 5},
		{input.Snapshot{B: true}, 0},
		{input.Snapshot{C: true}, -5},
		{input.Snapshot{A: true, B: true}, 4},
		{input.Snapshot{A: true, B: true, C: true}, -2},
		{input.Snapshot{A: true, C: true}, -1},
		{input.Snapshot{B: true, C: true}, -6},
	}
	for _, tc := range cases {
		if got := Advance(0, tc.s); got != tc.want {
			t.Fatalf("Advance(0, %v) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

func TestIdleTicksAccumulate(t *testing.T) {
	phase := 0
	for i := 0; i < 10; i++ {
		phase = Advance(phase, input.Snapshot{})
	}
	if phase != 10 {
		t.Fatalf("phase after 10 idle ticks = %d, want 10", phase)
	}

	phase = 0
	for i := 0; i < 5; i++ {
		phase = Advance(phase, input.Snapshot{A: true, B: true})
	}
	if phase != 20 {
		t.Fatalf("phase after 5 A+B ticks = %d, want 20", phase)
	}
}

func TestRadius(t *testing.T) {
	if got := Radius(320, 240); got != 96 {
		t.Fatalf("Radius(320, 240) = %v, want 96", got)
	}
	if got := Radius(100, 500); got != 40 {
		t.Fatalf("Radius(100, 500) = %v, want 40", got)
	}
}

func TestAnglesAreAThirdOfATurnApart(t *testing.T) {
	for _, phase := range []int{0, 1, 17, -40, 1000} {
		a := Angles(phase)
		if a[0] != 0.03*float64(phase) {
			t.Fatalf("a1 for phase %d = %v", phase, a[0])
		}
		if d := a[1] - a[0]; math.Abs(d-2*math.Pi/3) > 1e-9 {
			t.Fatalf("a2-a1 = %v", d)
		}
		if d := a[0] - a[2]; math.Abs(d-2*math.Pi/3) > 1e-9 {
			t.Fatalf("a1-a3 = %v", d)
		}
	}
}

func TestVerticesAtPhaseZero(t *testing.T) {
	v := Vertices(0, 320, 240)
	if v[0] != (Point{X: 256, Y: 120}) {
		t.Fatalf("first vertex = %+v, want {256 120}", v[0])
	}
	// cos(2π/3)·96 + 160 lands just under 112 in float64 and truncates to
	// 111; sin(±2π/3)·96 + 120 is about 203.1 and 36.9.
	if v[1] != (Point{X: 111, Y: 203}) {
		t.Fatalf("second vertex = %+v, want {111 203}", v[1])
	}
	if v[2] != (Point{X: 111, Y: 36}) {
		t.Fatalf("third vertex = %+v, want {111 36}", v[2])
	}
	if v[1].X != v[2].X {
		t.Fatalf("left vertices at x=%d and x=%d, want the same column", v[1].X, v[2].X)
	}
	r := Radius(320, 240)
	for i, p := range v {
		d := math.Hypot(float64(p.X)-160, float64(p.Y)-120)
		if math.Abs(d-r) > 2 {
			t.Fatalf("vertex %d is %v from center, want about %v", i, d, r)
		}
	}
}

func TestRenderClearsFillsPresents(t *testing.T) {
	s := &recordingSurface{w: 320, h: 240}
	r := New(s)
	r.Init()
	r.Render(input.Snapshot{})

	if r.Phase() != 1 {
		t.Fatalf("phase = %d, want 1", r.Phase())
	}
	if len(s.calls) != 3 {
		t.Fatalf("got %d surface calls, want 3", len(s.calls))
	}
	if s.calls[0].op != "clear" || s.calls[0].col != (color.RGBA{A: 255}) {
		t.Fatalf("first call = %+v, want black clear", s.calls[0])
	}
	if s.calls[1].op != "fill" || s.calls[1].col != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("second call = %+v, want white fill", s.calls[1])
	}
	v := Vertices(1, 320, 240)
	if s.calls[1].verts != [6]int{v[0].X, v[0].Y, v[1].X, v[1].Y, v[2].X, v[2].Y} {
		t.Fatalf("fill vertices = %v", s.calls[1].verts)
	}
	if s.calls[2].op != "present" {
		t.Fatalf("last call = %+v, want present", s.calls[2])
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	s := &recordingSurface{w: 64, h: 64}
	r := New(s)
	r.Init()
	r.Render(input.Snapshot{A: true})
	r.Draw()
	if r.Phase() != 5 {
		t.Fatalf("phase = %d, want 5", r.Phase())
	}
	if s.calls[1] != s.calls[4] {
		t.Fatalf("same phase drew different triangles: %+v vs %+v", s.calls[1], s.calls[4])
	}
}
