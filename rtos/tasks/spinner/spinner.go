// Package spinner draws a filled triangle whose rotation is steered by the
// three buttons.
package spinner

import (
	"math"

	"whirl/rtos/gfx"
	"whirl/rtos/input"
)

// Phase step per tick for each button.
const (
	stepA    = 4
	stepNotB = 1
	stepC    = -6
)

// radiansPerPhase converts the phase counter to the first vertex angle.
const radiansPerPhase = 0.03

// Advance applies one tick of input to phase. The button terms are
// independent and add up.
func Advance(phase int, s input.Snapshot) int {
	if s.A {
		phase += stepA
	}
	if !s.B {
		phase += stepNotB
	}
	if s.C {
		phase += stepC
	}
	return phase
}

// Radius is the distance from the surface center to each vertex.
func Radius(w, h int) float64 {
	return 0.4 * float64(min(w, h))
}

// Angles returns the three vertex angles, spaced a third of a turn apart.
func Angles(phase int) [3]float64 {
	a1 := radiansPerPhase * float64(phase)
	return [3]float64{a1, a1 + 2*math.Pi/3, a1 - 2*math.Pi/3}
}

type Point struct {
	X int
	Y int
}

// Vertices places the triangle around the center of a w×h surface.
func Vertices(phase, w, h int) [3]Point {
	r := Radius(w, h)
	cx, cy := float64(w)/2, float64(h)/2
	var out [3]Point
	for i, a := range Angles(phase) {
		out[i] = Point{
			X: int(math.Cos(a)*r + cx),
			Y: int(math.Sin(a)*r + cy),
		}
	}
	return out
}

// Renderer owns the phase counter and draws one frame per call.
type Renderer struct {
	surface gfx.Surface
	w, h    int
	phase   int
}

func New(surface gfx.Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Init captures the surface size. It does not touch the surface otherwise.
func (r *Renderer) Init() {
	r.w = r.surface.Width()
	r.h = r.surface.Height()
}

func (r *Renderer) Phase() int { return r.phase }

// Render advances the phase by s and draws the frame for the new phase.
func (r *Renderer) Render(s input.Snapshot) {
	r.phase = Advance(r.phase, s)
	r.Draw()
}

// Draw paints the frame for the current phase without advancing it.
func (r *Renderer) Draw() {
	v := Vertices(r.phase, r.w, r.h)
	r.surface.Clear(gfx.Black)
	r.surface.FillTriangle(v[0].X, v[0].Y, v[1].X, v[1].Y, v[2].X, v[2].Y, gfx.White)
	r.surface.Present()
}
