// seehuhn.de/go/formfill - fill scanned form templates with data
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

const epsilon = 1e-5

// grid collects emitted coverage into a dense buffer and checks that every
// emitted pixel lies inside the clip rectangle.
type grid struct {
	t    *testing.T
	w, h int
	cov  []float32
}

func newGrid(t *testing.T, w, h int) *grid {
	return &grid{t: t, w: w, h: h, cov: make([]float32, w*h)}
}

func (g *grid) emit(y, xMin int, coverage []float32) {
	if y < 0 || y >= g.h || xMin < 0 || xMin+len(coverage) > g.w {
		g.t.Fatalf("row %d [%d,%d) outside the %dx%d clip", y, xMin, xMin+len(coverage), g.w, g.h)
	}
	copy(g.cov[y*g.w+xMin:], coverage)
}

func (g *grid) at(x, y int) float32 {
	return g.cov[y*g.w+x]
}

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.cov {
		s += float64(c)
	}
	return s
}

func clipRect(w, h int) rect.Rect {
	return rect.Rect{URx: float64(w), URy: float64(h)}
}

func rectPath(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	g := newGrid(t, 10, 1)
	NewRasteriser(clipRect(10, 1)).FillNonZero(triangle, g.emit)

	for x := range 10 {
		want := float32(2*x+1) / 20
		if got := g.at(x, 0); math.Abs(float64(got-want)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, got)
		}
	}
}

func TestAlignedRectangle(t *testing.T) {
	g := newGrid(t, 12, 12)
	NewRasteriser(clipRect(12, 12)).FillNonZero(rectPath(2, 3, 9, 7), g.emit)

	for y := range 12 {
		for x := range 12 {
			want := float32(0)
			if x >= 2 && x < 9 && y >= 3 && y < 7 {
				want = 1
			}
			if got := g.at(x, y); math.Abs(float64(got-want)) > epsilon {
				t.Errorf("(%d,%d): got %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestHalfPixelEdges(t *testing.T) {
	g := newGrid(t, 6, 6)
	NewRasteriser(clipRect(6, 6)).FillNonZero(rectPath(1.5, 1, 4.5, 3), g.emit)

	want := []float32{0, 0.5, 1, 1, 0.5, 0}
	for x, w := range want {
		if got := g.at(x, 1); math.Abs(float64(got-w)) > epsilon {
			t.Errorf("pixel %d: got %g, want %g", x, got, w)
		}
	}
}

// TestFillRules uses two nested squares with the same orientation.
// The inner square is a hole under the even-odd rule only.
func TestFillRules(t *testing.T) {
	p := rectPath(0, 0, 10, 10)
	p.MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 2}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 2, Y: 8}).
		Close()

	r := NewRasteriser(clipRect(10, 10))
	nz := newGrid(t, 10, 10)
	r.FillNonZero(p, nz.emit)
	eo := newGrid(t, 10, 10)
	r.FillEvenOdd(p, eo.emit)

	if got := nz.at(5, 5); got != 1 {
		t.Errorf("nonzero centre: got %g, want 1", got)
	}
	if got := eo.at(5, 5); got != 0 {
		t.Errorf("even-odd centre: got %g, want 0", got)
	}
	if got := eo.at(1, 1); got != 1 {
		t.Errorf("even-odd ring: got %g, want 1", got)
	}
}

func TestClip(t *testing.T) {
	g := newGrid(t, 5, 4)
	NewRasteriser(clipRect(5, 4)).FillNonZero(rectPath(-3, -3, 20, 20), g.emit)
	if got, want := g.sum(), 20.0; math.Abs(got-want) > epsilon {
		t.Errorf("covered area %g, want %g", got, want)
	}

	// entirely outside
	g = newGrid(t, 5, 4)
	NewRasteriser(clipRect(5, 4)).FillNonZero(rectPath(10, 10, 20, 20), g.emit)
	if got := g.sum(); got != 0 {
		t.Errorf("covered area %g, want 0", got)
	}
}

func TestCircleArea(t *testing.T) {
	const k = 0.5522847498 // control point distance for a quarter circle
	c := vec.Vec2{X: 16, Y: 16}
	const rad = 10.0
	p := (&path.Data{}).
		MoveTo(c.Add(vec.Vec2{X: rad})).
		CubeTo(c.Add(vec.Vec2{X: rad, Y: k * rad}), c.Add(vec.Vec2{X: k * rad, Y: rad}), c.Add(vec.Vec2{Y: rad})).
		CubeTo(c.Add(vec.Vec2{X: -k * rad, Y: rad}), c.Add(vec.Vec2{X: -rad, Y: k * rad}), c.Add(vec.Vec2{X: -rad})).
		CubeTo(c.Add(vec.Vec2{X: -rad, Y: -k * rad}), c.Add(vec.Vec2{X: -k * rad, Y: -rad}), c.Add(vec.Vec2{Y: -rad})).
		CubeTo(c.Add(vec.Vec2{X: k * rad, Y: -rad}), c.Add(vec.Vec2{X: rad, Y: -k * rad}), c.Add(vec.Vec2{X: rad})).
		Close()

	g := newGrid(t, 32, 32)
	NewRasteriser(clipRect(32, 32)).FillNonZero(p, g.emit)
	want := math.Pi * rad * rad
	if got := g.sum(); math.Abs(got-want)/want > 0.005 {
		t.Errorf("circle area %g, want %g", got, want)
	}
}

func TestCTM(t *testing.T) {
	r := NewRasteriser(clipRect(10, 10))
	r.CTM = matrix.Matrix{2, 0, 0, 2, 1, 1}
	g := newGrid(t, 10, 10)
	r.FillNonZero(rectPath(0, 0, 3, 3), g.emit)
	if got := g.sum(); math.Abs(got-36) > epsilon {
		t.Errorf("covered area %g, want 36", got)
	}
	if g.at(0, 0) != 0 || g.at(1, 1) != 1 || g.at(6, 6) != 1 || g.at(7, 7) != 0 {
		t.Error("scaled square is not at the expected position")
	}
}

func horizontalLine(x1, y, x2 float64) path.Path {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x1, Y: y}).
		LineTo(vec.Vec2{X: x2, Y: y}).
		Iter()
}

func TestStrokeCaps(t *testing.T) {
	cases := []struct {
		name       string
		cap        graphics.LineCapStyle
		xMin, xMax int // fully covered columns [xMin, xMax)
	}{
		{"butt", graphics.LineCapButt, 2, 8},
		{"square", graphics.LineCapSquare, 1, 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRasteriser(clipRect(10, 10))
			r.Width = 2
			r.Cap = c.cap
			g := newGrid(t, 10, 10)
			r.Stroke(horizontalLine(2, 5, 8), g.emit)

			for y := range 10 {
				for x := range 10 {
					want := float32(0)
					if y >= 4 && y < 6 && x >= c.xMin && x < c.xMax {
						want = 1
					}
					if got := g.at(x, y); math.Abs(float64(got-want)) > epsilon {
						t.Errorf("(%d,%d): got %g, want %g", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestStrokeRoundCap(t *testing.T) {
	r := NewRasteriser(clipRect(20, 20))
	r.Width = 4
	r.Cap = graphics.LineCapRound
	g := newGrid(t, 20, 20)
	r.Stroke(horizontalLine(5, 10, 15), g.emit)

	// 10x4 rectangle plus one full circle of radius 2
	want := 40 + math.Pi*4
	if got := g.sum(); math.Abs(got-want)/want > 0.01 {
		t.Errorf("covered area %g, want %g", got, want)
	}
}

// TestStrokeJoins strokes a right angle and checks the pixel outside the
// corner, which is only touched by the join.
func TestStrokeJoins(t *testing.T) {
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 2}).
		Iter()

	cases := []struct {
		join  graphics.LineJoinStyle
		limit float64
		want  float64
		tol   float64
	}{
		{graphics.LineJoinMiter, 10, 1, epsilon},
		{graphics.LineJoinMiter, 1.2, 0.5, epsilon}, // sqrt(2) exceeds the limit
		{graphics.LineJoinBevel, 10, 0.5, epsilon},
		{graphics.LineJoinRound, 10, math.Pi / 4, 0.02},
	}
	for _, c := range cases {
		r := NewRasteriser(clipRect(16, 16))
		r.Width = 2
		r.Join = c.join
		r.MiterLimit = c.limit
		g := newGrid(t, 16, 16)
		r.Stroke(corner, g.emit)

		if got := float64(g.at(10, 10)); math.Abs(got-c.want) > c.tol {
			t.Errorf("join %v (limit %g): corner coverage %g, want %g", c.join, c.limit, got, c.want)
		}
		if got := g.at(5, 10); got != 1 {
			t.Errorf("join %v: segment coverage %g, want 1", c.join, got)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 5, Y: 5}).
		Iter()

	for _, c := range []struct {
		cap  graphics.LineCapStyle
		want float64
	}{
		{graphics.LineCapButt, 0},
		{graphics.LineCapSquare, 4},
		{graphics.LineCapRound, math.Pi},
	} {
		r := NewRasteriser(clipRect(10, 10))
		r.Width = 2
		r.Cap = c.cap
		g := newGrid(t, 10, 10)
		r.Stroke(dot, g.emit)
		if got := g.sum(); math.Abs(got-c.want) > 0.05 {
			t.Errorf("cap %v: dot area %g, want %g", c.cap, got, c.want)
		}
	}
}

func TestStrokeClosedSquare(t *testing.T) {
	sq := rectPath(3, 3, 9, 9)
	r := NewRasteriser(clipRect(12, 12))
	r.Width = 2
	g := newGrid(t, 12, 12)
	r.Stroke(sq.Iter(), g.emit)

	// 8x8 outer minus 4x4 inner, all corners mitred
	if got := g.sum(); math.Abs(got-48) > epsilon {
		t.Errorf("covered area %g, want 48", got)
	}
	if got := g.at(6, 6); got != 0 {
		t.Errorf("interior coverage %g, want 0", got)
	}
}

func TestReset(t *testing.T) {
	r := NewRasteriser(clipRect(4, 4))
	r.Width = 7
	r.Cap = graphics.LineCapRound
	r.CTM = matrix.Scale(3, 3)
	r.Reset(clipRect(8, 8))
	if r.Width != 1 || r.Cap != graphics.LineCapButt || r.CTM != matrix.Identity ||
		r.Join != graphics.LineJoinMiter || r.MiterLimit != defaultMiterLimit ||
		r.Clip != clipRect(8, 8) {
		t.Errorf("Reset left state behind: %+v", r)
	}
}
