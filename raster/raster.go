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

// Package raster converts vector paths into anti-aliased pixel coverage.
//
// Coverage is computed exactly from the signed area of the path inside each
// pixel, so that shapes aligned to the pixel grid produce crisp edges and
// fractional edges produce the matching partial coverage.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Rasteriser converts paths to pixel coverage values.
// A Rasteriser is not safe for concurrent use; every render pass owns
// one instance and reuses it for all paths of the pass. Internal buffers
// grow as needed and are kept between calls.
type Rasteriser struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.
	// LLy is the top row, the coordinates are integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// line width. Sharper corners get a bevel join.
	MiterLimit float64

	edges  []edge
	active []int
	cover  []float32 // cover change per pixel column; reused as output
	area   []float32 // signed area inside the pixel

	devXMin, devXMax float64
	devYMin, devYMax float64

	line []vec.Vec2 // flattened vertices of the current subpath
	poly []vec.Vec2 // scratch polygon for stroke pieces
}

// edge is a non-horizontal line segment in device space,
// stored with its upper end first.
type edge struct {
	xTop, yTop float64
	yBot       float64
	dxdy       float64
	dir        float32 // +1 if the segment runs downwards, -1 otherwise
}

func (e *edge) xAt(y float64) float64 {
	return e.xTop + (y-e.yTop)*e.dxdy
}

// NewRasteriser returns a Rasteriser for the given clip rectangle,
// with an identity CTM, a one unit wide line, butt caps and miter joins.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their defaults and sets a new clip
// rectangle. Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.line = r.line[:0]
	r.poly = r.poly[:0]
}

// FillNonZero rasterises p using the nonzero winding rule.
// Coverage is delivered row by row, top to bottom. The coverage slice is
// only valid for the duration of the callback.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd rasterises p using the even-odd rule.
// See [Rasteriser.FillNonZero] for the emit protocol.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasteriser) fill(p *path.Data, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	r.walk(p.Iter(), func(pts []vec.Vec2, _ bool) {
		for i := 1; i < len(pts); i++ {
			r.addEdge(pts[i-1], pts[i])
		}
		if len(pts) > 1 {
			r.addEdge(pts[len(pts)-1], pts[0])
		}
	})
	r.scan(rule, emit)
}

// walk flattens p and calls subpath once for every subpath which contains
// at least one drawing command. The vertex slice is only valid during the
// call. Consecutive duplicate vertices are removed, so a degenerate subpath
// arrives as a single vertex.
func (r *Rasteriser) walk(p path.Path, subpath func(pts []vec.Vec2, closed bool)) {
	var start, current vec.Vec2
	open := false
	drew := false
	finish := func(closed bool) {
		if open && drew {
			subpath(r.line, closed)
		}
		r.line = r.line[:0]
		open, drew = false, false
	}
	lineTo := func(_, to vec.Vec2) {
		if to != r.line[len(r.line)-1] {
			r.line = append(r.line, to)
		}
	}

	for cmd, pts := range p {
		if cmd != path.CmdMoveTo && cmd != path.CmdClose && !open {
			continue
		}
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			start, current = pts[0], pts[0]
			r.line = append(r.line, start)
			open = true
		case path.CmdLineTo:
			lineTo(current, pts[0])
			current = pts[0]
			drew = true
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], lineTo)
			current = pts[1]
			drew = true
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], lineTo)
			current = pts[2]
			drew = true
		case path.CmdClose:
			if !open {
				continue
			}
			if n := len(r.line); n > 1 && r.line[n-1] == start {
				r.line = r.line[:n-1]
			}
			drew = true
			finish(true)
			current = start
		}
	}
	finish(false)
}

// linear applies the 2x2 part of the CTM to a vector.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// The number of segments is chosen so that the error in device space is
// below the flatness tolerance.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, lineTo func(from, to vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// using Wang's formula for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, lineTo func(from, to vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.devXMin, r.devYMin = math.Inf(1), math.Inf(1)
	r.devXMax, r.devYMax = math.Inf(-1), math.Inf(-1)
}

// addEdge transforms a user-space segment to device space and records it.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	x0 := r.CTM[0]*a.X + r.CTM[2]*a.Y + r.CTM[4]
	y0 := r.CTM[1]*a.X + r.CTM[3]*a.Y + r.CTM[5]
	x1 := r.CTM[0]*b.X + r.CTM[2]*b.Y + r.CTM[4]
	y1 := r.CTM[1]*b.X + r.CTM[3]*b.Y + r.CTM[5]

	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)

	if math.Abs(y1-y0) < horizontalEdgeThreshold {
		return
	}
	e := edge{dir: 1}
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		e.dir = -1
	}
	e.xTop, e.yTop, e.yBot = x0, y0, y1
	e.dxdy = (x1 - x0) / (y1 - y0)
	r.edges = append(r.edges, e)
}

// scan runs the active edge list over all scanlines touched by the
// collected edges and emits the integrated coverage.
//
// Every edge piece inside a pixel contributes
//
//	cover = dir * dy
//	area  = cover * (1 - xFrac)
//
// where xFrac is the horizontal position of the piece inside the pixel.
// The coverage of pixel i is then the running sum of cover over the pixels
// left of i, plus area[i].
func (r *Rasteriser) scan(rule fillRule, emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yTop, b.yTop)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		lo, hi := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].yTop < hi {
			r.active = append(r.active, next)
			next++
		}
		k := 0
		for _, i := range r.active {
			if r.edges[i].yBot > lo {
				r.active[k] = i
				k++
			}
		}
		r.active = r.active[:k]
		if k == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.edges[i], lo, hi, xMin)
		}
		if rule == fillNonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if cov, offset := trimZeros(r.cover); cov != nil {
			emit(y, xMin+offset, cov)
		}
	}
}

// accumulate adds the part of e inside the scanline [lo, hi) to the
// cover and area buffers. The piece is split at every pixel column it
// crosses.
func (r *Rasteriser) accumulate(e *edge, lo, hi float64, xMin int) {
	top := max(lo, e.yTop)
	bot := min(hi, e.yBot)
	if bot <= top {
		return
	}
	dy := bot - top
	xa, xb := e.xAt(top), e.xAt(bot)
	if xa > xb {
		xa, xb = xb, xa
	}

	first := int(math.Floor(xa))
	last := int(math.Floor(xb))
	if first == last || xb-xa < columnSplitThreshold {
		r.deposit(first, e.dir*float32(dy), (xa+xb)/2, xMin)
		return
	}
	span := xb - xa
	for col := first; col <= last; col++ {
		left := max(xa, float64(col))
		right := min(xb, float64(col+1))
		if right <= left {
			continue
		}
		r.deposit(col, e.dir*float32(dy*(right-left)/span), (left+right)/2, xMin)
	}
}

func (r *Rasteriser) deposit(col int, cover float32, xMid float64, xMin int) {
	idx := col - xMin
	switch {
	case idx < 0:
		// left of the clip region, counts for every pixel of the row
		r.cover[0] += cover
		r.area[0] += cover
	case idx < len(r.cover):
		r.cover[idx] += cover
		r.area[idx] += cover * float32(1-(xMid-float64(col)))
	}
}

func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(math.Floor(float64(v/2)))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent for an edge
	// to contribute coverage.
	horizontalEdgeThreshold = 1e-10

	// columnSplitThreshold is the horizontal extent below which an edge
	// piece is treated as lying in a single pixel column.
	columnSplitThreshold = 1e-9
)
