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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke rasterises the outline of p using Width, Cap, Join and MiterLimit.
//
// The stroke is assembled from convex pieces: one rectangle per segment,
// one piece per join and one per cap. All pieces are given the same
// orientation and filled together with the nonzero rule, so overlapping
// pieces are painted once.
//
// A subpath of zero length is drawn as a dot for round and square caps.
func (r *Rasteriser) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	if !(r.Width > 0) {
		return
	}
	d := r.Width / 2
	r.beginEdges()
	r.walk(p, func(pts []vec.Vec2, closed bool) {
		r.strokeSubpath(pts, closed, d)
	})
	r.scan(fillNonZero, emit)
}

func (r *Rasteriser) strokeSubpath(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	if n == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addCircle(pts[0], d)
		case graphics.LineCapSquare:
			r.addCap(pts[0], vec.Vec2{X: 1}, d)
			r.addCap(pts[0], vec.Vec2{X: -1}, d)
		}
		return
	}

	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := normal(unit(b.Sub(a))).Mul(d)
		r.addPolygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	if closed {
		for i := range n {
			prev := pts[(i+n-1)%n]
			next := pts[(i+1)%n]
			r.addJoin(pts[i], unit(pts[i].Sub(prev)), unit(next.Sub(pts[i])), d)
		}
		return
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i], unit(pts[i].Sub(pts[i-1])), unit(pts[i+1].Sub(pts[i])), d)
	}
	r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
	r.addCap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), d)
}

// addJoin adds the join at vertex p between a segment with direction t1
// and the following segment with direction t2.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	dot := t1.Dot(t2)
	if math.Abs(cross) < collinearityThreshold && dot > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound {
		r.addCircle(p, d)
		return
	}

	// the join is on the side facing away from the turn
	side := 1.0
	if cross > 0 {
		side = -1
	}
	n1 := normal(t1).Mul(side)
	n2 := normal(t2).Mul(side)
	o1 := p.Add(n1.Mul(d))
	o2 := p.Add(n2.Mul(d))

	if r.Join == graphics.LineJoinMiter {
		// sinHalf is sin of half the angle between the two segments
		sinHalf := math.Sqrt(max(0, (1+dot)/2))
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit {
			tip := p.Add(unit(n1.Add(n2)).Mul(d / sinHalf))
			r.addPolygon(p, o1, tip, o2)
			return
		}
	}
	r.addPolygon(p, o1, o2)
}

// addCap adds the cap at end point p of an open subpath.
// t points away from the stroke.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, d)
	case graphics.LineCapSquare:
		nrm := normal(t).Mul(d)
		ext := t.Mul(d)
		r.addPolygon(p.Add(nrm), p.Add(nrm).Add(ext), p.Sub(nrm).Add(ext), p.Sub(nrm))
	}
}

// addCircle adds a polygon approximating the circle with centre c and
// radius rad. The vertex count keeps the error below the flatness.
func (r *Rasteriser) addCircle(c vec.Vec2, rad float64) {
	devRad := rad * max(r.linear(vec.Vec2{X: 1}).Length(), r.linear(vec.Vec2{Y: 1}).Length())
	n := minCircleVertices
	if devRad > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRad)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	r.poly = r.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{X: c.X + rad*math.Cos(phi), Y: c.Y + rad*math.Sin(phi)})
	}
	r.addPolygonSlice(r.poly)
}

func (r *Rasteriser) addPolygon(pts ...vec.Vec2) {
	r.poly = append(r.poly[:0], pts...)
	r.addPolygonSlice(r.poly)
}

// addPolygonSlice adds a closed polygon with positive orientation.
// Polygons without area are dropped.
func (r *Rasteriser) addPolygonSlice(pts []vec.Vec2) {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	if a == 0 {
		return
	}
	if a > 0 {
		for i := range pts {
			r.addEdge(pts[i], pts[(i+1)%len(pts)])
		}
	} else {
		for i := len(pts) - 1; i >= 0; i-- {
			r.addEdge(pts[(i+1)%len(pts)], pts[i])
		}
	}
}

// normal returns t rotated by 90 degrees.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

const (
	// collinearityThreshold is the cross product below which two
	// segments pointing the same way need no join.
	collinearityThreshold = 1e-9

	minCircleVertices = 32
)
