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

package canvas

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a cubic quarter circle.
const kappa = 0.5522847498307936

// Circle returns a closed circle made of four cubic Bézier segments.
func Circle(c vec.Vec2, r float64) *path.Data {
	k := kappa * r
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: c.X + r, Y: c.Y}).
		CubeTo(vec.Vec2{X: c.X + r, Y: c.Y + k}, vec.Vec2{X: c.X + k, Y: c.Y + r}, vec.Vec2{X: c.X, Y: c.Y + r}).
		CubeTo(vec.Vec2{X: c.X - k, Y: c.Y + r}, vec.Vec2{X: c.X - r, Y: c.Y + k}, vec.Vec2{X: c.X - r, Y: c.Y}).
		CubeTo(vec.Vec2{X: c.X - r, Y: c.Y - k}, vec.Vec2{X: c.X - k, Y: c.Y - r}, vec.Vec2{X: c.X, Y: c.Y - r}).
		CubeTo(vec.Vec2{X: c.X + k, Y: c.Y - r}, vec.Vec2{X: c.X + r, Y: c.Y - k}, vec.Vec2{X: c.X + r, Y: c.Y}).
		Close()
}

// Rect returns a closed axis-parallel rectangle.
func Rect(x, y, w, h float64) *path.Data {
	return Polygon(
		vec.Vec2{X: x, Y: y},
		vec.Vec2{X: x + w, Y: y},
		vec.Vec2{X: x + w, Y: y + h},
		vec.Vec2{X: x, Y: y + h},
	)
}

// Polygon returns a closed path through the given points.
func Polygon(pts ...vec.Vec2) *path.Data {
	p := Polyline(pts...)
	if len(pts) > 0 {
		p.Close()
	}
	return p
}

// Polyline returns an open path through the given points.
func Polyline(pts ...vec.Vec2) *path.Data {
	p := &path.Data{}
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p
}

// Line returns the path of a single straight segment.
func Line(a, b vec.Vec2) *path.Data {
	return Polyline(a, b)
}
