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
	"image/color"
	"math"

	"golang.org/x/image/font"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// OpKind identifies a recorded drawing operation.
type OpKind int

// These are the operations of a [Surface].
const (
	OpFill OpKind = iota
	OpStroke
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded drawing operation.
type Op struct {
	Kind  OpKind
	Color color.NRGBA

	Path *path.Data // OpFill and OpStroke
	Pen  Pen        // OpStroke

	Text string // OpText
	Face font.Face
	Dot  vec.Vec2
}

// Recorder is a [Surface] which records all operations instead of drawing.
type Recorder struct {
	Ops []Op
}

// Fill implements the [Surface] interface.
func (r *Recorder) Fill(p *path.Data, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: c, Path: p})
}

// Stroke implements the [Surface] interface.
func (r *Recorder) Stroke(p *path.Data, pen Pen, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Color: c, Path: p, Pen: pen})
}

// Text implements the [Surface] interface.
func (r *Recorder) Text(s string, face font.Face, dot vec.Vec2, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Color: c, Text: s, Face: face, Dot: dot})
}

// Count returns the number of recorded operations of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Extent returns the area touched by the operation.
// For strokes, half the pen width is added on all sides. For text, the
// extent covers the advance width between ascent and descent.
func (op *Op) Extent() rect.Rect {
	switch op.Kind {
	case OpText:
		m := op.Face.Metrics()
		w := font.MeasureString(op.Face, op.Text)
		return rect.Rect{
			LLx: op.Dot.X,
			LLy: op.Dot.Y - float64(m.Ascent)/64,
			URx: op.Dot.X + float64(w)/64,
			URy: op.Dot.Y + float64(m.Descent)/64,
		}
	case OpStroke:
		b := PathBounds(op.Path)
		d := op.Pen.Width / 2
		return rect.Rect{LLx: b.LLx - d, LLy: b.LLy - d, URx: b.URx + d, URy: b.URy + d}
	default:
		return PathBounds(op.Path)
	}
}

// PathBounds returns the bounding box of all points of p, including
// control points. For an empty path the result is the zero rectangle.
func PathBounds(p *path.Data) rect.Rect {
	if len(p.Coords) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, pt := range p.Coords {
		b.LLx = min(b.LLx, pt.X)
		b.LLy = min(b.LLy, pt.Y)
		b.URx = max(b.URx, pt.X)
		b.URy = max(b.URy, pt.Y)
	}
	return b
}
