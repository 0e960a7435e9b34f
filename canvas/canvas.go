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

// Package canvas provides the drawing surfaces used by the field renderers.
//
// Field renderers only talk to the [Surface] interface. [Canvas] draws into
// an RGBA image using the anti-aliasing rasteriser, the proof package
// implements the same interface on a PDF page, and [Recorder] keeps a list
// of operations for inspection.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/formfill/raster"
)

// Surface is a drawing target in image pixel coordinates, with the origin
// at the top-left corner and y growing downwards.
type Surface interface {
	// Fill paints the interior of p using the nonzero winding rule.
	Fill(p *path.Data, c color.NRGBA)

	// Stroke paints the outline of p.
	Stroke(p *path.Data, pen Pen, c color.NRGBA)

	// Text draws s with its baseline origin at dot.
	Text(s string, face font.Face, dot vec.Vec2, c color.NRGBA)
}

// Pen describes how lines are stroked.
type Pen struct {
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle
}

// RoundPen returns a pen with round caps and joins.
func RoundPen(width float64) Pen {
	return Pen{Width: width, Cap: graphics.LineCapRound, Join: graphics.LineJoinRound}
}

// Canvas is a [Surface] which paints into an RGBA image.
// Colours are composited with the "source over" operator.
type Canvas struct {
	img  *image.RGBA
	clip rect.Rect
	r    *raster.Rasteriser
}

// New returns a canvas drawing into img.
func New(img *image.RGBA) *Canvas {
	b := img.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
	return &Canvas{img: img, clip: clip, r: raster.NewRasteriser(clip)}
}

// NewBlank returns a canvas on a new, fully transparent image.
func NewBlank(width, height int) *Canvas {
	return New(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// Image returns the image the canvas draws into.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill implements the [Surface] interface.
func (c *Canvas) Fill(p *path.Data, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	c.r.Reset(c.clip)
	c.r.FillNonZero(p, c.painter(col))
}

// Stroke implements the [Surface] interface.
func (c *Canvas) Stroke(p *path.Data, pen Pen, col color.NRGBA) {
	if col.A == 0 || !(pen.Width > 0) {
		return
	}
	c.r.Reset(c.clip)
	c.r.Width = pen.Width
	c.r.Cap = pen.Cap
	c.r.Join = pen.Join
	c.r.Stroke(p.Iter(), c.painter(col))
}

// Text implements the [Surface] interface.
func (c *Canvas) Text(s string, face font.Face, dot vec.Vec2, col color.NRGBA) {
	if col.A == 0 || s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(dot.X), Y: toFixed(dot.Y)},
	}
	d.DrawString(s)
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(x*64 + 0.5)
}

// painter returns an emit callback which composites col, scaled by the
// coverage, over the existing pixels.
func (c *Canvas) painter(col color.NRGBA) func(y, xMin int, coverage []float32) {
	sa := float32(col.A) / 255
	sr, sg, sb := float32(col.R), float32(col.G), float32(col.B)
	return func(y, xMin int, coverage []float32) {
		off := c.img.PixOffset(xMin, y)
		pix := c.img.Pix[off : off+4*len(coverage)]
		for i, cov := range coverage {
			a := sa * cov
			if a <= 0 {
				continue
			}
			inv := 1 - a
			px := pix[4*i : 4*i+4 : 4*i+4]
			px[0] = blend(sr*a, px[0], inv)
			px[1] = blend(sg*a, px[1], inv)
			px[2] = blend(sb*a, px[2], inv)
			px[3] = blend(255*a, px[3], inv)
		}
	}
}

func blend(src float32, dst uint8, inv float32) uint8 {
	v := src + float32(dst)*inv + 0.5
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
