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

// Package proof writes a vector PDF which shows how a preset places data
// on a form.
//
// The proof page has the size of the form image, one PDF unit per pixel.
// Field bounds are outlined, graph axes get tick marks, and the field data
// is drawn in grey levels. Text is shown as the boxes it occupies, so that
// a proof can be checked without the fonts used for rendering.
package proof

import (
	"image/color"

	"golang.org/x/image/font"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/formfill"
	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/coord"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
)

// Layout parameters of the proof, in PDF units.
const (
	outlineWidth = 0.5
	outlineGrey  = 0.7
	tickLength   = 4
)

// Write creates a single page PDF proof at path.
// The diagnostics are those of the equivalent [formfill.Render] call.
func Write(path string, p *preset.Preset, rec record.Record, opts *formfill.Options) ([]formfill.Diagnostic, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := float64(p.ImageDimensions.Width)
	h := float64(p.ImageDimensions.Height)

	page, err := document.CreateSinglePage(path, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	// PDF origin is bottom-left, form coordinates start at the top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	s := &Page{page: page}
	for i := range p.Fields {
		s.outline(&p.Fields[i])
	}
	diags, err := formfill.Draw(s, p, rec, opts)
	if err != nil {
		page.Close()
		return nil, err
	}
	return diags, page.Close()
}

// Page is a [canvas.Surface] which draws onto a PDF page.
type Page struct {
	page *document.Page
}

var _ canvas.Surface = (*Page)(nil)

// Fill implements the [canvas.Surface] interface.
func (s *Page) Fill(p *path.Data, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	s.page.SetFillColor(pdfcolor.DeviceGray(grey(c)))
	s.path(p)
	s.page.Fill()
}

// Stroke implements the [canvas.Surface] interface.
func (s *Page) Stroke(p *path.Data, pen canvas.Pen, c color.NRGBA) {
	if c.A == 0 || pen.Width <= 0 {
		return
	}
	s.page.SetLineWidth(pen.Width)
	s.page.SetLineCap(pen.Cap)
	s.page.SetLineJoin(pen.Join)
	s.page.SetStrokeColor(pdfcolor.DeviceGray(grey(c)))
	s.path(p)
	s.page.Stroke()
}

// Text implements the [canvas.Surface] interface.
// The text is shown as the outline of its layout box.
func (s *Page) Text(text string, face font.Face, dot vec.Vec2, c color.NRGBA) {
	if c.A == 0 || text == "" {
		return
	}
	m := face.Metrics()
	width := float64(font.MeasureString(face, text)) / 64
	top := dot.Y - float64(m.Ascent)/64
	bottom := dot.Y + float64(m.Descent)/64

	s.page.SetLineWidth(outlineWidth)
	s.page.SetStrokeColor(pdfcolor.DeviceGray(grey(c)))
	s.page.Rectangle(dot.X, top, width, bottom-top)
	s.page.MoveTo(dot.X, dot.Y)
	s.page.LineTo(dot.X+width, dot.Y)
	s.page.Stroke()
}

func (s *Page) path(p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			s.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			s.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			s.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			s.page.ClosePath()
		}
	}
}

// outline draws the bounds of f, and tick marks for its axes.
func (s *Page) outline(f *preset.Field) {
	b := f.Bounds
	s.page.SetLineWidth(outlineWidth)
	s.page.SetStrokeColor(pdfcolor.DeviceGray(outlineGrey))
	s.page.Rectangle(b.X, b.Y, b.Width, b.Height)

	if f.XAxis != nil {
		for _, t := range coord.Ticks(*f.XAxis, b.Width) {
			x, _ := coord.Map(t, *f.XAxis, b.X, b.Width, false)
			s.page.MoveTo(x, b.Bottom())
			s.page.LineTo(x, b.Bottom()+tickLength)
		}
	}
	if f.YAxis != nil {
		for _, v := range coord.Ticks(*f.YAxis, b.Height) {
			y, _ := coord.Map(v, *f.YAxis, b.Y, b.Height, true)
			s.page.MoveTo(b.X-tickLength, y)
			s.page.LineTo(b.X, y)
		}
	}
	s.page.Stroke()
}

// grey converts a colour to a DeviceGray level using the Rec. 601 luma
// weights. Alpha is ignored.
func grey(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
