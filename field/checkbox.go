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

package field

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/preset"
)

// renderCheckbox draws a single mark for true and nothing for false.
// The mark, including the stroke width, stays inside the padded bounds.
func renderCheckbox(s canvas.Surface, f *preset.Field, st preset.CheckboxStyle, v any) ([]Diagnostic, error) {
	checked, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("expected a boolean, got %s: %w", describe(v), ErrMalformed)
	}
	if !checked {
		return nil, nil
	}

	box := f.Bounds.Inset(st.Padding)
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("padding leaves no room for the mark in %gx%g bounds",
			f.Bounds.Width, f.Bounds.Height)
	}
	col := st.Color.NRGBA()

	lw := max(1, math.Floor(min(box.Width, box.Height)/6))
	m := box.Inset(preset.Padding{Top: lw / 2, Right: lw / 2, Bottom: lw / 2, Left: lw / 2})
	if st.MarkType == preset.MarkFill || m.Width <= 0 || m.Height <= 0 {
		s.Fill(canvas.Rect(box.X, box.Y, box.Width, box.Height), col)
		return nil, nil
	}

	var p *path.Data
	switch st.MarkType {
	case preset.MarkCheck:
		p = canvas.Polyline(
			vec.Vec2{X: m.X, Y: m.Y + 0.5*m.Height},
			vec.Vec2{X: m.X + 0.3*m.Width, Y: m.Bottom()},
			vec.Vec2{X: m.Right(), Y: m.Y},
		)
	default:
		p = canvas.Line(vec.Vec2{X: m.X, Y: m.Y}, vec.Vec2{X: m.Right(), Y: m.Bottom()})
		p.MoveTo(vec.Vec2{X: m.X, Y: m.Bottom()}).LineTo(vec.Vec2{X: m.Right(), Y: m.Y})
	}
	s.Stroke(p, canvas.RoundPen(lw), col)
	return nil, nil
}
