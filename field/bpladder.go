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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/coord"
	"seehuhn.de/go/formfill/preset"
)

// renderBPLadder draws blood pressure readings. Systolic values are marked
// by a downward pointing triangle, diastolic values by an upward pointing
// one. The two values are connected by separate polylines. Readings with
// diastolic above systolic are drawn as given.
func renderBPLadder(s canvas.Surface, f *preset.Field, st preset.BPLadderStyle, v any) ([]Diagnostic, error) {
	samples, diags, err := decodeSeries(f, v, "systolic", "diastolic")
	if err != nil {
		return nil, err
	}
	m := coord.NewMapper(f)
	sys := make([]vec.Vec2, len(samples))
	dia := make([]vec.Vec2, len(samples))
	for i, smp := range samples {
		x := mapX(m, f, smp, &diags)
		sys[i] = vec.Vec2{X: x, Y: mapY(m, f, smp, 0, "systolic", &diags)}
		dia[i] = vec.Vec2{X: x, Y: mapY(m, f, smp, 1, "diastolic", &diags)}
	}

	col := st.Color.NRGBA()
	pen := canvas.RoundPen(st.LineWidth)
	if st.ShowRange {
		for i := range sys {
			if sys[i] != dia[i] {
				s.Stroke(canvas.Line(sys[i], dia[i]), pen, col)
			}
		}
	}
	if st.ConnectPoints && len(samples) >= 2 {
		s.Stroke(canvas.Polyline(sys...), pen, col)
		s.Stroke(canvas.Polyline(dia...), pen, col)
	}
	if ms := st.MarkerSize; ms > 0 {
		for i := range sys {
			p, q := sys[i], dia[i]
			s.Fill(canvas.Polygon(
				vec.Vec2{X: p.X, Y: p.Y + ms},
				vec.Vec2{X: p.X - ms, Y: p.Y - ms},
				vec.Vec2{X: p.X + ms, Y: p.Y - ms},
			), col)
			s.Fill(canvas.Polygon(
				vec.Vec2{X: q.X, Y: q.Y - ms},
				vec.Vec2{X: q.X - ms, Y: q.Y + ms},
				vec.Vec2{X: q.X + ms, Y: q.Y + ms},
			), col)
		}
	}
	return diags, nil
}
