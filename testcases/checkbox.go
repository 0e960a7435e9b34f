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

package testcases

import (
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
)

func checkbox(id string, x float64, mark preset.MarkType) preset.Field {
	return preset.Field{
		ID:     id,
		Type:   preset.Checkbox,
		Bounds: box(x, 8, 24, 24),
		Style:  preset.CheckboxStyle{MarkType: mark, Color: preset.Black, Padding: preset.Padding{Top: 2, Right: 2, Bottom: 2, Left: 2}},
	}
}

var checkboxCases = []TestCase{
	{
		Name: "marks",
		Preset: form("marks", 160, 40,
			checkbox("x", 10, preset.MarkX),
			checkbox("check", 50, preset.MarkCheck),
			checkbox("fill", 90, preset.MarkFill),
			checkbox("unchecked", 130, preset.MarkX),
		),
		Record: record.Record{"x": true, "check": true, "fill": true, "unchecked": false},
	},
	{
		Name: "tiny",
		Preset: form("tiny", 20, 20,
			preset.Field{ID: "t", Type: preset.Checkbox, Bounds: box(8, 8, 4, 4), Style: preset.DefaultStyle(preset.Checkbox)},
		),
		Record: record.Record{"t": true},
	},
}
