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

func textStyle(size float64, align preset.Alignment, bold bool) preset.TextStyle {
	st := preset.DefaultStyle(preset.Text).(preset.TextStyle)
	st.FontSize = size
	st.Alignment = align
	st.Bold = bold
	return st
}

var textCases = []TestCase{
	{
		Name: "alignment",
		Preset: form("alignment", 320, 120,
			preset.Field{ID: "left", Type: preset.Text, Bounds: box(10, 10, 300, 30), Style: textStyle(16, preset.AlignLeft, false)},
			preset.Field{ID: "center", Type: preset.Text, Bounds: box(10, 45, 300, 30), Style: textStyle(16, preset.AlignCenter, false)},
			preset.Field{ID: "right", Type: preset.Text, Bounds: box(10, 80, 300, 30), Style: textStyle(16, preset.AlignRight, true)},
		),
		Record: record.Record{"left": "Left", "center": "Centre", "right": "Right"},
	},
	{
		Name: "padding_and_colour",
		Preset: form("padding", 240, 60,
			preset.Field{
				ID: "name", Type: preset.Text, Bounds: box(10, 10, 220, 40),
				Style: preset.TextStyle{
					FontSize: 20, Color: preset.Color{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF},
					Alignment: preset.AlignLeft, Bold: true, FontFamily: preset.DefaultFamily,
					Padding: preset.Padding{Top: 6, Left: 12},
				},
			},
		),
		Record: record.Record{"name": "Jane Doe"},
	},
	{
		Name: "numbers",
		Preset: form("numbers", 200, 40,
			preset.Field{ID: "weight", Type: preset.Text, Bounds: box(10, 5, 180, 30), Style: textStyle(14, preset.AlignRight, false)},
		),
		Record: record.Record{"weight": 72.5},
	},
	{
		Name: "multiline",
		Preset: form("multiline", 300, 100,
			preset.Field{
				ID: "notes", Type: preset.MultilineText, Bounds: box(10, 10, 280, 80),
				Style: preset.MultilineStyle{TextRows: 4, Color: preset.Black, Alignment: preset.AlignLeft, FontFamily: preset.DefaultFamily},
			},
		),
		Record: record.Record{
			"notes": "Patient comfortable overnight. Mobilising with frame.\nReview by physiotherapy tomorrow morning.",
		},
	},
}
