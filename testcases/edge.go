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

// Cases in this category produce diagnostics, but still render.
var edgeCases = []TestCase{
	{
		Name: "clamped",
		Preset: form("clamped", 260, 120,
			preset.Field{
				ID: "hr", Type: preset.LineGraph, Bounds: box(10, 10, 240, 100),
				Style: lineGraph(true, true), XAxis: axis(0, 120, 15), YAxis: axis(40, 180, 20),
			},
		),
		Record: record.Record{"hr": series(-10, 60, 30, 200, 60, 20, 150, 90)},
	},
	{
		Name: "malformed",
		Preset: form("malformed", 260, 160,
			preset.Field{
				ID: "hr", Type: preset.LineGraph, Bounds: box(10, 10, 240, 100),
				Style: lineGraph(true, true), XAxis: axis(0, 120, 15), YAxis: axis(40, 180, 20),
			},
			preset.Field{ID: "done", Type: preset.Checkbox, Bounds: box(10, 120, 24, 24), Style: preset.DefaultStyle(preset.Checkbox)},
			preset.Field{ID: "name", Type: preset.Text, Mandatory: true, Bounds: box(40, 120, 200, 30), Style: preset.DefaultStyle(preset.Text)},
		),
		Record: record.Record{
			"hr": []any{
				map[string]any{"time": 0, "value": 70},
				"not a point",
				map[string]any{"time": 60},
				map[string]any{"time": 120, "value": 90},
			},
			"done": "yes",
		},
	},
}
