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

func lineGraph(connect, dots bool) preset.LineGraphStyle {
	st := preset.DefaultStyle(preset.LineGraph).(preset.LineGraphStyle)
	st.ConnectPoints = connect
	st.ShowDots = dots
	return st
}

var graphCases = []TestCase{
	{
		Name: "line",
		Preset: form("line", 260, 120,
			preset.Field{
				ID: "hr", Type: preset.LineGraph, Bounds: box(10, 10, 240, 100),
				Style: lineGraph(true, true), XAxis: axis(0, 120, 15), YAxis: axis(40, 180, 20),
			},
		),
		Record: record.Record{"hr": series(0, 72, 15, 80, 30, 95, 45, 110, 60, 104, 90, 88, 120, 76)},
	},
	{
		Name: "line_unsorted",
		Preset: form("line_unsorted", 260, 120,
			preset.Field{
				ID: "hr", Type: preset.LineGraph, Bounds: box(10, 10, 240, 100),
				Style: lineGraph(true, false), XAxis: axis(0, 120, 15), YAxis: axis(40, 180, 20),
			},
		),
		Record: record.Record{"hr": series(90, 88, 0, 72, 45, 110, 120, 76, 15, 80, 60, 104, 30, 95)},
	},
	{
		Name: "single_point",
		Preset: form("single_point", 120, 80,
			preset.Field{
				ID: "temp", Type: preset.LineGraph, Bounds: box(10, 10, 100, 60),
				Style: lineGraph(true, false), XAxis: axis(0, 60, 10), YAxis: axis(35, 40, 0.5),
			},
		),
		Record: record.Record{"temp": series(30, 37.2)},
	},
	{
		Name: "bars",
		Preset: form("bars", 260, 120,
			preset.Field{
				ID: "urine", Type: preset.BarGraph, Bounds: box(10, 10, 240, 100),
				Style: preset.BarGraphStyle{Color: preset.Blue, BarWidth: 8},
				XAxis: axis(0, 120, 30), YAxis: axis(0, 500, 100),
			},
		),
		Record: record.Record{"urine": series(0, 120, 30, 250, 60, 0, 90, 410, 120, 300)},
	},
	{
		Name: "dots",
		Preset: form("dots", 260, 50,
			preset.Field{
				ID: "meds", Type: preset.DotSeries, Bounds: box(10, 20, 240, 20),
				Style: preset.DotSeriesStyle{Color: preset.Black, DotRadius: 4, LabelSize: 8},
				XAxis: axis(0, 120, 30),
			},
		),
		Record: record.Record{"meds": []any{
			map[string]any{"time": 10, "label": "PO"},
			map[string]any{"time": 55},
			map[string]any{"time": 100, "label": "IV"},
		}},
	},
}
