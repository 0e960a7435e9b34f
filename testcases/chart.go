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

// ObservationChart returns the layout of a complete adult observation
// chart, with every field type.
func ObservationChart() *preset.Preset {
	red := preset.Color{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xFF}
	hours := axis(0, 120, 5)

	name := textStyle(18, preset.AlignLeft, true)
	name.Color = preset.Color{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF}
	name.Padding = preset.Padding{Top: 2, Left: 4}

	notes := preset.DefaultStyle(preset.MultilineText).(preset.MultilineStyle)
	notes.TextRows = 4

	hr := lineGraph(true, true)
	hr.Color = red

	bp := preset.DefaultStyle(preset.BPLadder).(preset.BPLadderStyle)
	bp.Color = preset.Black
	bp.MarkerSize = 5
	bp.ShowRange = true

	return form("Adult Observation Chart", 1200, 900,
		preset.Field{ID: "patient_name", Type: preset.Text, Mandatory: true, Bounds: box(100, 40, 400, 30), Style: name},
		preset.Field{ID: "mrn", Type: preset.Text, Mandatory: true, Bounds: box(700, 40, 300, 30), Style: textStyle(12, preset.AlignRight, false)},
		preset.Field{ID: "notes", Type: preset.MultilineText, Bounds: box(100, 760, 900, 120), Style: notes},
		preset.Field{
			ID: "allergies_none", Type: preset.Checkbox, Bounds: box(1050, 40, 24, 24),
			Style: preset.CheckboxStyle{MarkType: preset.MarkCheck, Color: preset.Black},
		},
		preset.Field{
			ID: "heart_rate", Type: preset.LineGraph, Mandatory: true, DataPath: "vitals.heart_rate",
			Bounds: box(150, 100, 800, 200), Style: hr, XAxis: hours, YAxis: axis(40, 180, 10),
		},
		preset.Field{
			ID: "urine_output", Type: preset.BarGraph, Bounds: box(150, 320, 800, 100),
			Style: preset.BarGraphStyle{Color: preset.Blue, BarWidth: 8}, XAxis: hours, YAxis: axis(0, 500, 100),
		},
		preset.Field{
			ID: "medication_given", Type: preset.DotSeries, Bounds: box(150, 440, 800, 20),
			Style: preset.DotSeriesStyle{Color: preset.Black, DotRadius: 4, LabelSize: 8}, XAxis: hours,
		},
		preset.Field{
			ID: "blood_pressure", Type: preset.BPLadder, Mandatory: true,
			Bounds: box(150, 480, 800, 260), Style: bp, XAxis: hours, YAxis: axis(40, 200, 10),
		},
	)
}

// ObservationRecord returns a data record which fills every field of
// [ObservationChart].
func ObservationRecord() record.Record {
	return record.Record{
		"patient_name":   "Jane Doe",
		"mrn":            "MRN 0042-1137",
		"notes":          "Settled overnight, observations stable. Encourage oral fluids.\nFor review on the morning ward round.",
		"allergies_none": true,
		"vitals": map[string]any{
			"heart_rate": series(0, 78, 15, 82, 30, 90, 45, 96, 60, 92, 75, 88, 90, 84, 105, 80, 120, 79),
		},
		"urine_output": series(0, 120, 30, 80, 60, 150, 90, 60, 120, 110),
		"medication_given": []any{
			map[string]any{"time": 10, "label": "PCM"},
			map[string]any{"time": 70, "label": "IBU"},
		},
		"blood_pressure": readings(0, 128, 82, 30, 134, 86, 60, 142, 90, 90, 136, 84, 120, 130, 80),
	}
}

var chartCases = []TestCase{
	{Name: "observation", Preset: ObservationChart(), Record: ObservationRecord()},
	{Name: "observation_empty", Preset: ObservationChart(), Record: record.Record{}},
}
