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

func ladder(showRange bool) preset.Field {
	st := preset.DefaultStyle(preset.BPLadder).(preset.BPLadderStyle)
	st.ShowRange = showRange
	return preset.Field{
		ID: "bp", Type: preset.BPLadder, Bounds: box(10, 10, 240, 160),
		Style: st, XAxis: axis(0, 120, 15), YAxis: axis(40, 200, 20),
	}
}

var ladderCases = []TestCase{
	{
		Name:   "basic",
		Preset: form("bp", 260, 180, ladder(false)),
		Record: record.Record{"bp": readings(0, 120, 80, 30, 135, 85, 60, 150, 95, 90, 140, 90, 120, 125, 82)},
	},
	{
		Name:   "range",
		Preset: form("bp_range", 260, 180, ladder(true)),
		Record: record.Record{"bp": readings(0, 120, 80, 60, 150, 95, 120, 125, 82)},
	},
	{
		// diastolic above systolic is drawn as given
		Name:   "inverted",
		Preset: form("bp_inverted", 260, 180, ladder(true)),
		Record: record.Record{"bp": readings(30, 80, 120, 90, 130, 70)},
	},
}
