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

// TestCase is a complete rendering example: a field layout and the data
// to draw into it.
type TestCase struct {
	Name   string // lowercase a-z and _ only
	Preset *preset.Preset
	Record record.Record
}

// Size returns the image size of the test case in pixels.
func (tc TestCase) Size() (width, height int) {
	return tc.Preset.ImageDimensions.Width, tc.Preset.ImageDimensions.Height
}

// form builds a preset for a blank template of the given size.
func form(name string, w, h int, fields ...preset.Field) *preset.Preset {
	return &preset.Preset{
		FormName:        name,
		FormImage:       "blank.png",
		ImageDimensions: preset.Size{Width: w, Height: h},
		Fields:          fields,
	}
}

func box(x, y, w, h float64) preset.Rect {
	return preset.Rect{X: x, Y: y, Width: w, Height: h}
}

func axis(lo, hi, inc float64) *preset.Axis {
	return &preset.Axis{Min: lo, Max: hi, Increment: inc}
}

// series builds a list of {time, value} points from alternating numbers.
func series(tv ...float64) []any {
	pts := make([]any, 0, len(tv)/2)
	for i := 0; i+1 < len(tv); i += 2 {
		pts = append(pts, map[string]any{"time": tv[i], "value": tv[i+1]})
	}
	return pts
}

// readings builds a list of {time, systolic, diastolic} points.
func readings(tsd ...float64) []any {
	pts := make([]any, 0, len(tsd)/3)
	for i := 0; i+2 < len(tsd); i += 3 {
		pts = append(pts, map[string]any{"time": tsd[i], "systolic": tsd[i+1], "diastolic": tsd[i+2]})
	}
	return pts
}
