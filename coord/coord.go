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

// Package coord maps data values to pixel positions inside a field.
//
// All graph renderers go through this package, so that every coordinate
// is rounded by the same rule and lines, bars and markers line up exactly.
package coord

import (
	"math"

	"seehuhn.de/go/formfill/preset"
)

// Map converts value on axis a to a pixel coordinate within the interval
// [lo, lo+extent]. If inverted is set, a.Min maps to lo+extent and a.Max
// to lo; this is used for vertical axes, since image y grows downwards.
//
// Values outside [a.Min, a.Max] are clamped to the nearest end of the axis
// and clamped is set. The result is snapped to the pixel grid by [Snap].
func Map(value float64, a preset.Axis, lo, extent float64, inverted bool) (px float64, clamped bool) {
	if value < a.Min {
		value, clamped = a.Min, true
	} else if value > a.Max {
		value, clamped = a.Max, true
	}
	t := (value - a.Min) / (a.Max - a.Min)
	if inverted {
		t = 1 - t
	}
	return Snap(lo + t*extent), clamped
}

// Snap is the rounding rule for all mapped coordinates:
// round to the nearest integer, halves away from zero.
func Snap(px float64) float64 {
	return math.Round(px)
}

// Mapper maps (time, value) pairs into the bounds of one graph field.
// Y may be nil for fields without a value axis.
type Mapper struct {
	Bounds preset.Rect
	X      preset.Axis
	Y      *preset.Axis
}

// NewMapper returns the mapper for a graph field.
// The field must have an x axis.
func NewMapper(f *preset.Field) *Mapper {
	return &Mapper{Bounds: f.Bounds, X: *f.XAxis, Y: f.YAxis}
}

// MapX maps a time value to an x pixel coordinate.
func (m *Mapper) MapX(t float64) (float64, bool) {
	return Map(t, m.X, m.Bounds.X, m.Bounds.Width, false)
}

// MapY maps a data value to a y pixel coordinate.
// Larger values are closer to the top of the field.
func (m *Mapper) MapY(v float64) (float64, bool) {
	return Map(v, *m.Y, m.Bounds.Y, m.Bounds.Height, true)
}

// Baseline returns the y pixel coordinate of the minimum of the value axis.
// This is where bars start.
func (m *Mapper) Baseline() float64 {
	y, _ := m.MapY(m.Y.Min)
	return y
}

// CenterY returns the snapped vertical centre of the field.
func (m *Mapper) CenterY() float64 {
	return Snap(m.Bounds.Y + m.Bounds.Height/2)
}

// Ticks returns the axis positions min, min+inc, min+2*inc, ... up to and
// including max, for an axis drawn over extent pixels.
// If the ticks would be less than one pixel apart, the result is nil.
func Ticks(a preset.Axis, extent float64) []float64 {
	if !(a.Increment > 0) || !(a.Max > a.Min) || !(extent > 0) {
		return nil
	}
	count := math.Floor((a.Max-a.Min)/a.Increment + 1e-9)
	if math.IsInf(count, 0) || math.IsNaN(count) || count > extent {
		return nil
	}
	n := int(count)
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, min(a.Min+float64(i)*a.Increment, a.Max))
	}
	return ticks
}
