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
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/coord"
	"seehuhn.de/go/formfill/preset"
)

// sample is one decoded point of a series.
type sample struct {
	index int // position in the input array
	time  float64
	vals  []float64
	obj   map[string]any
}

// decodeSeries reads an array of objects with a numeric "time" member and
// the given numeric members. Elements which do not have this shape are
// reported and skipped. The result is stably sorted by time.
func decodeSeries(f *preset.Field, v any, keys ...string) ([]sample, []Diagnostic, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("expected an array of points, got %s: %w", describe(v), ErrMalformed)
	}

	var diags []Diagnostic
	bad := func(i int, format string, args ...any) {
		diags = append(diags, Diagnostic{
			FieldID: f.ID,
			Kind:    MalformedDataPoint,
			Point:   i,
			Message: fmt.Sprintf(format, args...),
		})
	}

	res := make([]sample, 0, len(items))
items:
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			bad(i, "expected an object, got %s", describe(item))
			continue
		}
		t, ok := member(obj, "time")
		if !ok {
			bad(i, "missing or non-numeric %q", "time")
			continue
		}
		s := sample{index: i, time: t, vals: make([]float64, len(keys)), obj: obj}
		for k, key := range keys {
			x, ok := member(obj, key)
			if !ok {
				bad(i, "missing or non-numeric %q", key)
				continue items
			}
			s.vals[k] = x
		}
		res = append(res, s)
	}

	slices.SortStableFunc(res, func(a, b sample) int {
		return cmp.Compare(a.time, b.time)
	})
	return res, diags, nil
}

func member(obj map[string]any, key string) (float64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	return preset.Number(raw)
}

func clamped(f *preset.Field, s sample, name string, value float64, a preset.Axis) Diagnostic {
	return Diagnostic{
		FieldID: f.ID,
		Kind:    ClampedValue,
		Point:   s.index,
		Message: fmt.Sprintf("%s %g outside [%g, %g]", name, value, a.Min, a.Max),
	}
}

// mapX maps the time of s and records a diagnostic if it was clamped.
func mapX(m *coord.Mapper, f *preset.Field, s sample, diags *[]Diagnostic) float64 {
	x, c := m.MapX(s.time)
	if c {
		*diags = append(*diags, clamped(f, s, "time", s.time, m.X))
	}
	return x
}

// mapY maps value number k of s and records a diagnostic if it was clamped.
func mapY(m *coord.Mapper, f *preset.Field, s sample, k int, name string, diags *[]Diagnostic) float64 {
	y, c := m.MapY(s.vals[k])
	if c {
		*diags = append(*diags, clamped(f, s, name, s.vals[k], *m.Y))
	}
	return y
}

func renderLineGraph(s canvas.Surface, f *preset.Field, st preset.LineGraphStyle, v any) ([]Diagnostic, error) {
	samples, diags, err := decodeSeries(f, v, "value")
	if err != nil {
		return nil, err
	}
	m := coord.NewMapper(f)
	pts := make([]vec.Vec2, len(samples))
	for i, smp := range samples {
		pts[i] = vec.Vec2{X: mapX(m, f, smp, &diags), Y: mapY(m, f, smp, 0, "value", &diags)}
	}

	col := st.Color.NRGBA()
	if st.ConnectPoints && len(pts) >= 2 {
		s.Stroke(canvas.Polyline(pts...), canvas.RoundPen(st.LineWidth), col)
	}
	var radius float64
	if st.ShowDots {
		radius = st.DotRadius
	}
	if len(pts) == 1 && radius <= 0 {
		// a single point is always shown
		radius = max(st.DotRadius, st.LineWidth/2)
	}
	if radius > 0 {
		for _, pt := range pts {
			s.Fill(canvas.Circle(pt, radius), col)
		}
	}
	return diags, nil
}

func renderBarGraph(s canvas.Surface, f *preset.Field, st preset.BarGraphStyle, v any) ([]Diagnostic, error) {
	samples, diags, err := decodeSeries(f, v, "value")
	if err != nil {
		return nil, err
	}
	m := coord.NewMapper(f)
	base := m.Baseline()

	type bar struct{ x0, x1, y0, y1 float64 }
	bars := make([]bar, 0, len(samples))
	for _, smp := range samples {
		x := mapX(m, f, smp, &diags)
		y := mapY(m, f, smp, 0, "value", &diags)
		b := bar{
			x0: max(x-st.BarWidth/2, f.Bounds.X),
			x1: min(x+st.BarWidth/2, f.Bounds.Right()),
			y0: min(y, base),
			y1: max(y, base),
		}
		if b.x1 > b.x0 && b.y1 > b.y0 {
			bars = append(bars, b)
		}
	}

	col := st.Color.NRGBA()
	for _, b := range bars {
		s.Fill(canvas.Rect(b.x0, b.y0, b.x1-b.x0, b.y1-b.y0), col)
	}
	return diags, nil
}

// labelGap is the distance between the top of a dot and its label.
const labelGap = 2

func renderDotSeries(s canvas.Surface, f *preset.Field, st preset.DotSeriesStyle, v any, env *Env) ([]Diagnostic, error) {
	samples, diags, err := decodeSeries(f, v)
	if err != nil {
		return nil, err
	}
	m := coord.NewMapper(f)
	y := m.CenterY()

	type dot struct {
		at    vec.Vec2
		label string
	}
	dots := make([]dot, 0, len(samples))
	for _, smp := range samples {
		d := dot{at: vec.Vec2{X: mapX(m, f, smp, &diags), Y: y}}
		if raw, ok := smp.obj["label"]; ok && raw != nil {
			label, err := scalarText(raw)
			if err != nil {
				diags = append(diags, Diagnostic{
					FieldID: f.ID,
					Kind:    MalformedDataPoint,
					Point:   smp.index,
					Message: "label: " + err.Error(),
				})
			}
			d.label = singleLine(norm.NFC.String(label))
		}
		dots = append(dots, d)
	}

	col := st.Color.NRGBA()
	var face font.Face
	for _, d := range dots {
		if st.DotRadius > 0 {
			s.Fill(canvas.Circle(d.at, st.DotRadius), col)
		}
		if d.label == "" || st.LabelSize <= 0 {
			continue
		}
		if face == nil {
			face = env.Faces.Face(preset.DefaultFamily, st.LabelSize, false)
		}
		w := float64(font.MeasureString(face, d.label)) / 64
		descent := float64(face.Metrics().Descent) / 64
		origin := vec.Vec2{
			X: coord.Snap(d.at.X - w/2),
			Y: coord.Snap(d.at.Y - st.DotRadius - labelGap - descent),
		}
		s.Text(d.label, face, origin, col)
	}
	return diags, nil
}
