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

package formfill

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/field"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
	"seehuhn.de/go/formfill/testcases"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func findCase(t *testing.T, category, name string) testcases.TestCase {
	t.Helper()
	for _, tc := range testcases.All[category] {
		if tc.Name == name {
			return tc
		}
	}
	t.Fatalf("no test case %s_%s", category, name)
	return testcases.TestCase{}
}

// inked reports whether any pixel inside r differs from white.
func inked(img *image.RGBA, r preset.Rect) bool {
	rect := image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom())).Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				return true
			}
		}
	}
	return false
}

type diagKey struct {
	FieldID string
	Kind    field.Kind
	Point   int
}

func keys(diags []Diagnostic) []diagKey {
	res := make([]diagKey, len(diags))
	for i, d := range diags {
		res[i] = diagKey{d.FieldID, d.Kind, d.Point}
	}
	return res
}

func TestEmptyRecord(t *testing.T) {
	p := testcases.ObservationChart()
	base := whitePage(1200, 900)
	img, diags, err := Render(p, record.Record{}, base, nil)
	if err != nil {
		t.Fatal(err)
	}

	var want []diagKey
	for _, id := range p.Mandatory() {
		want = append(want, diagKey{id, field.MissingMandatoryField, -1})
	}
	if d := cmp.Diff(want, keys(diags)); d != "" {
		t.Errorf("diagnostics (-want +got):\n%s", d)
	}
	if !bytes.Equal(img.Pix, base.Pix) {
		t.Error("empty record changed pixels")
	}
}

func TestFullRecord(t *testing.T) {
	p := testcases.ObservationChart()
	base := whitePage(1200, 900)
	img, diags, err := Render(p, testcases.ObservationRecord(), base, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics %v", diags)
	}
	for _, f := range p.Fields {
		if !inked(img, f.Bounds) {
			t.Errorf("field %s: nothing drawn", f.ID)
		}
	}
	if !slices.Equal(base.Pix, whitePage(1200, 900).Pix) {
		t.Error("template image was modified")
	}
}

func TestIsolation(t *testing.T) {
	tc := findCase(t, "edge", "malformed")
	w, h := tc.Size()
	img, diags, err := Render(tc.Preset, tc.Record, whitePage(w, h), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []diagKey{
		{"hr", field.MalformedDataPoint, 1},
		{"hr", field.MalformedDataPoint, 2},
		{"done", field.MalformedDataPoint, -1},
		{"name", field.MissingMandatoryField, -1},
	}
	if d := cmp.Diff(want, keys(diags)); d != "" {
		t.Errorf("diagnostics (-want +got):\n%s", d)
	}
	hr, _ := tc.Preset.Field("hr")
	if !inked(img, hr.Bounds) {
		t.Error("valid points of the series were not drawn")
	}
	done, _ := tc.Preset.Field("done")
	if inked(img, done.Bounds) {
		t.Error("rejected checkbox value was drawn")
	}
}

func TestClampDiagnostics(t *testing.T) {
	tc := findCase(t, "edge", "clamped")
	_, diags, err := RenderOverlay(tc.Preset, tc.Record, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []diagKey{
		{"hr", field.ClampedValue, 0},
		{"hr", field.ClampedValue, 1},
		{"hr", field.ClampedValue, 2},
		{"hr", field.ClampedValue, 3},
	}
	if d := cmp.Diff(want, keys(diags)); d != "" {
		t.Errorf("diagnostics (-want +got):\n%s", d)
	}
}

func TestInvalidPreset(t *testing.T) {
	p := testcases.ObservationChart()
	p.Fields[1].ID = p.Fields[0].ID
	p.Fields[4].XAxis = nil

	base := whitePage(1200, 900)
	img, diags, err := Render(p, testcases.ObservationRecord(), base, nil)
	var verr *preset.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want a validation error", err)
	}
	if len(verr.Issues) < 2 {
		t.Errorf("validation stopped early: %v", verr)
	}
	if img != nil || diags != nil {
		t.Error("invalid preset produced output")
	}

	_, _, err = Render(testcases.ObservationChart(), nil, nil, nil)
	if !errors.Is(err, ErrNoTemplate) {
		t.Errorf("nil template: got %v", err)
	}
}

func TestRescaledTemplate(t *testing.T) {
	p := testcases.ObservationChart()
	img, _, err := Render(p, nil, whitePage(600, 450), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 1200, 900) {
		t.Errorf("output bounds %v", got)
	}
	if got := img.RGBAAt(600, 450); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("rescaled white template has pixel %v", got)
	}
}

func TestTemplateConcurrent(t *testing.T) {
	tmpl := NewTemplate(whitePage(1200, 900))
	p := testcases.ObservationChart()
	rec := testcases.ObservationRecord()

	want, _, err := tmpl.Render(p, rec, nil)
	if err != nil {
		t.Fatal(err)
	}

	const n = 4
	results := make([]*image.RGBA, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _, _ = tmpl.Render(p, rec, nil)
		}()
	}
	wg.Wait()
	for i, img := range results {
		if img == nil || !bytes.Equal(img.Pix, want.Pix) {
			t.Errorf("render %d differs", i)
		}
	}
}

func TestOverlay(t *testing.T) {
	tc := findCase(t, "checkbox", "marks")
	img, _, err := RenderOverlay(tc.Preset, tc.Record, nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("overlay background is not transparent")
	}
	unchecked, _ := tc.Preset.Field("unchecked")
	b := unchecked.Bounds
	for y := int(b.Y); y < int(b.Bottom()); y++ {
		for x := int(b.X); x < int(b.Right()); x++ {
			if img.RGBAAt(x, y).A != 0 {
				t.Fatalf("unchecked box has ink at (%d,%d)", x, y)
			}
		}
	}
	checked, _ := tc.Preset.Field("x")
	b = checked.Bounds
	if img.RGBAAt(int(b.X+b.Width/2), int(b.Y+b.Height/2)).A == 0 {
		t.Error("no ink in the centre of the x mark")
	}
}

func TestDataPrefix(t *testing.T) {
	p := &preset.Preset{
		FormName: "prefix", FormImage: "blank.png",
		ImageDimensions: preset.Size{Width: 100, Height: 40},
		Fields: []preset.Field{{
			ID: "name", Type: preset.Text, Mandatory: true,
			Bounds: preset.Rect{X: 0, Y: 0, Width: 100, Height: 40},
			Style:  preset.DefaultStyle(preset.Text),
		}},
	}
	rec := record.Record{"patient": map[string]any{"name": "J. Doe"}}

	_, diags, _ := RenderOverlay(p, rec, nil)
	if len(diags) != 1 || diags[0].Kind != field.MissingMandatoryField {
		t.Errorf("without prefix: %v", diags)
	}
	_, diags, _ = RenderOverlay(p, rec, &Options{DataPrefix: "patient"})
	if len(diags) != 0 {
		t.Errorf("with prefix: %v", diags)
	}
}

func TestPanicBecomesDiagnostic(t *testing.T) {
	// a graph without axes cannot pass validation; here it makes the
	// renderer panic
	f := &preset.Field{ID: "hr", Type: preset.LineGraph, Style: preset.DefaultStyle(preset.LineGraph)}
	v := []any{map[string]any{"time": 1, "value": 2}}
	diags := renderField(&canvas.Recorder{}, f, v, &field.Env{})
	if len(diags) != 1 || diags[0].Kind != field.RenderError || diags[0].FieldID != "hr" {
		t.Errorf("got %v, want one render error", diags)
	}
}
