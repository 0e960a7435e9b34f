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

package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/formfill"
	"seehuhn.de/go/formfill/imageio"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/testcases"
)

func allJobs() []Job {
	var jobs []Job
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			w, h := tc.Size()
			page := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
			jobs = append(jobs, Job{
				Name:     category + "_" + tc.Name,
				Preset:   tc.Preset,
				Record:   tc.Record,
				Template: formfill.NewTemplate(page),
			})
		}
	}
	return jobs
}

func TestRunMatchesSequential(t *testing.T) {
	jobs := allJobs()
	results := Run(context.Background(), jobs, 3)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results for %d jobs", len(results), len(jobs))
	}
	for i, res := range results {
		job := jobs[i]
		if res.Name != job.Name {
			t.Errorf("result %d is %q, want %q", i, res.Name, job.Name)
		}
		if res.Err != nil {
			t.Errorf("%s: %v", job.Name, res.Err)
			continue
		}
		want, diags, _ := job.Template.Render(job.Preset, job.Record, nil)
		if !bytes.Equal(res.Image.Pix, want.Pix) {
			t.Errorf("%s: parallel result differs from sequential render", job.Name)
		}
		if len(res.Diagnostics) != len(diags) {
			t.Errorf("%s: %d diagnostics, want %d", job.Name, len(res.Diagnostics), len(diags))
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Run(ctx, allJobs(), 2)
	cancelled := 0
	for _, res := range results {
		if errors.Is(res.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled != len(results) {
		t.Errorf("%d of %d jobs cancelled", cancelled, len(results))
	}
}

func TestRunOverlayAndInvalid(t *testing.T) {
	bad := testcases.ObservationChart()
	bad.Fields[0].Bounds.X = 5000
	jobs := []Job{
		{Name: "overlay", Preset: testcases.ObservationChart(), Record: testcases.ObservationRecord()},
		{Name: "bad", Preset: bad},
	}
	results := Run(context.TODO(), jobs, 0)
	if results[0].Err != nil || results[0].Image.RGBAAt(0, 0).A != 0 {
		t.Errorf("overlay job: %v", results[0].Err)
	}
	var verr *preset.ValidationError
	if !errors.As(results[1].Err, &verr) {
		t.Errorf("invalid preset: got %v", results[1].Err)
	}
}

func writePreset(t *testing.T, dir, name string, p *preset.Preset) {
	t.Helper()
	data, err := preset.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func jobNames(jobs []Job) []string {
	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.Name
	}
	return names
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	p := testcases.ObservationChart()
	p.FormImage = "chart.png"
	writePreset(t, dir, "b_chart.json", p)
	writePreset(t, dir, "a_chart.json", p)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	// the form image is missing
	if jobs, err := LoadDir(dir, nil, nil, nil); err == nil || len(jobs) != 0 {
		t.Fatalf("missing form image: got %d jobs, error %v", len(jobs), err)
	}
	jobs, err := LoadDir(dir, nil, nil, &DirOptions{OverlayOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 || jobs[0].Name != "a_chart" || jobs[1].Name != "b_chart" || jobs[0].Template != nil {
		t.Fatalf("unexpected overlay jobs %+v", jobs)
	}

	page := image.NewRGBA(image.Rect(0, 0, 1200, 900))
	if err := imageio.Save(filepath.Join(dir, "chart.png"), page, 0); err != nil {
		t.Fatal(err)
	}
	jobs, err = LoadDir(dir, testcases.ObservationRecord(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if jobs[0].Template == nil || jobs[0].Template != jobs[1].Template {
		t.Error("presets with the same form image do not share the template")
	}
}

func TestLoadDirSkipsBadPresets(t *testing.T) {
	dir := t.TempDir()
	p := testcases.ObservationChart()
	writePreset(t, dir, "chart.json", p)
	writePreset(t, dir, "chart.yaml", p) // same job name as chart.json
	writePreset(t, dir, "other.json", p)
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"form_name": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs, err := LoadDir(dir, nil, nil, &DirOptions{OverlayOnly: true})
	if err == nil {
		t.Fatal("broken and duplicate presets were not reported")
	}
	for _, bad := range []string{"broken.json", "chart.yaml"} {
		if !strings.Contains(err.Error(), bad) {
			t.Errorf("error %q does not name %s", err, bad)
		}
	}
	if d := cmp.Diff([]string{"chart", "other"}, jobNames(jobs)); d != "" {
		t.Errorf("jobs (-want +got):\n%s", d)
	}
}

func TestLoadDirForms(t *testing.T) {
	dir := t.TempDir()
	p := testcases.ObservationChart()
	writePreset(t, dir, "chart.json", p)
	q := testcases.ObservationChart()
	q.FormName = "Fluid balance"
	writePreset(t, dir, "fluids.json", q)
	writePreset(t, dir, "spare.json", p)
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	// unselected presets, including broken ones, are not reported
	jobs, err := LoadDir(dir, nil, nil, &DirOptions{
		OverlayOnly: true,
		Forms:       []string{"chart", "Fluid balance"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"chart", "fluids"}, jobNames(jobs)); d != "" {
		t.Errorf("jobs (-want +got):\n%s", d)
	}
}
