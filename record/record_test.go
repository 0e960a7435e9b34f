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

package record

import (
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/formfill/preset"
)

const jsonRecord = `{
	"patient_name": "Jane Doe",
	"allergies_none": false,
	"discharged": null,
	"vitals": {
		"heart_rate": [{"time": 0, "value": 72}, {"time": 15, "value": 80}]
	},
	"patient": {"mrn": "A-100"}
}`

const yamlRecord = `
patient_name: Jane Doe
allergies_none: false
discharged: null
vitals:
  heart_rate:
    - {time: 0, value: 72}
    - {time: 15, value: 80}
patient:
  mrn: A-100
`

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		data string
	}{
		{"json", "r.json", jsonRecord},
		{"yaml", "r.yaml", yamlRecord},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{tc.file: {Data: []byte(tc.data)}}
			r, err := LoadFS(fsys, tc.file)
			if err != nil {
				t.Fatal(err)
			}

			v, ok := r.Lookup(&preset.Field{ID: "patient_name"}, "")
			if !ok || v != "Jane Doe" {
				t.Errorf("patient_name: got %v %v", v, ok)
			}
			v, ok = r.Lookup(&preset.Field{ID: "allergies_none"}, "")
			if !ok || v != false {
				t.Errorf("false checkbox value: got %v %v", v, ok)
			}
			if v, ok := r.Lookup(&preset.Field{ID: "discharged"}, ""); ok {
				t.Errorf("null value found as %v", v)
			}
			if v, ok := r.Lookup(&preset.Field{ID: "missing"}, ""); ok {
				t.Errorf("missing value found as %v", v)
			}

			v, ok = r.Lookup(&preset.Field{ID: "hr", DataPath: "vitals.heart_rate"}, "")
			if !ok {
				t.Fatal("data path not resolved")
			}
			if pts, ok := v.([]any); !ok || len(pts) != 2 {
				t.Errorf("heart rate: got %#v", v)
			}

			v, ok = r.Lookup(&preset.Field{ID: "mrn"}, "patient.")
			if !ok || v != "A-100" {
				t.Errorf("prefixed lookup: got %v %v", v, ok)
			}

			v, ok = r.Get("vitals.heart_rate.1.value")
			if x, isNum := preset.Number(v); !ok || !isNum || x != 80 {
				t.Errorf("indexed path: got %v %v", v, ok)
			}
			for _, bad := range []string{"vitals.heart_rate.2", "vitals.heart_rate.x", "patient_name.first", ""} {
				if v, ok := r.Get(bad); ok {
					t.Errorf("%q resolved to %v", bad, v)
				}
			}
		})
	}
}

func TestJSONNumbers(t *testing.T) {
	r, err := Parse([]byte(`{"n": 12.50}`))
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := r["n"].(json.Number); !ok || n.String() != "12.50" {
		t.Errorf("got %#v, want json.Number(\"12.50\")", r["n"])
	}
}

func TestYAMLKeys(t *testing.T) {
	r, err := ParseYAML([]byte("readings:\n  1: {time: 0, value: 3}\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"1": map[string]any{"time": 0, "value": 3}}
	if d := cmp.Diff(want, r["readings"]); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{`[1, 2]`, `"text"`} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrNotObject) {
			t.Errorf("%s: got %v, want ErrNotObject", in, err)
		}
	}
	if _, err := ParseYAML([]byte("- a\n- b\n")); !errors.Is(err, ErrNotObject) {
		t.Errorf("YAML list: got %v, want ErrNotObject", err)
	}
	if _, err := Parse([]byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Error("trailing data was accepted")
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Error("truncated JSON was accepted")
	}
}
