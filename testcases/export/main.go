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

// Command export writes all test cases, presets and data records, to
// testdata/testcases.json. The file can be loaded into the preset editor.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"log"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/testcases"
)

type jsonTestCase struct {
	Name   string          `json:"name"`
	Preset json.RawMessage `json:"preset"`
	Record map[string]any  `json:"record"`
}

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			p, err := preset.Marshal(tc.Preset)
			if err != nil {
				log.Fatalf("%s: %v", name, err)
			}
			out.TestCases = append(out.TestCases, jsonTestCase{
				Name:   name,
				Preset: p,
				Record: tc.Record,
			})
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
