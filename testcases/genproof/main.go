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

// Command genproof writes a PDF proof for every test case and renders it
// to PNG using Ghostscript, for comparison with the raster output.
// Run from the module root directory.
package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/formfill/proof"
	"seehuhn.de/go/formfill/testcases"
)

const proofDir = "testdata/proof"

func main() {
	if err := os.MkdirAll(proofDir, 0o755); err != nil {
		log.Fatal(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(proofDir, name+".pdf")
			pngPath := filepath.Join(proofDir, name+".png")

			diags, err := proof.Write(pdfPath, tc.Preset, tc.Record, nil)
			if err != nil {
				log.Fatal(fmt.Errorf("%s: %w", name, err))
			}
			for _, d := range diags {
				log.Printf("%s: %s", name, d)
			}

			if err := renderPNG(pdfPath, pngPath); err != nil {
				log.Fatal(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func renderPNG(pdfPath, pngPath string) error {
	// -r72: one PDF unit per pixel, as in the form image
	// -dGraphicsAlphaBits=4: anti-aliased like the rasteriser
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
