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

// Command formfill draws the data of a record onto a scanned form.
//
// Usage:
//
//	formfill -preset chart.json -data patient.json -output filled.png
//	formfill -batch presets/ -data patient.json -output out/ -jobs 4
//
// Diagnostics are logged. By default the exit status is 0 even when
// diagnostics occur; use -strict to exit with status 2 instead.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"seehuhn.de/go/formfill"
	"seehuhn.de/go/formfill/batch"
	"seehuhn.de/go/formfill/fonts"
	"seehuhn.de/go/formfill/imageio"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/proof"
	"seehuhn.de/go/formfill/record"
)

func main() {
	presetPath := flag.String("preset", "", "preset file (JSON or YAML)")
	dataPath := flag.String("data", "", "data record file (JSON or YAML)")
	output := flag.String("output", "", "output image, or output directory with -batch")
	overlayOnly := flag.Bool("overlay-only", false, "draw onto a transparent image instead of the form")
	proofPath := flag.String("proof", "", "also write a PDF proof to this file")
	templatePath := flag.String("template", "", "form image (default: form_image of the preset, relative to the preset file)")
	fontDir := flag.String("font-dir", "", "directory with additional TrueType/OpenType fonts")
	prefix := flag.String("prefix", "", "data path prefix for all fields")
	quality := flag.Int("quality", imageio.DefaultQuality, "JPEG quality (1-100)")
	verbose := flag.Bool("v", false, "log every diagnostic")
	strict := flag.Bool("strict", false, "exit with status 2 if there are diagnostics")
	batchDir := flag.String("batch", "", "render every preset in this directory")
	jobs := flag.Int("jobs", 0, "number of parallel renders with -batch (default: number of CPUs)")
	format := flag.String("format", "png", "output format with -batch")
	forms := flag.String("forms", "", "comma separated preset or form names to render with -batch (default: all)")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("formfill: ")

	if *dataPath == "" || *output == "" || (*presetPath == "") == (*batchDir == "") {
		flag.Usage()
		os.Exit(1)
	}

	rec, err := record.Load(*dataPath)
	if err != nil {
		log.Fatal(err)
	}
	opts := &formfill.Options{DataPrefix: *prefix}
	if *fontDir != "" {
		opts.Fonts = fonts.New()
		n, err := opts.Fonts.LoadDir(*fontDir)
		if err != nil {
			log.Fatal(err)
		}
		if *verbose {
			log.Printf("loaded %d fonts from %s", n, *fontDir)
		}
	}

	var diags []formfill.Diagnostic
	if *batchDir != "" {
		diags = runBatch(*batchDir, rec, opts, *output, *format, *quality, *jobs, &batch.DirOptions{
			OverlayOnly: *overlayOnly,
			Forms:       splitList(*forms),
		})
	} else {
		diags = runSingle(*presetPath, rec, opts, *output, *templatePath, *proofPath, *quality, *overlayOnly)
	}

	if *verbose {
		for _, d := range diags {
			log.Print(d)
		}
	} else if len(diags) > 0 {
		log.Printf("%d diagnostics (use -v to list them)", len(diags))
	}
	if *strict && len(diags) > 0 {
		os.Exit(2)
	}
}

func runSingle(presetPath string, rec record.Record, opts *formfill.Options, output, templatePath, proofPath string, quality int, overlayOnly bool) []formfill.Diagnostic {
	p, err := preset.Load(presetPath)
	if err != nil {
		fatalPreset(err)
	}

	var diags []formfill.Diagnostic
	if overlayOnly {
		out, d, err := formfill.RenderOverlay(p, rec, opts)
		if err != nil {
			fatalPreset(err)
		}
		diags = d
		save(output, out, quality)
	} else {
		if templatePath == "" {
			templatePath = formImagePath(presetPath, p)
		}
		tmpl, err := formfill.LoadTemplate(templatePath)
		if err != nil {
			log.Fatal(err)
		}
		out, d, err := tmpl.Render(p, rec, opts)
		if err != nil {
			fatalPreset(err)
		}
		diags = d
		save(output, out, quality)
	}

	if proofPath != "" {
		if _, err := proof.Write(proofPath, p, rec, opts); err != nil {
			log.Fatalf("proof: %v", err)
		}
	}
	return diags
}

func runBatch(dir string, rec record.Record, opts *formfill.Options, outDir, format string, quality, workers int, dopts *batch.DirOptions) []formfill.Diagnostic {
	jobs, loadErr := batch.LoadDir(dir, rec, opts, dopts)
	if loadErr != nil {
		// the presets which did load are still rendered
		log.Print(loadErr)
	}
	if len(jobs) == 0 {
		log.Fatalf("no forms to render in %s", dir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var diags []formfill.Diagnostic
	failed := 0
	for _, res := range batch.Run(ctx, jobs, workers) {
		if res.Err != nil {
			log.Print(res.Err)
			failed++
			continue
		}
		save(filepath.Join(outDir, res.Name+"."+format), res.Image, quality)
		diags = append(diags, res.Diagnostics...)
	}
	if failed > 0 {
		log.Fatalf("%d of %d forms failed", failed, len(jobs))
	}
	if loadErr != nil {
		log.Fatalf("rendered %d forms, some presets were skipped", len(jobs))
	}
	return diags
}

// splitList splits a comma separated list, dropping empty elements.
func splitList(s string) []string {
	var res []string
	for _, x := range strings.Split(s, ",") {
		if x = strings.TrimSpace(x); x != "" {
			res = append(res, x)
		}
	}
	return res
}

// formImagePath returns the location of the form image of p.
// A relative form_image is resolved against the directory of the preset.
func formImagePath(presetPath string, p *preset.Preset) string {
	if filepath.IsAbs(p.FormImage) {
		return p.FormImage
	}
	return filepath.Join(filepath.Dir(presetPath), p.FormImage)
}

func save(path string, img image.Image, quality int) {
	if err := imageio.Save(path, img, quality); err != nil {
		log.Fatal(err)
	}
}

// fatalPreset logs every problem of an invalid preset and exits.
func fatalPreset(err error) {
	var verr *preset.ValidationError
	if errors.As(err, &verr) {
		for _, issue := range verr.Issues {
			log.Print(issue)
		}
		log.Fatalf("invalid preset (%d problems)", len(verr.Issues))
	}
	log.Fatal(err)
}
