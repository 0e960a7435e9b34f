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

// Package batch renders many forms in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/formfill"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
)

// Job is one form to render.
type Job struct {
	Name     string
	Preset   *preset.Preset
	Record   record.Record
	Template *formfill.Template // if nil, only the overlay is rendered
	Options  *formfill.Options
}

// Result is the outcome of one [Job].
type Result struct {
	Name        string
	Image       *image.RGBA
	Diagnostics []formfill.Diagnostic
	Err         error
}

// Run renders the jobs using the given number of worker goroutines.
// If workers is less than one, GOMAXPROCS workers are used.
//
// The results are returned in job order. Once ctx is cancelled no new jobs
// are started; jobs which were not started report the context error.
func Run(ctx context.Context, jobs []Job, workers int) []Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(jobs))

	workCh := make(chan int)
	var wg sync.WaitGroup
	for range min(workers, len(jobs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				results[i] = run(&jobs[i])
			}
		}()
	}

	cancelled := func(from int) {
		for j := from; j < len(jobs); j++ {
			results[j] = Result{Name: jobs[j].Name, Err: ctx.Err()}
		}
	}
dispatch:
	for i := range jobs {
		if ctx.Err() != nil {
			cancelled(i)
			break
		}
		select {
		case <-ctx.Done():
			cancelled(i)
			break dispatch
		case workCh <- i:
		}
	}
	close(workCh)
	wg.Wait()
	return results
}

func run(job *Job) Result {
	res := Result{Name: job.Name}
	if job.Template != nil {
		res.Image, res.Diagnostics, res.Err = job.Template.Render(job.Preset, job.Record, job.Options)
	} else {
		res.Image, res.Diagnostics, res.Err = formfill.RenderOverlay(job.Preset, job.Record, job.Options)
	}
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", job.Name, res.Err)
	}
	return res
}

// DirOptions control which presets [LoadDir] turns into jobs.
// A nil *DirOptions loads every preset together with its form image.
type DirOptions struct {
	// OverlayOnly skips reading the form images; the jobs render
	// overlays only.
	OverlayOnly bool

	// Forms restricts the jobs to presets whose job name or form_name is
	// in the list. An empty list selects all presets.
	Forms []string
}

// LoadDir creates one job for every preset file in dir, all using the same
// data record. Each form image is read relative to dir; presets which
// share a form image share one [formfill.Template].
//
// Jobs are named after their preset file, without extension, and are
// sorted by name. A preset which cannot be loaded, whose form image cannot
// be read, or whose name is already taken by another preset file is
// skipped. The problems are reported together in the returned error, and
// the jobs for all other presets are still returned.
func LoadDir(dir string, rec record.Record, opts *formfill.Options, dopts *DirOptions) ([]Job, error) {
	if dopts == nil {
		dopts = &DirOptions{}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	var jobs []Job
	var errs []error
	files := make(map[string]string) // job name -> preset file
	templates := make(map[string]*formfill.Template)
	for _, e := range entries {
		if e.IsDir() || !preset.IsPresetFile(e.Name()) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		p, err := preset.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			if selected(dopts.Forms, name, "") {
				errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			}
			continue
		}
		if !selected(dopts.Forms, name, p.FormName) {
			continue
		}
		if other, dup := files[name]; dup {
			errs = append(errs, fmt.Errorf("%s: job name %q already used by %s", e.Name(), name, other))
			continue
		}
		files[name] = e.Name()

		job := Job{
			Name:    name,
			Preset:  p,
			Record:  rec,
			Options: opts,
		}
		if !dopts.OverlayOnly {
			path := p.FormImage
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			tmpl, ok := templates[path]
			if !ok {
				tmpl, err = formfill.LoadTemplate(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
					continue
				}
				templates[path] = tmpl
			}
			job.Template = tmpl
		}
		jobs = append(jobs, job)
	}

	slices.SortFunc(jobs, func(a, b Job) int { return strings.Compare(a.Name, b.Name) })
	if err := errors.Join(errs...); err != nil {
		return jobs, fmt.Errorf("batch: %w", err)
	}
	return jobs, nil
}

// selected reports whether a preset passes the form filter.
func selected(forms []string, name, formName string) bool {
	if len(forms) == 0 {
		return true
	}
	return slices.Contains(forms, name) || (formName != "" && slices.Contains(forms, formName))
}
