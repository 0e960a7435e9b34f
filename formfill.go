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

// Package formfill draws patient data onto scanned form templates.
//
// A render pass takes a validated [preset.Preset], a [record.Record] and
// the template image, and returns a new image together with a list of
// diagnostics. A problem with one field never stops the other fields from
// being drawn; only an invalid preset aborts the pass, and this happens
// before any pixel is written. Whether diagnostics are fatal is left to
// the caller.
package formfill

//go:generate go run ./testcases/export

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/field"
	"seehuhn.de/go/formfill/fonts"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
)

// Diagnostic reports a non-fatal problem with one field.
type Diagnostic = field.Diagnostic

// ErrNoTemplate is returned by [Render] when the base image is nil.
var ErrNoTemplate = errors.New("formfill: no template image")

// Options control a render pass. A nil *Options is valid and uses the
// defaults.
type Options struct {
	// Fonts is used to look up the font families named in the preset.
	// If nil, the embedded fonts from [fonts.Shared] are used.
	Fonts *fonts.Cache

	// DataPrefix is prepended to the data path of every field, for records
	// which keep the form data below a common key.
	DataPrefix string
}

func (o *Options) fonts() *fonts.Cache {
	if o == nil || o.Fonts == nil {
		return fonts.Shared()
	}
	return o.Fonts
}

func (o *Options) prefix() string {
	if o == nil {
		return ""
	}
	return o.DataPrefix
}

// Render draws rec onto a copy of base, following the field layout p.
//
// The result has the size given by p.ImageDimensions; if base has a
// different size it is rescaled. base itself is never modified. If p is
// not valid, a *preset.ValidationError is returned and nothing is drawn.
func Render(p *preset.Preset, rec record.Record, base image.Image, opts *Options) (*image.RGBA, []Diagnostic, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if base == nil {
		return nil, nil, ErrNoTemplate
	}

	img := copyTemplate(base, p.ImageDimensions)
	diags := renderFields(canvas.New(img), p, rec, opts)
	return img, diags, nil
}

// RenderOverlay is like [Render], but draws onto a fully transparent image
// instead of a template. The overlay can be composited onto the form
// later, or used to check the layout on its own.
func RenderOverlay(p *preset.Preset, rec record.Record, opts *Options) (*image.RGBA, []Diagnostic, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	c := canvas.NewBlank(p.ImageDimensions.Width, p.ImageDimensions.Height)
	diags := renderFields(c, p, rec, opts)
	return c.Image(), diags, nil
}

// Draw renders the fields of p onto an arbitrary drawing surface, for
// example a PDF page. Validation and diagnostics work as for [Render].
func Draw(s canvas.Surface, p *preset.Preset, rec record.Record, opts *Options) ([]Diagnostic, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return renderFields(s, p, rec, opts), nil
}

// copyTemplate returns a private RGBA copy of base with the given size.
func copyTemplate(base image.Image, size preset.Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	b := base.Bounds()
	if b.Dx() == size.Width && b.Dy() == size.Height {
		draw.Draw(dst, dst.Bounds(), base, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), base, b, draw.Src, nil)
	}
	return dst
}

// renderFields draws all fields of p in declaration order.
func renderFields(s canvas.Surface, p *preset.Preset, rec record.Record, opts *Options) []Diagnostic {
	faces := opts.fonts().Faces()
	defer faces.Close()
	env := &field.Env{Faces: faces}
	prefix := opts.prefix()

	var diags []Diagnostic
	for i := range p.Fields {
		f := &p.Fields[i]
		v, ok := rec.Lookup(f, prefix)
		if !ok {
			if f.Mandatory {
				diags = append(diags, Diagnostic{
					FieldID: f.ID,
					Kind:    field.MissingMandatoryField,
					Point:   -1,
					Message: fmt.Sprintf("no value for %q", f.Key()),
				})
			}
			continue
		}
		diags = append(diags, renderField(s, f, v, env)...)
	}
	return diags
}

// renderField draws a single field. Errors and panics are turned into
// diagnostics for this field.
func renderField(s canvas.Surface, f *preset.Field, v any, env *field.Env) (diags []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = append(diags, Diagnostic{
				FieldID: f.ID,
				Kind:    field.RenderError,
				Point:   -1,
				Message: fmt.Sprint("panic: ", r),
			})
		}
	}()

	diags, err := field.Render(s, f, v, env)
	if err != nil {
		kind := field.RenderError
		if errors.Is(err, field.ErrMalformed) {
			kind = field.MalformedDataPoint
		}
		diags = append(diags, Diagnostic{FieldID: f.ID, Kind: kind, Point: -1, Message: err.Error()})
	}
	return diags
}
