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

package preset

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError lists all problems found in a preset.
type ValidationError struct {
	Issues []Issue
}

// Issue is a single problem in a preset.
type Issue struct {
	Path    string // location in the preset, e.g. "fields[2].x_axis.min"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func (e *ValidationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid preset"
	case 1:
		return "invalid preset: " + e.Issues[0].String()
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("invalid preset (%d problems): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Validate checks the structural invariants of a preset:
// unique non-empty field ids, known field types, bounds inside the image,
// well-formed axes and styles which match the field type.
// All problems are reported together in a [*ValidationError].
func (p *Preset) Validate() error {
	var issues []Issue
	p.validate(&issues)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func (p *Preset) validate(issues *[]Issue) {
	add := func(path, format string, args ...any) {
		*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(p.FormName) == "" {
		add("form_name", "must not be empty")
	}
	if strings.TrimSpace(p.FormImage) == "" {
		add("form_image", "must not be empty")
	}
	dimsOK := true
	if p.ImageDimensions.Width <= 0 {
		add("image_dimensions.width", "must be positive")
		dimsOK = false
	}
	if p.ImageDimensions.Height <= 0 {
		add("image_dimensions.height", "must be positive")
		dimsOK = false
	}
	image := Rect{
		Width:  float64(p.ImageDimensions.Width),
		Height: float64(p.ImageDimensions.Height),
	}

	seen := make(map[string]int, len(p.Fields))
	for i := range p.Fields {
		f := &p.Fields[i]
		at := fmt.Sprintf("fields[%d]", i)

		if f.ID == "" {
			add(at+".id", "must not be empty")
		} else if first, dup := seen[f.ID]; dup {
			add(at+".id", "duplicate field id %q (first used by fields[%d])", f.ID, first)
		} else {
			seen[f.ID] = i
		}

		b := f.Bounds
		sizeOK := true
		if !(b.Width > 0) {
			add(at+".bounds.width", "must be positive")
			sizeOK = false
		}
		if !(b.Height > 0) {
			add(at+".bounds.height", "must be positive")
			sizeOK = false
		}
		if dimsOK && sizeOK && !image.Contains(b) {
			add(at+".bounds", "rectangle (%g,%g)+(%gx%g) lies outside the %dx%d image",
				b.X, b.Y, b.Width, b.Height, p.ImageDimensions.Width, p.ImageDimensions.Height)
		}

		if !f.Type.Valid() {
			if f.Type != "" {
				add(at+".type", "unknown field type %q", f.Type)
			}
			continue
		}

		checkAxis(f.XAxis, f.Type.NeedsXAxis(), at+".x_axis", f.Type, add)
		checkAxis(f.YAxis, f.Type.NeedsYAxis(), at+".y_axis", f.Type, add)

		if f.Style == nil {
			add(at+".style", "missing style")
		} else if f.Style.FieldType() != f.Type {
			add(at+".style", "%s style used for a %s field", f.Style.FieldType(), f.Type)
		} else {
			checkStyle(f.Style, at+".style", add)
		}
	}
}

func checkAxis(a *Axis, needed bool, at string, t FieldType, add func(string, string, ...any)) {
	switch {
	case a == nil && needed:
		add(at, "required for %s fields", t)
		return
	case a == nil:
		return
	case !needed:
		add(at, "not allowed for %s fields", t)
		return
	}
	if !finite(a.Min) || !finite(a.Max) || !(a.Min < a.Max) {
		add(at, "min (%g) must be less than max (%g)", a.Min, a.Max)
	}
	if !finite(a.Increment) || !(a.Increment > 0) {
		add(at+".increment", "must be positive")
	}
}

func checkStyle(s Style, at string, add func(string, string, ...any)) {
	positive := func(key string, v float64) {
		if !finite(v) || !(v > 0) {
			add(at+"."+key, "must be positive")
		}
	}
	nonNegative := func(key string, v float64) {
		if !finite(v) || v < 0 {
			add(at+"."+key, "must not be negative")
		}
	}
	padding := func(p Padding) {
		nonNegative("padding.top", p.Top)
		nonNegative("padding.right", p.Right)
		nonNegative("padding.bottom", p.Bottom)
		nonNegative("padding.left", p.Left)
	}
	alignment := func(a Alignment) {
		if !a.Valid() {
			add(at+".alignment", "unknown alignment %q", a)
		}
	}

	switch s := s.(type) {
	case TextStyle:
		positive("font_size", s.FontSize)
		alignment(s.Alignment)
		padding(s.Padding)
	case MultilineStyle:
		if s.TextRows < 1 {
			add(at+".text_rows", "must be at least 1")
		}
		alignment(s.Alignment)
		padding(s.Padding)
	case CheckboxStyle:
		if !s.MarkType.Valid() {
			add(at+".mark_type", "unknown mark type %q", s.MarkType)
		}
		padding(s.Padding)
	case LineGraphStyle:
		positive("line_width", s.LineWidth)
		nonNegative("dot_radius", s.DotRadius)
	case BarGraphStyle:
		positive("bar_width", s.BarWidth)
	case DotSeriesStyle:
		positive("dot_radius", s.DotRadius)
		positive("label_size", s.LabelSize)
	case BPLadderStyle:
		positive("line_width", s.LineWidth)
		positive("marker_size", s.MarkerSize)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
