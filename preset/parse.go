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
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a preset file. Files ending in ".yaml" or ".yml" are decoded
// as YAML, everything else as JSON.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

// LoadFS reads a preset file from fsys. See [Load].
func LoadFS(fsys fs.FS, path string) (*Preset, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

// IsPresetFile reports whether the file name has one of the extensions
// understood by [Load].
func IsPresetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func parseFile(data []byte, path string) (*Preset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse decodes and validates a JSON preset.
// Any problem with the preset is reported as a [*ValidationError].
func Parse(data []byte) (*Preset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Issues: []Issue{{Message: "invalid JSON: " + err.Error()}}}
	}
	return fromRaw(raw)
}

// ParseYAML decodes and validates a YAML preset.
// Any problem with the preset is reported as a [*ValidationError].
func ParseYAML(data []byte) (*Preset, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Issues: []Issue{{Message: "invalid YAML: " + err.Error()}}}
	}
	return fromRaw(raw)
}

// fromRaw converts the generic decoded form into a Preset.
// Decoding problems (missing keys, wrong types) are collected first; the
// structural checks of Validate run afterwards on whatever could be decoded.
func fromRaw(raw any) (*Preset, error) {
	d := &decoder{}
	top, ok := raw.(map[string]any)
	if !ok {
		d.errorf("", "preset must be an object")
		return nil, d.err()
	}

	p := &Preset{}
	p.FormName, _ = d.str(top, "", "form_name", true)
	p.FormImage, _ = d.str(top, "", "form_image", true)
	if dims, ok := d.object(top, "", "image_dimensions", true); ok {
		p.ImageDimensions.Width, _ = d.integer(dims, "image_dimensions", "width", true)
		p.ImageDimensions.Height, _ = d.integer(dims, "image_dimensions", "height", true)
	}

	if v, ok := top["fields"]; !ok || v == nil {
		d.errorf("fields", "missing required key")
	} else if list, ok := v.([]any); !ok {
		d.errorf("fields", "must be an array")
	} else {
		p.Fields = make([]Field, 0, len(list))
		for i, item := range list {
			at := fmt.Sprintf("fields[%d]", i)
			obj, ok := item.(map[string]any)
			if !ok {
				d.errorf(at, "must be an object")
				p.Fields = append(p.Fields, Field{})
				continue
			}
			p.Fields = append(p.Fields, d.field(obj, at))
		}
	}

	var structural []Issue
	p.validate(&structural)
	for _, issue := range structural {
		if !d.covers(issue.Path) {
			d.issues = append(d.issues, issue)
		}
	}
	if err := d.err(); err != nil {
		return nil, err
	}
	return p, nil
}

type decoder struct {
	issues []Issue
}

func (d *decoder) errorf(path, format string, args ...any) {
	d.issues = append(d.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (d *decoder) err() error {
	if len(d.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: d.issues}
}

// covers reports whether a decoding issue was already recorded for path,
// for one of its parents or for one of its children.
func (d *decoder) covers(path string) bool {
	for _, issue := range d.issues {
		if issue.Path == path ||
			strings.HasPrefix(path, issue.Path+".") ||
			strings.HasPrefix(issue.Path, path+".") {
			return true
		}
	}
	return false
}

func (d *decoder) field(obj map[string]any, at string) Field {
	var f Field
	f.ID, _ = d.str(obj, at, "id", true)
	f.Description, _ = d.str(obj, at, "description", false)
	f.DataPath, _ = d.str(obj, at, "data_path", false)
	f.Mandatory, _ = d.boolean(obj, at, "mandatory", false)
	typ, _ := d.str(obj, at, "type", true)
	f.Type = FieldType(typ)

	if b, ok := d.object(obj, at, "bounds", true); ok {
		bp := join(at, "bounds")
		f.Bounds.X, _ = d.number(b, bp, "x", true)
		f.Bounds.Y, _ = d.number(b, bp, "y", true)
		f.Bounds.Width, _ = d.number(b, bp, "width", true)
		f.Bounds.Height, _ = d.number(b, bp, "height", true)
	}

	f.XAxis = d.axis(obj, at, "x_axis")
	f.YAxis = d.axis(obj, at, "y_axis")

	if f.Type.Valid() {
		style, _ := d.object(obj, at, "style", false)
		f.Style = d.style(f.Type, style, join(at, "style"))
	}
	return f
}

func (d *decoder) axis(obj map[string]any, at, key string) *Axis {
	m, ok := d.object(obj, at, key, false)
	if !ok {
		return nil
	}
	ap := join(at, key)
	a := &Axis{}
	a.Min, _ = d.number(m, ap, "min", true)
	a.Max, _ = d.number(m, ap, "max", true)
	a.Increment, _ = d.number(m, ap, "increment", true)
	return a
}

// style decodes the type specific style keys, starting from the defaults.
// Unknown keys are ignored, since editors may store UI-only settings here.
func (d *decoder) style(t FieldType, m map[string]any, at string) Style {
	switch s := DefaultStyle(t).(type) {
	case TextStyle:
		d.setNumber(&s.FontSize, m, at, "font_size")
		d.setColor(&s.Color, m, at)
		d.setAlignment(&s.Alignment, m, at)
		d.setBool(&s.Bold, m, at, "bold")
		d.setString(&s.FontFamily, m, at, "font_family")
		d.setPadding(&s.Padding, m, at)
		return s
	case MultilineStyle:
		if v, ok := d.integer(m, at, "text_rows", false); ok {
			s.TextRows = v
		}
		d.setColor(&s.Color, m, at)
		d.setAlignment(&s.Alignment, m, at)
		d.setBool(&s.Bold, m, at, "bold")
		d.setString(&s.FontFamily, m, at, "font_family")
		d.setPadding(&s.Padding, m, at)
		return s
	case CheckboxStyle:
		if v, ok := d.str(m, at, "mark_type", false); ok {
			s.MarkType = MarkType(v)
		}
		d.setColor(&s.Color, m, at)
		d.setPadding(&s.Padding, m, at)
		return s
	case LineGraphStyle:
		d.setColor(&s.Color, m, at)
		d.setNumber(&s.LineWidth, m, at, "line_width")
		d.setBool(&s.ConnectPoints, m, at, "connect_points")
		d.setBool(&s.ShowDots, m, at, "show_dots")
		d.setNumber(&s.DotRadius, m, at, "dot_radius")
		return s
	case BarGraphStyle:
		d.setColor(&s.Color, m, at)
		d.setNumber(&s.BarWidth, m, at, "bar_width")
		return s
	case DotSeriesStyle:
		d.setColor(&s.Color, m, at)
		d.setNumber(&s.DotRadius, m, at, "dot_radius")
		d.setNumber(&s.LabelSize, m, at, "label_size")
		return s
	case BPLadderStyle:
		d.setColor(&s.Color, m, at)
		d.setNumber(&s.LineWidth, m, at, "line_width")
		d.setNumber(&s.MarkerSize, m, at, "marker_size")
		d.setBool(&s.ConnectPoints, m, at, "connect_points")
		d.setBool(&s.ShowRange, m, at, "show_range")
		return s
	}
	return nil
}

func (d *decoder) setNumber(dst *float64, m map[string]any, at, key string) {
	if v, ok := d.number(m, at, key, false); ok {
		*dst = v
	}
}

func (d *decoder) setBool(dst *bool, m map[string]any, at, key string) {
	if v, ok := d.boolean(m, at, key, false); ok {
		*dst = v
	}
}

func (d *decoder) setString(dst *string, m map[string]any, at, key string) {
	if v, ok := d.str(m, at, key, false); ok {
		*dst = v
	}
}

func (d *decoder) setAlignment(dst *Alignment, m map[string]any, at string) {
	if v, ok := d.str(m, at, "alignment", false); ok {
		*dst = Alignment(v)
	}
}

func (d *decoder) setColor(dst *Color, m map[string]any, at string) {
	s, ok := d.str(m, at, "color", false)
	if !ok {
		return
	}
	c, err := ParseColor(s)
	if err != nil {
		d.errorf(join(at, "color"), "%v", err)
		return
	}
	*dst = c
}

func (d *decoder) setPadding(dst *Padding, m map[string]any, at string) {
	pm, ok := d.object(m, at, "padding", false)
	if !ok {
		return
	}
	pp := join(at, "padding")
	d.setNumber(&dst.Top, pm, pp, "top")
	d.setNumber(&dst.Right, pm, pp, "right")
	d.setNumber(&dst.Bottom, pm, pp, "bottom")
	d.setNumber(&dst.Left, pm, pp, "left")
}

// lookup returns m[key], recording an issue if a required key is missing.
// A nil map behaves like an empty object.
func (d *decoder) lookup(m map[string]any, at, key string, required bool) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			d.errorf(join(at, key), "missing required key")
		}
		return nil, false
	}
	return v, true
}

func (d *decoder) object(m map[string]any, at, key string, required bool) (map[string]any, bool) {
	v, ok := d.lookup(m, at, key, required)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	if !ok {
		d.errorf(join(at, key), "must be an object")
		return nil, false
	}
	return obj, true
}

func (d *decoder) str(m map[string]any, at, key string, required bool) (string, bool) {
	v, ok := d.lookup(m, at, key, required)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		d.errorf(join(at, key), "must be a string")
		return "", false
	}
	return s, true
}

func (d *decoder) boolean(m map[string]any, at, key string, required bool) (bool, bool) {
	v, ok := d.lookup(m, at, key, required)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		d.errorf(join(at, key), "must be a boolean")
		return false, false
	}
	return b, true
}

func (d *decoder) number(m map[string]any, at, key string, required bool) (float64, bool) {
	v, ok := d.lookup(m, at, key, required)
	if !ok {
		return 0, false
	}
	x, ok := Number(v)
	if !ok {
		d.errorf(join(at, key), "must be a finite number")
		return 0, false
	}
	return x, true
}

func (d *decoder) integer(m map[string]any, at, key string, required bool) (int, bool) {
	x, ok := d.number(m, at, key, required)
	if !ok {
		return 0, false
	}
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		d.errorf(join(at, key), "must be an integer")
		return 0, false
	}
	return int(x), true
}

// Number converts a decoded JSON or YAML scalar to a float64.
// It accepts json.Number and all Go numeric types produced by the JSON
// and YAML decoders. Strings, booleans, NaN and infinities are rejected.
func Number(v any) (float64, bool) {
	var x float64
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		x = f
	case float64:
		x = v
	case float32:
		x = float64(v)
	case int:
		x = float64(v)
	case int64:
		x = float64(v)
	case uint64:
		x = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

func join(at, key string) string {
	if at == "" {
		return key
	}
	return at + "." + key
}
