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

// Package field draws the value of a single form field.
//
// There is one renderer per field type. Every renderer first decodes and
// maps all of its data, and only then draws, so that a value which is
// rejected never leaves a partially drawn field behind. Problems which only
// affect single points are returned as diagnostics; the rest of the field
// is still drawn.
package field

import (
	"encoding/json"
	"fmt"
	"strconv"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/fonts"
	"seehuhn.de/go/formfill/preset"
)

// Env holds the resources shared by all fields of one render pass.
// The caller owns Faces and closes it when the pass ends.
type Env struct {
	Faces *fonts.Faces
}

// Render draws value v of field f onto s.
//
// A value of the wrong shape is reported as an error wrapping
// [ErrMalformed], and nothing is drawn. Problems with individual points of
// a series are returned as diagnostics.
//
// If env or env.Faces is nil, faces from [fonts.Shared] are used for this
// call only and are closed before Render returns.
func Render(s canvas.Surface, f *preset.Field, v any, env *Env) ([]Diagnostic, error) {
	if env == nil || env.Faces == nil {
		faces := fonts.Shared().Faces()
		defer faces.Close()
		env = &Env{Faces: faces}
	}
	switch st := f.Style.(type) {
	case preset.TextStyle:
		return renderText(s, f, st, v, env)
	case preset.MultilineStyle:
		return renderMultiline(s, f, st, v, env)
	case preset.CheckboxStyle:
		return renderCheckbox(s, f, st, v)
	case preset.LineGraphStyle:
		return renderLineGraph(s, f, st, v)
	case preset.BarGraphStyle:
		return renderBarGraph(s, f, st, v)
	case preset.DotSeriesStyle:
		return renderDotSeries(s, f, st, v, env)
	case preset.BPLadderStyle:
		return renderBPLadder(s, f, st, v)
	}
	return nil, fmt.Errorf("field %q: no renderer for style %T", f.ID, f.Style)
}

// scalarText converts a string or number value to the text to draw.
func scalarText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	}
	return "", fmt.Errorf("expected a string, got %s: %w", describe(v), ErrMalformed)
}

// describe names the JSON type of a decoded value.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	}
	if _, ok := preset.Number(v); ok {
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}
