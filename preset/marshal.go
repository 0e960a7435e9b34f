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

import "encoding/json"

// Marshal encodes a preset in the JSON preset format.
// All style keys are written explicitly, so that Parse(Marshal(p))
// reproduces p exactly.
func Marshal(p *Preset) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

type wirePreset struct {
	FormName        string      `json:"form_name"`
	FormImage       string      `json:"form_image"`
	ImageDimensions Size        `json:"image_dimensions"`
	Fields          []wireField `json:"fields"`
}

type wireField struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Type        FieldType      `json:"type"`
	Mandatory   bool           `json:"mandatory"`
	Bounds      Rect           `json:"bounds"`
	DataPath    string         `json:"data_path,omitempty"`
	Style       map[string]any `json:"style"`
	XAxis       *Axis          `json:"x_axis,omitempty"`
	YAxis       *Axis          `json:"y_axis,omitempty"`
}

// MarshalJSON implements the [json.Marshaler] interface.
func (p *Preset) MarshalJSON() ([]byte, error) {
	w := wirePreset{
		FormName:        p.FormName,
		FormImage:       p.FormImage,
		ImageDimensions: p.ImageDimensions,
		Fields:          make([]wireField, len(p.Fields)),
	}
	for i := range p.Fields {
		f := &p.Fields[i]
		w.Fields[i] = wireField{
			ID:          f.ID,
			Description: f.Description,
			Type:        f.Type,
			Mandatory:   f.Mandatory,
			Bounds:      f.Bounds,
			DataPath:    f.DataPath,
			Style:       styleMap(f.Style),
			XAxis:       f.XAxis,
			YAxis:       f.YAxis,
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// The input is fully validated, see [Parse].
func (p *Preset) UnmarshalJSON(data []byte) error {
	q, err := Parse(data)
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

func styleMap(s Style) map[string]any {
	padding := func(p Padding) map[string]any {
		return map[string]any{"top": p.Top, "right": p.Right, "bottom": p.Bottom, "left": p.Left}
	}

	switch s := s.(type) {
	case TextStyle:
		return map[string]any{
			"font_size":   s.FontSize,
			"color":       s.Color.String(),
			"alignment":   s.Alignment,
			"bold":        s.Bold,
			"font_family": s.FontFamily,
			"padding":     padding(s.Padding),
		}
	case MultilineStyle:
		return map[string]any{
			"text_rows":   s.TextRows,
			"color":       s.Color.String(),
			"alignment":   s.Alignment,
			"bold":        s.Bold,
			"font_family": s.FontFamily,
			"padding":     padding(s.Padding),
		}
	case CheckboxStyle:
		return map[string]any{
			"mark_type": s.MarkType,
			"color":     s.Color.String(),
			"padding":   padding(s.Padding),
		}
	case LineGraphStyle:
		return map[string]any{
			"color":          s.Color.String(),
			"line_width":     s.LineWidth,
			"connect_points": s.ConnectPoints,
			"show_dots":      s.ShowDots,
			"dot_radius":     s.DotRadius,
		}
	case BarGraphStyle:
		return map[string]any{
			"color":     s.Color.String(),
			"bar_width": s.BarWidth,
		}
	case DotSeriesStyle:
		return map[string]any{
			"color":      s.Color.String(),
			"dot_radius": s.DotRadius,
			"label_size": s.LabelSize,
		}
	case BPLadderStyle:
		return map[string]any{
			"color":          s.Color.String(),
			"line_width":     s.LineWidth,
			"marker_size":    s.MarkerSize,
			"connect_points": s.ConnectPoints,
			"show_range":     s.ShowRange,
		}
	}
	return map[string]any{}
}
