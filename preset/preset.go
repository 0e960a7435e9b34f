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

// Package preset describes where and how data is drawn onto a scanned form.
//
// A [Preset] is produced once by an external editor and is treated as
// immutable input to every render. [Parse], [ParseYAML] and [Load] check a
// serialized preset exhaustively: all problems are reported together in a
// [*ValidationError], so that a caller gets a complete report before any
// drawing is attempted.
package preset

import "slices"

// Preset is the field mapping for one form template.
type Preset struct {
	FormName        string
	FormImage       string
	ImageDimensions Size
	Fields          []Field
}

// Field returns the field with the given id.
func (p *Preset) Field(id string) (*Field, bool) {
	for i := range p.Fields {
		if p.Fields[i].ID == id {
			return &p.Fields[i], true
		}
	}
	return nil, false
}

// FieldIDs returns the field ids in declaration order.
func (p *Preset) FieldIDs() []string {
	ids := make([]string, len(p.Fields))
	for i := range p.Fields {
		ids[i] = p.Fields[i].ID
	}
	return ids
}

// Mandatory returns the ids of all mandatory fields, in declaration order.
func (p *Preset) Mandatory() []string {
	var ids []string
	for i := range p.Fields {
		if p.Fields[i].Mandatory {
			ids = append(ids, p.Fields[i].ID)
		}
	}
	return ids
}

// Size is the pixel size of the form image.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Field is one rectangular area of the form which receives one data value.
type Field struct {
	ID          string
	Description string
	Type        FieldType
	Mandatory   bool
	Bounds      Rect

	// DataPath optionally gives a dotted path into the data record.
	// If empty, the value is looked up under ID.
	DataPath string

	Style Style

	XAxis *Axis // only for graph types
	YAxis *Axis // only for line_graph, bar_graph and bp_ladder
}

// Key returns the data record key for the field.
func (f *Field) Key() string {
	if f.DataPath != "" {
		return f.DataPath
	}
	return f.ID
}

// Rect is a rectangle in image pixel coordinates.
// The origin is the top-left corner of the image, y grows downwards.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Inset shrinks the rectangle by the given padding.
// Width and height never become negative.
func (r Rect) Inset(p Padding) Rect {
	return Rect{
		X:      r.X + p.Left,
		Y:      r.Y + p.Top,
		Width:  max(0, r.Width-p.Left-p.Right),
		Height: max(0, r.Height-p.Top-p.Bottom),
	}
}

// Contains reports whether r lies inside s.
func (r Rect) Contains(s Rect) bool {
	return s.X >= r.X && s.Y >= r.Y && s.Right() <= r.Right() && s.Bottom() <= r.Bottom()
}

// Axis configures one data dimension of a graph field.
type Axis struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Increment float64 `json:"increment"`
}

// FieldType identifies the kind of data a field shows.
type FieldType string

// These are the supported field types.
const (
	Text          FieldType = "text"
	MultilineText FieldType = "multiline_text"
	Checkbox      FieldType = "checkbox"
	LineGraph     FieldType = "line_graph"
	BarGraph      FieldType = "bar_graph"
	DotSeries     FieldType = "dot_series"
	BPLadder      FieldType = "bp_ladder"
)

var allTypes = []FieldType{
	Text, MultilineText, Checkbox, LineGraph, BarGraph, DotSeries, BPLadder,
}

// FieldTypes returns all supported field types.
func FieldTypes() []FieldType {
	return slices.Clone(allTypes)
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	return slices.Contains(allTypes, t)
}

// NeedsXAxis reports whether fields of this type map time to x.
func (t FieldType) NeedsXAxis() bool {
	switch t {
	case LineGraph, BarGraph, DotSeries, BPLadder:
		return true
	}
	return false
}

// NeedsYAxis reports whether fields of this type map values to y.
func (t FieldType) NeedsYAxis() bool {
	switch t {
	case LineGraph, BarGraph, BPLadder:
		return true
	}
	return false
}
