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
	"image/color"
	"strconv"
	"strings"
)

// Style holds the type specific drawing parameters of a field.
// The concrete type always matches the field type:
//
//	text           -> TextStyle
//	multiline_text -> MultilineStyle
//	checkbox       -> CheckboxStyle
//	line_graph     -> LineGraphStyle
//	bar_graph      -> BarGraphStyle
//	dot_series     -> DotSeriesStyle
//	bp_ladder      -> BPLadderStyle
type Style interface {
	// FieldType returns the field type this style belongs to.
	FieldType() FieldType
	isStyle()
}

// TextStyle is the style of a single line text field.
type TextStyle struct {
	FontSize   float64
	Color      Color
	Alignment  Alignment
	Bold       bool
	FontFamily string
	Padding    Padding
}

// MultilineStyle is the style of a word-wrapped text field.
// The font size is derived from the row height.
type MultilineStyle struct {
	TextRows   int
	Color      Color
	Alignment  Alignment
	Bold       bool
	FontFamily string
	Padding    Padding
}

// CheckboxStyle is the style of a checkbox field.
type CheckboxStyle struct {
	MarkType MarkType
	Color    Color
	Padding  Padding
}

// LineGraphStyle is the style of a line graph.
type LineGraphStyle struct {
	Color         Color
	LineWidth     float64
	ConnectPoints bool
	ShowDots      bool
	DotRadius     float64
}

// BarGraphStyle is the style of a bar graph.
type BarGraphStyle struct {
	Color    Color
	BarWidth float64
}

// DotSeriesStyle is the style of a dot series.
type DotSeriesStyle struct {
	Color     Color
	DotRadius float64
	LabelSize float64
}

// BPLadderStyle is the style of a blood pressure ladder.
type BPLadderStyle struct {
	Color         Color
	LineWidth     float64
	MarkerSize    float64
	ConnectPoints bool
	ShowRange     bool // vertical line from systolic to diastolic
}

func (TextStyle) FieldType() FieldType      { return Text }
func (MultilineStyle) FieldType() FieldType { return MultilineText }
func (CheckboxStyle) FieldType() FieldType  { return Checkbox }
func (LineGraphStyle) FieldType() FieldType { return LineGraph }
func (BarGraphStyle) FieldType() FieldType  { return BarGraph }
func (DotSeriesStyle) FieldType() FieldType { return DotSeries }
func (BPLadderStyle) FieldType() FieldType  { return BPLadder }

func (TextStyle) isStyle()      {}
func (MultilineStyle) isStyle() {}
func (CheckboxStyle) isStyle()  {}
func (LineGraphStyle) isStyle() {}
func (BarGraphStyle) isStyle()  {}
func (DotSeriesStyle) isStyle() {}
func (BPLadderStyle) isStyle()  {}

// DefaultStyle returns the style used for a field of type t
// when the preset does not specify any style keys.
func DefaultStyle(t FieldType) Style {
	switch t {
	case Text:
		return TextStyle{FontSize: 12, Color: Black, Alignment: AlignLeft, FontFamily: DefaultFamily}
	case MultilineText:
		return MultilineStyle{TextRows: 3, Color: Black, Alignment: AlignLeft, FontFamily: DefaultFamily}
	case Checkbox:
		return CheckboxStyle{MarkType: MarkX, Color: Black}
	case LineGraph:
		return LineGraphStyle{Color: Red, LineWidth: 2, ConnectPoints: true, ShowDots: true, DotRadius: 3}
	case BarGraph:
		return BarGraphStyle{Color: Blue, BarWidth: 5}
	case DotSeries:
		return DotSeriesStyle{Color: Black, DotRadius: 3, LabelSize: 8}
	case BPLadder:
		return BPLadderStyle{Color: Red, LineWidth: 2, MarkerSize: 4, ConnectPoints: true}
	}
	return nil
}

// DefaultFamily is the font family used when a text style names none.
const DefaultFamily = "default"

// Alignment is the horizontal anchor of text within the field bounds.
type Alignment string

// These are the supported text alignments.
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Valid reports whether a is a supported alignment.
func (a Alignment) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

// MarkType selects the mark drawn into a checked checkbox.
type MarkType string

// These are the supported checkbox marks.
const (
	MarkX     MarkType = "x"
	MarkCheck MarkType = "check"
	MarkFill  MarkType = "fill"
)

// Valid reports whether m is a supported mark type.
func (m MarkType) Valid() bool {
	return m == MarkX || m == MarkCheck || m == MarkFill
}

// Padding shrinks the drawing area inside the field bounds.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Color is a non-premultiplied sRGB colour.
type Color color.NRGBA

// Commonly used colours.
var (
	Black = Color{A: 0xFF}
	Red   = Color{R: 0xFF, A: 0xFF}
	Blue  = Color{B: 0xFF, A: 0xFF}
)

// ParseColor parses a colour in the form "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("invalid colour %q, want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q, want #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// String returns the colour in "#RRGGBB" form, or "#RRGGBBAA" if the
// colour is not opaque.
func (c Color) String() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// NRGBA converts c to the standard library colour type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}
