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

package field

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/formfill/canvas"
	"seehuhn.de/go/formfill/coord"
	"seehuhn.de/go/formfill/preset"
)

// Limits for the font size of multiline text, which is derived from the
// row height.
const (
	minMultilineSize = 6
	maxMultilineSize = 72
)

func renderText(s canvas.Surface, f *preset.Field, st preset.TextStyle, v any, env *Env) ([]Diagnostic, error) {
	text, err := scalarText(v)
	if err != nil {
		return nil, err
	}
	text = singleLine(norm.NFC.String(text))
	if text == "" {
		return nil, nil
	}

	inner := f.Bounds.Inset(st.Padding)
	face := env.Faces.Face(st.FontFamily, st.FontSize, st.Bold)
	ascent := float64(face.Metrics().Ascent) / 64
	x := alignX(face, text, inner, st.Alignment)
	dot := vec.Vec2{X: coord.Snap(x), Y: coord.Snap(inner.Y + ascent)}

	s.Text(text, face, dot, st.Color.NRGBA())
	return nil, nil
}

func renderMultiline(s canvas.Surface, f *preset.Field, st preset.MultilineStyle, v any, env *Env) ([]Diagnostic, error) {
	text, err := scalarText(v)
	if err != nil {
		return nil, err
	}
	text = norm.NFC.String(text)

	inner := f.Bounds.Inset(st.Padding)
	rows := max(st.TextRows, 1)
	rowHeight := inner.Height / float64(rows)
	size := math.Floor(rowHeight * 0.8)
	size = min(max(size, minMultilineSize), maxMultilineSize)

	face := env.Faces.Face(st.FontFamily, size, st.Bold)
	lines := wrap(face, text, inner.Width)

	var diags []Diagnostic
	if len(lines) > rows {
		diags = append(diags, Diagnostic{
			FieldID: f.ID,
			Kind:    ClampedValue,
			Point:   -1,
			Message: fmt.Sprintf("text needs %d rows, truncated to %d", len(lines), rows),
		})
		lines = lines[:rows]
	}

	ascent := float64(face.Metrics().Ascent) / 64
	col := st.Color.NRGBA()
	for i, line := range lines {
		if line == "" {
			continue
		}
		x := alignX(face, line, inner, st.Alignment)
		y := inner.Y + float64(i)*rowHeight + ascent
		s.Text(line, face, vec.Vec2{X: coord.Snap(x), Y: coord.Snap(y)}, col)
	}
	return diags, nil
}

// alignX returns the x coordinate of the text origin within r.
func alignX(face font.Face, text string, r preset.Rect, a preset.Alignment) float64 {
	w := float64(font.MeasureString(face, text)) / 64
	switch a {
	case preset.AlignCenter:
		return r.X + (r.Width-w)/2
	case preset.AlignRight:
		return r.X + r.Width - w
	default:
		return r.X
	}
}

// singleLine replaces line breaks and tabs by spaces.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', '\v', '\f':
			return ' '
		}
		return r
	}, s)
}

// wrap breaks text into lines no wider than width. Explicit line breaks
// start a new line; within a paragraph words are filled greedily. A word
// which is wider than width on its own gets a line of its own.
func wrap(face font.Face, text string, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := strings.Split(text, "\n")
	for len(paragraphs) > 0 && strings.TrimSpace(paragraphs[len(paragraphs)-1]) == "" {
		paragraphs = paragraphs[:len(paragraphs)-1]
	}

	space := float64(font.MeasureString(face, " ")) / 64
	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		curW := float64(font.MeasureString(face, cur)) / 64
		for _, w := range words[1:] {
			ww := float64(font.MeasureString(face, w)) / 64
			if curW+space+ww <= width {
				cur += " " + w
				curW += space + ww
				continue
			}
			lines = append(lines, cur)
			cur, curW = w, ww
		}
		lines = append(lines, cur)
	}
	return lines
}
