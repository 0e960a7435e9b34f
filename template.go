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

package formfill

import (
	"image"

	"seehuhn.de/go/formfill/imageio"
	"seehuhn.de/go/formfill/preset"
	"seehuhn.de/go/formfill/record"
)

// Template is a decoded form image which can be shared by many renders,
// also concurrently. Every render draws on its own copy.
type Template struct {
	img image.Image
}

// NewTemplate wraps an already decoded image.
// The image must not be modified while the template is in use.
func NewTemplate(img image.Image) *Template {
	return &Template{img: img}
}

// LoadTemplate reads a template image file.
func LoadTemplate(path string) (*Template, error) {
	img, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return &Template{img: img}, nil
}

// Image returns the template image.
func (t *Template) Image() image.Image {
	return t.img
}

// Render is like the package level [Render], using the template as base
// image.
func (t *Template) Render(p *preset.Preset, rec record.Record, opts *Options) (*image.RGBA, []Diagnostic, error) {
	return Render(p, rec, t.img, opts)
}
