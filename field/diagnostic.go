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
	"errors"
	"fmt"
)

// Kind classifies a non-fatal problem found while rendering a field.
type Kind int

// These are the diagnostic kinds.
const (
	// MissingMandatoryField means that the data record has no value for a
	// mandatory field. Nothing is drawn for the field.
	MissingMandatoryField Kind = iota + 1

	// MalformedDataPoint means that a value, or a single point of a
	// series, has the wrong shape. A malformed point is skipped; a
	// malformed value causes the whole field to be skipped.
	MalformedDataPoint

	// ClampedValue means that a value outside the axis range was drawn at
	// the nearest end of the axis.
	ClampedValue

	// RenderError means that drawing the field failed for a reason other
	// than the shape of the data.
	RenderError
)

func (k Kind) String() string {
	switch k {
	case MissingMandatoryField:
		return "missing mandatory field"
	case MalformedDataPoint:
		return "malformed data point"
	case ClampedValue:
		return "clamped value"
	case RenderError:
		return "render error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic reports a non-fatal problem with one field.
type Diagnostic struct {
	FieldID string
	Kind    Kind
	Point   int // index of the point within the series, or -1
	Message string
}

func (d Diagnostic) String() string {
	if d.Point >= 0 {
		return fmt.Sprintf("%s[%d]: %s: %s", d.FieldID, d.Point, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.FieldID, d.Kind, d.Message)
}

// ErrMalformed is wrapped by errors which reject the value of a field as a
// whole, for example a string where a list of points is expected.
var ErrMalformed = errors.New("malformed value")
