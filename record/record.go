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

// Package record reads the data records which are drawn onto a form.
//
// A record maps field ids, or dotted data paths, to values. JSON numbers
// are kept as [json.Number]; YAML values keep the types chosen by the YAML
// decoder. The renderers accept both.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/formfill/preset"
)

// Record is the data for one rendered document.
type Record map[string]any

// ErrNotObject is returned when the top level of a record file is not an
// object.
var ErrNotObject = errors.New("record is not an object")

// Load reads a record file. Files ending in ".yaml" or ".yml" are decoded
// as YAML, everything else as JSON.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

// LoadFS is like [Load], but reads the file from fsys.
func LoadFS(fsys fs.FS, path string) (Record, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("record: read %s: %w", path, err)
	}
	return parseFile(data, path)
}

func parseFile(data []byte, path string) (Record, error) {
	var r Record
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		r, err = ParseYAML(data)
	default:
		r, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("record: %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a JSON record.
func Parse(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the record")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// ParseYAML decodes a YAML record.
func ParseYAML(data []byte) (Record, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	obj, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// normalize converts maps with non-string keys, which YAML allows, into
// string keyed maps.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, x := range v {
			v[k] = normalize(x)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, x := range v {
			m[fmt.Sprint(k)] = normalize(x)
		}
		return m
	case []any:
		for i, x := range v {
			v[i] = normalize(x)
		}
		return v
	}
	return v
}

// Lookup returns the value for field f.
//
// The field id is tried first as a top level key. Otherwise the data path
// of the field, with prefix prepended if it is non-empty, is resolved by
// [Record.Get]. A null value counts as absent.
func (r Record) Lookup(f *preset.Field, prefix string) (any, bool) {
	if v, ok := r[f.ID]; ok && v != nil {
		return v, true
	}
	path := f.Key()
	if prefix != "" {
		path = strings.TrimSuffix(prefix, ".") + "." + path
	}
	return r.Get(path)
}

// Get resolves a dotted path like "vitals.heart_rate" or "readings.0.value".
// Numeric path elements index arrays. A null value counts as absent.
func (r Record) Get(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		switch c := cur.(type) {
		case map[string]any:
			cur = c[key]
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			cur = c[idx]
		default:
			return nil, false
		}
		if cur == nil {
			return nil, false
		}
	}
	return cur, true
}
