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

// Package fonts provides the font faces used for text fields.
//
// A [Cache] holds parsed fonts and is safe for concurrent use. Font faces
// keep per-face glyph buffers and must not be shared between goroutines,
// so every render pass obtains its own [Faces] from the cache.
//
// Two families are always available, backed by the embedded Go fonts:
// "default" (Go Regular / Go Bold) and "mono" (Go Mono / Go Mono Bold).
package fonts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Family names of the embedded fonts.
const (
	Default = "default"
	Mono    = "mono"
)

// Cache maps family names to parsed fonts.
type Cache struct {
	mu    sync.RWMutex
	fonts map[string]*opentype.Font // lower case name -> font
}

// New returns a cache which contains the embedded font families.
func New() *Cache {
	c := &Cache{fonts: make(map[string]*opentype.Font)}
	embedded := []struct {
		name string
		data []byte
	}{
		{Default, goregular.TTF},
		{Default + " bold", gobold.TTF},
		{Mono, gomono.TTF},
		{Mono + " bold", gomonobold.TTF},
	}
	for _, e := range embedded {
		// the embedded fonts are known to parse
		if err := c.LoadFontData(e.name, e.data); err != nil {
			panic(err)
		}
	}
	return c
}

var (
	defaultCache     *Cache
	defaultCacheOnce sync.Once
)

// Shared returns a process-wide cache containing only the embedded fonts.
func Shared() *Cache {
	defaultCacheOnce.Do(func() {
		defaultCache = New()
	})
	return defaultCache
}

// LoadFont reads a TrueType or OpenType font file and registers it under
// the given name, as well as under its internal family and full names.
func (c *Cache) LoadFont(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fonts: %w", err)
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("fonts: %s: file too large (%d bytes, max %d)", path, info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fonts: %w", err)
	}
	if err := c.LoadFontData(name, data); err != nil {
		return fmt.Errorf("fonts: %s: %w", path, err)
	}
	return nil
}

// LoadFontData registers a font from raw TrueType or OpenType data.
func (c *Cache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fonts[strings.ToLower(name)] = f
	c.registerNames(f)
	return nil
}

// LoadDir registers all .ttf, .otf, .ttc and .otc files found in dir and
// its subdirectories. Each font is registered under its file name without
// extension and under its internal names. Files which cannot be parsed are
// skipped; the number of registered files is returned.
func (c *Cache) LoadDir(dir string) (int, error) {
	return c.LoadFS(os.DirFS(dir))
}

// LoadFS is like [Cache.LoadDir], but reads from a file system.
func (c *Cache) LoadFS(fsys fs.FS) (int, error) {
	count := 0
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.Count(p, "/") >= maxFontScanDepth {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if ext != ".ttf" && ext != ".otf" && ext != ".ttc" && ext != ".otc" {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxFontFileSize {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil
		}
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
		if c.loadFile(base, ext, data) {
			count++
		}
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("fonts: %w", err)
	}
	return count, nil
}

func (c *Cache) loadFile(base, ext string, data []byte) bool {
	var all []*opentype.Font
	if ext == ".ttc" || ext == ".otc" {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return false
		}
		for i := range coll.NumFonts() {
			if f, err := coll.Font(i); err == nil {
				all = append(all, f)
			}
		}
	} else if f, err := opentype.Parse(data); err == nil {
		all = append(all, f)
	}
	if len(all) == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fonts[base] = all[0]
	for _, f := range all {
		c.registerNames(f)
	}
	return true
}

// registerNames registers f under its family and full names, unless these
// names are taken already. The caller must hold c.mu.
func (c *Cache) registerNames(f *opentype.Font) {
	for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDFull} {
		name, err := f.Name(nil, id)
		if err != nil || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, taken := c.fonts[key]; !taken {
			c.fonts[key] = f
		}
	}
}

// Has reports whether a font is registered under the given family name.
func (c *Cache) Has(family string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.fonts[strings.ToLower(family)]
	return ok
}

// Names returns all registered font names in sorted order.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.fonts))
	for name := range c.fonts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// find returns the font for a family, trying bold variants first if
// requested. Unknown families resolve to the default family.
func (c *Cache) find(family string, bold bool) *opentype.Font {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, name := range []string{strings.ToLower(family), Default} {
		if bold {
			for _, suffix := range []string{" bold", "-bold", "bd", "b"} {
				if f, ok := c.fonts[name+suffix]; ok {
					return f
				}
			}
		}
		if f, ok := c.fonts[name]; ok {
			return f
		}
	}
	return nil
}

// Faces returns a face cache for a single render pass.
func (c *Cache) Faces() *Faces {
	return &Faces{cache: c, faces: make(map[faceKey]font.Face)}
}

type faceKey struct {
	family string
	size   float64
	bold   bool
}

// Faces creates and caches font faces. It is not safe for concurrent use.
type Faces struct {
	cache *Cache
	faces map[faceKey]font.Face
}

// Face returns a face for the given family, pixel size and weight.
// Unknown families fall back to the default family; if no font can be
// used at all, a fixed-size bitmap face is returned.
func (f *Faces) Face(family string, size float64, bold bool) font.Face {
	key := faceKey{family: strings.ToLower(family), size: size, bold: bold}
	if face, ok := f.faces[key]; ok {
		return face
	}

	var face font.Face = basicfont.Face7x13
	if fnt := f.cache.find(family, bold); fnt != nil && size > 0 {
		// one pixel per point
		ff, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err == nil {
			face = ff
		}
	}
	f.faces[key] = face
	return face
}

// Close releases all faces.
func (f *Faces) Close() error {
	for key, face := range f.faces {
		face.Close()
		delete(f.faces, key)
	}
	return nil
}

const (
	// maxFontScanDepth limits recursion when scanning font directories.
	maxFontScanDepth = 3

	// maxFontFileSize limits the size of font files loaded into memory.
	maxFontFileSize = 20 << 20
)
