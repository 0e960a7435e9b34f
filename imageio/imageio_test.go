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

package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := range 6 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: uint8(30 * x), G: uint8(40 * y), B: 128, A: 255})
		}
	}
	return img
}

func TestRoundTripLossless(t *testing.T) {
	src := testImage()
	for _, f := range []Format{PNG, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, f, 0); err != nil {
				t.Fatal(err)
			}
			img, got, err := Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if got != f {
				t.Errorf("decoded as %q", got)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds %v, want %v", img.Bounds(), src.Bounds())
			}
			for y := range 6 {
				for x := range 8 {
					r1, g1, b1, a1 := img.At(x, y).RGBA()
					r2, g2, b2, a2 := src.At(x, y).RGBA()
					if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 || a1>>8 != a2>>8 {
						t.Fatalf("pixel (%d,%d) changed", x, y)
					}
				}
			}
		})
	}
}

func TestJPEGFlattensTransparency(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16)) // fully transparent
	var buf bytes.Buffer
	if err := Encode(&buf, img, JPEG, 95); err != nil {
		t.Fatal(err)
	}
	out, f, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if f != JPEG {
		t.Errorf("decoded as %q", f)
	}
	r, g, b, _ := out.At(8, 8).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("transparent area written as (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.PNG":      PNG,
		"scan.jpg":   JPEG,
		"scan.jpeg":  JPEG,
		"x/form.tif": TIFF,
		"form.webp":  WebP,
	} {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("%s: got %q %v, want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("form.pdf"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("pdf: got %v, want ErrUnsupported", err)
	}
	if err := Encode(&bytes.Buffer{}, testImage(), WebP, 0); !errors.Is(err, ErrUnsupported) {
		t.Errorf("webp encode: got %v, want ErrUnsupported", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, testImage(), 0); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("loaded image has bounds %v", img.Bounds())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file was loaded")
	}
}
