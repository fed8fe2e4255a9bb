package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register decoder
)

// Load reads an image file into RGBA pixels. TGA is chosen by extension
// since it has no magic number; PNG, JPEG and BMP are sniffed.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading texture")
	}

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := DecodeTGA(data)
		return img, errors.Wrapf(err, "decoding %s", path)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return ToRGBA(img), nil
}

// Resolve makes a texture name relative to dir unless it is already absolute.
func Resolve(dir, name string) string {
	if name == "" || filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// ToRGBA converts any image to *image.RGBA with its origin at zero.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Checker returns a size x size checkerboard with cells of cell pixels,
// used when a material texture is missing.
func Checker(size, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cell <= 0 {
		cell = size
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Fallback colors for the two road surfaces.
var (
	AsphaltDark  = color.RGBA{R: 60, G: 60, B: 64, A: 255}
	AsphaltLight = color.RGBA{R: 90, G: 90, B: 96, A: 255}
	DirtDark     = color.RGBA{R: 92, G: 70, B: 48, A: 255}
	DirtLight    = color.RGBA{R: 120, G: 94, B: 66, A: 255}
)
