// Package texture loads road surface images into RGBA pixels ready for GPU
// upload.
package texture

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// TGA decoding errors.
var (
	ErrTGATruncated   = errors.New("tga data truncated")
	ErrTGAUnsupported = errors.New("unsupported tga format")
)

// tgaReader walks the pixel stream in file order and writes into dst,
// flipping rows unless the image is stored top to bottom.
type tgaReader struct {
	dst         *image.RGBA
	data        []byte
	pos         int
	bpp         int
	topToBottom bool
}

func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, false
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, true
}

func (r *tgaReader) set(i int, c color.RGBA) {
	w, h := r.dst.Rect.Dx(), r.dst.Rect.Dy()
	x, y := i%w, i/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.dst.SetRGBA(x, y, c)
}

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// data with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.Wrap(ErrTGAUnsupported, "color-mapped")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, errors.Wrapf(ErrTGAUnsupported, "image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, errors.Wrapf(ErrTGAUnsupported, "bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	r := &tgaReader{
		dst:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	count := width * height
	if imageType == TGATypeUncompressed {
		if len(r.data) < count*r.bpp {
			return nil, ErrTGATruncated
		}
		for i := 0; i < count; i++ {
			c, _ := r.next()
			r.set(i, c)
		}
		return r.dst, nil
	}

	if err := r.decodeRLE(count); err != nil {
		return nil, err
	}
	return r.dst, nil
}

// decodeRLE expands run-length and raw packets until count pixels are set.
func (r *tgaReader) decodeRLE(count int) error {
	i := 0
	for i < count {
		if r.pos >= len(r.data) {
			return errors.Wrapf(ErrTGATruncated, "rle stream ended at pixel %d of %d", i, count)
		}
		packet := r.data[r.pos]
		r.pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				return ErrTGATruncated
			}
			for ; n > 0 && i < count; n-- {
				r.set(i, c)
				i++
			}
			continue
		}

		for ; n > 0 && i < count; n-- {
			c, ok := r.next()
			if !ok {
				return ErrTGATruncated
			}
			r.set(i, c)
			i++
		}
	}
	return nil
}
