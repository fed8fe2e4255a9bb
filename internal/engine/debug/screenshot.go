package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Screenshots writes timestamped PNG captures of the viewer.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots returns a writer that stores captures in dir.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05"))
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}

// FromPixels stores bottom-up RGBA pixels as read back from OpenGL. Rows are
// flipped so the image is upright.
func (s *Screenshots) FromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", errors.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return s.FromImage(img)
}

// FromImage stores img.
func (s *Screenshots) FromImage(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", errors.Wrap(err, "creating screenshot dir")
		}
	}

	name := s.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", errors.Wrap(err, "creating screenshot")
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", errors.Wrap(err, "encoding screenshot")
	}
	return name, nil
}
