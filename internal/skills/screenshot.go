package skills

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
)

// Capturer grabs the primary display.
type Capturer interface {
	Capture() (image.Image, error)
}

type Screenshot struct {
	Capturer Capturer
	Dir      string
	Now      func() time.Time
}

func (s *Screenshot) Handle(context.Context, Request) (string, error) {
	const apology = "Sorry, I couldn't take a screenshot"

	img, err := s.Capturer.Capture()
	if err != nil {
		return "", fail(KindUnavailable, apology, err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	name := fmt.Sprintf("screenshot_%d.png", now().Unix())
	path := name
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fail(KindUnavailable, apology, err)
		}
		path = filepath.Join(s.Dir, name)
	}

	if err := writePNG(path, img); err != nil {
		return "", fail(KindUnavailable, apology, err)
	}
	return "Screenshot saved as " + name, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// Display captures the first active display.
type Display struct{}

func (Display) Capture() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}
	return screenshot.CaptureRect(screenshot.GetDisplayBounds(0))
}
