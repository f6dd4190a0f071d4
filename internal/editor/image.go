package editor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// ImageFromFile reads the header of a GIF, JPEG or PNG file and describes
// it as a recipe image. The pixel data is not loaded.
func ImageFromFile(path string) (domain.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Image{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.Image{}, fmt.Errorf("reading image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return domain.Image{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return domain.Image{
		Name:   filepath.Base(path),
		Type:   "image/" + format,
		Size:   info.Size(),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
