package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"nebula-wallpaper/internal/utils"
)

// ExportPNG writes img to path, creating parent directories.
func ExportPNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	utils.Info("Saved %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
