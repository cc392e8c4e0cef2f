package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// LoadSheets decodes every sheet image referenced by the manifest, resolving
// relative paths against dir. Only the render path needs pixel data;
// validation works from the manifest alone.
func LoadSheets(a *Atlas, dir string) ([]*image.RGBA, error) {
	sheets := make([]*image.RGBA, len(a.sheets))
	for i, path := range a.sheets {
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		img, err := loadPNG(path)
		if err != nil {
			return nil, fmt.Errorf("sheet %d: %w", i, err)
		}
		sheets[i] = img
	}
	return sheets, nil
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
