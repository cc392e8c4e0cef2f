// Package atlas resolves image names and frame indexes to sprite regions on
// preloaded sprite sheets.
package atlas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// MissingSheet is the sheet index of the reserved missing-placeholder sprite.
// Renderers draw it as a flat error color instead of sampling a sheet.
const MissingSheet = -1

// Sprite is a resolved renderable image region: a sheet reference plus the
// pixel rectangle, intrinsic draw offset and size of one frame.
type Sprite struct {
	Image  string
	Frame  int
	Sheet  int
	Region geom.Rect
	Offset geom.Vec2
	Size   geom.Vec2
}

// Provider supplies sprites by image name and frame index. The tile cache is
// written against this interface so tests can substitute a synthetic atlas.
type Provider interface {
	// HasImage reports whether the named image exists at all.
	HasImage(name string) bool

	// Sprite returns the sprite for the given image and frame, or ok=false
	// if the image exists but lacks that frame.
	Sprite(name string, frame int) (Sprite, bool)

	// Missing returns the shared missing-placeholder sprite.
	Missing() Sprite
}

// Atlas is a manifest-backed Provider. Built once at load time, read-only
// afterward.
type Atlas struct {
	sheets  []string // sheet image paths, indexed by Sprite.Sheet
	images  map[string][]Sprite
	missing Sprite
}

var _ Provider = (*Atlas)(nil)

// manifestFile mirrors the on-disk YAML layout of an atlas manifest.
type manifestFile struct {
	Sheets      []string `yaml:"sheets"`
	Placeholder struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"placeholder"`
	Images []struct {
		Name   string `yaml:"name"`
		Sheet  int    `yaml:"sheet"`
		Frames []struct {
			X       float32 `yaml:"x"`
			Y       float32 `yaml:"y"`
			W       float32 `yaml:"w"`
			H       float32 `yaml:"h"`
			OffsetX float32 `yaml:"offset_x"`
			OffsetY float32 `yaml:"offset_y"`
		} `yaml:"frames"`
	} `yaml:"images"`
}

// Parse builds an Atlas from YAML manifest data.
func Parse(data []byte) (*Atlas, error) {
	var f manifestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing atlas manifest: %w", err)
	}

	placeholder := geom.Vec2{X: f.Placeholder.Width, Y: f.Placeholder.Height}
	if placeholder.X <= 0 || placeholder.Y <= 0 {
		placeholder = geom.Vec2{X: 32, Y: 32}
	}

	a := &Atlas{
		sheets: f.Sheets,
		images: make(map[string][]Sprite, len(f.Images)),
		missing: Sprite{
			Image: "missing",
			Sheet: MissingSheet,
			Size:  placeholder,
		},
	}

	for _, img := range f.Images {
		if img.Name == "" {
			return nil, fmt.Errorf("atlas manifest: image with empty name")
		}
		if _, dup := a.images[img.Name]; dup {
			return nil, fmt.Errorf("atlas manifest: duplicate image %q", img.Name)
		}
		if img.Sheet < 0 || img.Sheet >= len(f.Sheets) {
			return nil, fmt.Errorf("atlas manifest: image %q references sheet %d of %d",
				img.Name, img.Sheet, len(f.Sheets))
		}

		frames := make([]Sprite, len(img.Frames))
		for i, fr := range img.Frames {
			if fr.W <= 0 || fr.H <= 0 {
				return nil, fmt.Errorf("atlas manifest: image %q frame %d has invalid size %vx%v",
					img.Name, i, fr.W, fr.H)
			}
			frames[i] = Sprite{
				Image:  img.Name,
				Frame:  i,
				Sheet:  img.Sheet,
				Region: geom.NewRect(geom.Vec2{X: fr.X, Y: fr.Y}, geom.Vec2{X: fr.W, Y: fr.H}),
				Offset: geom.Vec2{X: fr.OffsetX, Y: fr.OffsetY},
				Size:   geom.Vec2{X: fr.W, Y: fr.H},
			}
		}
		a.images[img.Name] = frames
	}

	return a, nil
}

// LoadFile reads and parses an atlas manifest from disk.
func LoadFile(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading atlas manifest: %w", err)
	}
	return Parse(data)
}

// HasImage reports whether the named image is present in the manifest.
func (a *Atlas) HasImage(name string) bool {
	_, ok := a.images[name]
	return ok
}

// Sprite returns the sprite for the given image and frame.
func (a *Atlas) Sprite(name string, frame int) (Sprite, bool) {
	frames, ok := a.images[name]
	if !ok || frame < 0 || frame >= len(frames) {
		return Sprite{}, false
	}
	return frames[frame], true
}

// Missing returns the shared missing-placeholder sprite.
func (a *Atlas) Missing() Sprite {
	return a.missing
}

// SheetPaths returns the sheet image paths in Sprite.Sheet order.
func (a *Atlas) SheetPaths() []string {
	return a.sheets
}
