package terrain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberfall-mod/emberfall/internal/engine/grid"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// tilesetFile mirrors the on-disk YAML layout of a tileset definition.
type tilesetFile struct {
	Name string `yaml:"name"`
	Grid struct {
		Type     string `yaml:"type"`
		TileSize struct {
			Width  float32 `yaml:"width"`
			Height float32 `yaml:"height"`
		} `yaml:"tile_size"`
	} `yaml:"grid"`
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	ID   uint16 `yaml:"id"`
	Size struct {
		X int `yaml:"x"`
		Y int `yaml:"y"`
	} `yaml:"size"`
	Images  []string    `yaml:"images"`
	Palette string      `yaml:"palette"`
	Tiles   []tileEntry `yaml:"tiles"`
}

type tileEntry struct {
	Index    int     `yaml:"index"`
	Height   float32 `yaml:"height"`
	Category string  `yaml:"category"`
}

// Parse builds a TileSet from YAML tileset data.
func Parse(data []byte) (*TileSet, error) {
	var f tilesetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tileset: %w", err)
	}

	gridType, err := grid.ParseType(f.Grid.Type)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", f.Name, err)
	}
	if f.Grid.TileSize.Width <= 0 || f.Grid.TileSize.Height <= 0 {
		return nil, fmt.Errorf("tileset %s: invalid tile size %vx%v",
			f.Name, f.Grid.TileSize.Width, f.Grid.TileSize.Height)
	}
	spec := grid.Spec{
		Type:     gridType,
		TileSize: geom.Vec2{X: f.Grid.TileSize.Width, Y: f.Grid.TileSize.Height},
	}

	templates := make([]*TemplateInfo, 0, len(f.Templates))
	for _, e := range f.Templates {
		t, err := e.build()
		if err != nil {
			return nil, fmt.Errorf("tileset %s: %w", f.Name, err)
		}
		templates = append(templates, t)
	}

	return NewTileSet(f.Name, spec, templates)
}

// LoadFile reads and parses a tileset definition from disk.
func LoadFile(path string) (*TileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset file: %w", err)
	}
	return Parse(data)
}

func (e templateEntry) build() (*TemplateInfo, error) {
	count := e.Size.X * e.Size.Y
	if count <= 0 {
		return nil, fmt.Errorf("template %d: invalid size %dx%d", e.ID, e.Size.X, e.Size.Y)
	}

	// Only listed indexes get tile info; templates are allowed to be sparse.
	tiles := make([]*TileInfo, count)
	for _, te := range e.Tiles {
		if te.Index < 0 || te.Index >= count {
			return nil, fmt.Errorf("template %d: tile index %d outside %dx%d template",
				e.ID, te.Index, e.Size.X, e.Size.Y)
		}
		if tiles[te.Index] != nil {
			return nil, fmt.Errorf("template %d: duplicate tile index %d", e.ID, te.Index)
		}
		tiles[te.Index] = &TileInfo{Height: te.Height, Category: te.Category}
	}

	return NewTemplateInfo(e.ID, e.Size.X, e.Size.Y, e.Images, e.Palette, tiles)
}
