package tilemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
)

// mapFile mirrors the on-disk YAML layout of a map. Cells not listed get the
// default tile at height zero.
type mapFile struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Default struct {
		Template uint16 `yaml:"template"`
		Index    uint8  `yaml:"index"`
	} `yaml:"default"`
	Cells []struct {
		X        int    `yaml:"x"`
		Y        int    `yaml:"y"`
		Template uint16 `yaml:"template"`
		Index    uint8  `yaml:"index"`
		Height   uint8  `yaml:"height"`
	} `yaml:"cells"`
}

// Parse builds a Map from YAML map data, using the grid spec of the tileset
// the map was authored for.
func Parse(data []byte, ts *terrain.TileSet) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", f.Width, f.Height)
	}

	m := New(f.Width, f.Height, ts.Grid)
	def := terrain.TerrainTile{Template: f.Default.Template, Index: f.Default.Index}
	for i := range m.tiles {
		m.tiles[i] = def
	}

	for _, c := range f.Cells {
		cell := Cell{X: c.X, Y: c.Y}
		if !m.Contains(cell) {
			return nil, fmt.Errorf("map cell (%d, %d) outside %dx%d map", c.X, c.Y, f.Width, f.Height)
		}
		m.tiles[m.index(cell)] = terrain.TerrainTile{Template: c.Template, Index: c.Index}
		m.heights[m.index(cell)] = c.Height
	}

	return m, nil
}

// LoadFile reads and parses a map from disk.
func LoadFile(path string, ts *terrain.TileSet) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return Parse(data, ts)
}
