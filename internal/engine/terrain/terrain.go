// Package terrain holds the tileset rule data: templates, per-tile info and
// the registry the renderer resolves against. Loaded once per map, read-only
// afterward.
package terrain

import (
	"fmt"
	"sort"

	"github.com/emberfall-mod/emberfall/internal/engine/grid"
)

// TerrainTile identifies one cell within a template. Immutable value type.
type TerrainTile struct {
	Template uint16
	Index    uint8
}

// String returns "template.index", the form used in map files and logs.
func (t TerrainTile) String() string {
	return fmt.Sprintf("%d.%d", t.Template, t.Index)
}

// TileInfo holds the rule-defined properties of a single tile within a
// template. Templates may be sparse: cells without info have no TileInfo.
type TileInfo struct {
	Height   float32
	Category string
}

// TemplateInfo describes one terrain template: a fixed-size arrangement of
// tiles sharing one or more source images ("variants").
type TemplateInfo struct {
	ID      uint16
	SizeX   int
	SizeY   int
	Images  []string // variant image names, at least one
	Palette string   // optional palette override

	tiles []*TileInfo // indexed row-major, nil for undefined cells
}

// NewTemplateInfo builds a template. tiles is indexed row-major over
// sizeX*sizeY cells; nil entries mark undefined cells.
func NewTemplateInfo(id uint16, sizeX, sizeY int, images []string, palette string, tiles []*TileInfo) (*TemplateInfo, error) {
	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("template %d: invalid size %dx%d", id, sizeX, sizeY)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("template %d: no variant images", id)
	}
	if len(tiles) != sizeX*sizeY {
		return nil, fmt.Errorf("template %d: %d tile entries for %dx%d template", id, len(tiles), sizeX, sizeY)
	}
	return &TemplateInfo{
		ID:      id,
		SizeX:   sizeX,
		SizeY:   sizeY,
		Images:  images,
		Palette: palette,
		tiles:   tiles,
	}, nil
}

// TileCount returns the number of cells in the template, defined or not.
func (t *TemplateInfo) TileCount() int {
	return t.SizeX * t.SizeY
}

// Tile returns the info for tile index i, or nil if the index is out of range
// or the cell is undefined.
func (t *TemplateInfo) Tile(i int) *TileInfo {
	if i < 0 || i >= len(t.tiles) {
		return nil
	}
	return t.tiles[i]
}

// TileSet is the template registry for one terrain type. It implements Info;
// consumers that need templated terrain assert for *TileSet and must fail
// construction if the assertion does not hold.
type TileSet struct {
	Name string
	Grid grid.Spec

	templates map[uint16]*TemplateInfo
	ids       []uint16 // sorted, fixes iteration order
}

// Info is the marker for a terrain rule set of any kind.
type Info interface {
	TerrainName() string
}

// TerrainName returns the tileset name.
func (ts *TileSet) TerrainName() string {
	return ts.Name
}

// NewTileSet builds a registry from the given templates. Duplicate template
// ids are a configuration error.
func NewTileSet(name string, g grid.Spec, templates []*TemplateInfo) (*TileSet, error) {
	ts := &TileSet{
		Name:      name,
		Grid:      g,
		templates: make(map[uint16]*TemplateInfo, len(templates)),
	}
	for _, t := range templates {
		if _, dup := ts.templates[t.ID]; dup {
			return nil, fmt.Errorf("tileset %s: duplicate template id %d", name, t.ID)
		}
		ts.templates[t.ID] = t
		ts.ids = append(ts.ids, t.ID)
	}
	sort.Slice(ts.ids, func(i, j int) bool { return ts.ids[i] < ts.ids[j] })
	return ts, nil
}

// Template returns the template with the given id.
func (ts *TileSet) Template(id uint16) (*TemplateInfo, bool) {
	t, ok := ts.templates[id]
	return t, ok
}

// TemplateIDs returns all template ids in ascending order.
func (ts *TileSet) TemplateIDs() []uint16 {
	return ts.ids
}

// TileInfo returns the rule info for a terrain tile, or nil if the template
// or the cell is undefined.
func (ts *TileSet) TileInfo(t TerrainTile) *TileInfo {
	tmpl, ok := ts.templates[t.Template]
	if !ok {
		return nil
	}
	return tmpl.Tile(int(t.Index))
}
