package tiles

import (
	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/palette"
	"github.com/emberfall-mod/emberfall/internal/engine/tilemap"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// DrawEntry is one draw-ready sprite-layer update: a cell, its resolved
// sprite, the pixel position to draw it at and the palette to draw it with.
type DrawEntry struct {
	Cell    tilemap.Cell
	Sprite  atlas.Sprite
	Pos     geom.Vec2
	Palette palette.Palette
}

// Layer keeps a draw entry per map cell, rebuilt incrementally as cells are
// edited. It subscribes to map change notifications at construction, so only
// changed cells are re-projected.
type Layer struct {
	m        *tilemap.Map
	cache    *Cache
	palettes *palette.Registry
	entries  []DrawEntry
}

// NewLayer builds the full draw-entry grid for the map and subscribes to its
// change notifications.
func NewLayer(m *tilemap.Map, cache *Cache, palettes *palette.Registry) *Layer {
	l := &Layer{
		m:        m,
		cache:    cache,
		palettes: palettes,
		entries:  make([]DrawEntry, m.Width*m.Height),
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			l.update(tilemap.Cell{X: x, Y: y})
		}
	}
	m.OnCellChanged(l.update)
	return l
}

// update re-resolves and re-projects a single cell.
func (l *Layer) update(c tilemap.Cell) {
	tile := l.m.Tile(c)
	sprite := l.cache.Sprite(tile, l.variant(c, tile.Template))

	height := float32(l.m.CellHeight(c))
	if info := l.cache.tileSet.TileInfo(tile); info != nil {
		height += info.Height
	}

	pos := l.m.Grid.TileScreenPos(c.X, c.Y, height, sprite.Size, sprite.Offset)

	paletteName := ""
	if tmpl, ok := l.cache.tileSet.Template(tile.Template); ok {
		paletteName = tmpl.Palette
	}

	l.entries[c.Y*l.m.Width+c.X] = DrawEntry{
		Cell:    c,
		Sprite:  sprite,
		Pos:     pos,
		Palette: l.palettes.Get(paletteName),
	}
}

// variant picks a stable per-cell variant so repeated templates do not tile
// visibly. Resolution clamps out-of-range variants, so templates with a
// single image are unaffected.
func (l *Layer) variant(c tilemap.Cell, template uint16) int {
	tmpl, ok := l.cache.tileSet.Template(template)
	if !ok || len(tmpl.Images) <= 1 {
		return 0
	}
	return (c.X*7 + c.Y*13) % len(tmpl.Images)
}

// Entries returns the draw entries for every map cell in row-major order.
// The slice is reused across updates; callers must not retain it.
func (l *Layer) Entries() []DrawEntry {
	return l.entries
}
