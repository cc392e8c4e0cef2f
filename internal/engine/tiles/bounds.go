package tiles

import (
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// TemplateBounds returns the union of the projected pixel rectangles of every
// defined tile in the template, or geom.Empty for an unknown template or one
// with no defined tiles. Used to place template previews in editor palettes.
func (c *Cache) TemplateBounds(id uint16) geom.Rect {
	tmpl, ok := c.tileSet.Template(id)
	if !ok {
		return geom.Empty
	}

	bounds := geom.Empty
	g := c.tileSet.Grid

	// One running tile index over the row-major walk; undefined cells still
	// consume an index.
	i := 0
	for y := 0; y < tmpl.SizeY; y++ {
		for x := 0; x < tmpl.SizeX; x++ {
			info := tmpl.Tile(i)
			if info == nil {
				i++
				continue
			}
			sprite := c.Sprite(terrain.TerrainTile{Template: id, Index: uint8(i)}, 0)
			pos := g.TileScreenPos(x, y, info.Height, sprite.Size, sprite.Offset)
			bounds = bounds.Union(geom.NewRect(pos, sprite.Size))
			i++
		}
	}

	return bounds
}
