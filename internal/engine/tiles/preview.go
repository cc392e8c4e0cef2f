package tiles

import (
	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/internal/engine/tilemap"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// PreviewSprite is one draw primitive of an editor-palette template preview.
type PreviewSprite struct {
	Sprite atlas.Sprite
	Offset geom.Vec2
	Scale  float32
}

// WorldSprite is one draw primitive of an in-world placement ghost.
type WorldSprite struct {
	Sprite atlas.Sprite
	Pos    geom.Vec2
}

// EditorPreview returns the draw primitives for rendering a template in an
// editor palette at the given scale. Offsets are relative to the template
// origin; pair with TemplateBounds to center the preview in a UI slot.
func (c *Cache) EditorPreview(id uint16, variant int, scale float32) []PreviewSprite {
	tmpl, ok := c.tileSet.Template(id)
	if !ok {
		return nil
	}

	g := c.tileSet.Grid
	var out []PreviewSprite
	i := 0
	for y := 0; y < tmpl.SizeY; y++ {
		for x := 0; x < tmpl.SizeX; x++ {
			info := tmpl.Tile(i)
			if info == nil {
				i++
				continue
			}
			sprite := c.Sprite(terrain.TerrainTile{Template: id, Index: uint8(i)}, variant)
			pos := g.TileScreenPos(x, y, info.Height, sprite.Size, sprite.Offset)
			out = append(out, PreviewSprite{
				Sprite: sprite,
				Offset: pos.Scale(scale),
				Scale:  scale,
			})
			i++
		}
	}
	return out
}

// WorldPreview returns the draw primitives for a placement ghost of the
// template anchored at origin. Tile heights from the rules shift each sprite
// the same way the terrain layer would draw it.
func (c *Cache) WorldPreview(id uint16, origin tilemap.Cell, variant int) []WorldSprite {
	tmpl, ok := c.tileSet.Template(id)
	if !ok {
		return nil
	}

	g := c.tileSet.Grid
	var out []WorldSprite
	i := 0
	for y := 0; y < tmpl.SizeY; y++ {
		for x := 0; x < tmpl.SizeX; x++ {
			info := tmpl.Tile(i)
			if info == nil {
				i++
				continue
			}
			sprite := c.Sprite(terrain.TerrainTile{Template: id, Index: uint8(i)}, variant)
			pos := g.TileScreenPos(origin.X+x, origin.Y+y, info.Height, sprite.Size, sprite.Offset)
			out = append(out, WorldSprite{Sprite: sprite, Pos: pos})
			i++
		}
	}
	return out
}
