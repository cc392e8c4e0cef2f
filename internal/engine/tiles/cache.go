// Package tiles builds and serves the terrain sprite cache: every rule-defined
// tile resolves to a real sprite or to the shared missing-placeholder, never
// to an error.
package tiles

import (
	"errors"
	"fmt"

	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
)

// ErrNotTemplated is returned when the cache is constructed against a terrain
// rule set that does not carry templates. This is a configuration contract
// violation, not a recoverable condition.
var ErrNotTemplated = errors.New("terrain rules are not template-based")

// Cache maps (template, tile index, variant) to resolved sprites. Built once
// at load time and read-only afterward.
type Cache struct {
	tileSet  *terrain.TileSet
	provider atlas.Provider
	missing  atlas.Sprite

	// sprites[id][variant][tileIndex]; unresolvable entries hold the
	// missing-placeholder so lookups never branch on absence.
	sprites map[uint16][][]atlas.Sprite

	report *Report
}

// New builds the sprite cache for the given terrain rules, running the
// validation pass as it goes. Construction only fails on the rule-set kind
// contract; missing sprites degrade to the placeholder and are reported in
// the validation report instead.
func New(info terrain.Info, provider atlas.Provider) (*Cache, error) {
	ts, ok := info.(*terrain.TileSet)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTemplated, info)
	}

	c := &Cache{
		tileSet:  ts,
		provider: provider,
		missing:  provider.Missing(),
	}
	c.sprites, c.report = c.resolveAll()
	return c, nil
}

// TileSet returns the terrain rules the cache was built against.
func (c *Cache) TileSet() *terrain.TileSet {
	return c.tileSet
}

// Sprite resolves a terrain tile to its cached sprite. Unknown templates,
// out-of-range tile indexes and out-of-range variants never fail: the variant
// clamps to 0 and anything unresolvable yields the missing-placeholder.
func (c *Cache) Sprite(t terrain.TerrainTile, variant int) atlas.Sprite {
	variants, ok := c.sprites[t.Template]
	if !ok {
		return c.missing
	}
	if variant < 0 || variant >= len(variants) {
		variant = 0
	}
	row := variants[variant]
	if int(t.Index) >= len(row) {
		return c.missing
	}
	return row[t.Index]
}

// Missing returns the shared missing-placeholder sprite.
func (c *Cache) Missing() atlas.Sprite {
	return c.missing
}
