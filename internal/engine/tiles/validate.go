package tiles

import (
	"fmt"

	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
)

// Report is the terminal result of one validation pass: the aggregate failure
// flag and every error discovered, in walk order.
type Report struct {
	Failed bool
	Errors []string
}

// Validate re-runs the validation pass over the unchanged rule set. The walk
// is exhaustive and deterministic, so repeated runs yield identical reports.
func (c *Cache) Validate() *Report {
	_, report := c.resolveAll()
	return report
}

// Report returns the validation report produced when the cache was built.
func (c *Cache) Report() *Report {
	return c.report
}

// resolveAll walks every (template, variant image, tile index) combination,
// building the sprite table and collecting every validation error without
// short-circuiting.
//
// An image that does not exist at all is reported once and recorded in the
// missing-image set; frame-level errors for such an image are suppressed so a
// single bad image does not cascade into one error per tile.
func (c *Cache) resolveAll() (map[uint16][][]atlas.Sprite, *Report) {
	report := &Report{}
	missingImages := make(map[string]bool)
	sprites := make(map[uint16][][]atlas.Sprite)

	for _, id := range c.tileSet.TemplateIDs() {
		tmpl, _ := c.tileSet.Template(id)
		count := tmpl.TileCount()

		variants := make([][]atlas.Sprite, len(tmpl.Images))
		for vi, image := range tmpl.Images {
			row := make([]atlas.Sprite, count)
			for i := range row {
				row[i] = c.missing
			}
			variants[vi] = row

			if !c.provider.HasImage(image) {
				if !missingImages[image] {
					missingImages[image] = true
					report.Errors = append(report.Errors,
						fmt.Sprintf("Template '%d' references sprite '%s' that does not exist.", id, image))
				}
				report.Failed = true
				continue
			}

			for i := 0; i < count; i++ {
				if tmpl.Tile(i) == nil {
					continue
				}
				sprite, ok := c.provider.Sprite(image, i)
				if !ok {
					report.Errors = append(report.Errors,
						fmt.Sprintf("Template '%d' references frame %d that does not exist in sprite '%s'.", id, i, image))
					report.Failed = true
					continue
				}
				row[i] = sprite
			}
		}
		sprites[id] = variants
	}

	return sprites, report
}
