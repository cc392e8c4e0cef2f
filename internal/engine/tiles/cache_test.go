package tiles

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/grid"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// fakeProvider is a synthetic atlas: each image has a fixed frame count and
// every frame is a 32x32 sprite.
type fakeProvider struct {
	frames map[string]int
}

func (p *fakeProvider) HasImage(name string) bool {
	_, ok := p.frames[name]
	return ok
}

func (p *fakeProvider) Sprite(name string, frame int) (atlas.Sprite, bool) {
	count, ok := p.frames[name]
	if !ok || frame < 0 || frame >= count {
		return atlas.Sprite{}, false
	}
	return atlas.Sprite{
		Image:  name,
		Frame:  frame,
		Region: geom.NewRect(geom.Vec2{X: float32(frame) * 32}, geom.Vec2{X: 32, Y: 32}),
		Size:   geom.Vec2{X: 32, Y: 32},
	}, true
}

func (p *fakeProvider) Missing() atlas.Sprite {
	return atlas.Sprite{Image: "missing", Sheet: atlas.MissingSheet, Size: geom.Vec2{X: 32, Y: 32}}
}

func template(t *testing.T, id uint16, sizeX, sizeY int, images []string, tiles []*terrain.TileInfo) *terrain.TemplateInfo {
	t.Helper()
	tmpl, err := terrain.NewTemplateInfo(id, sizeX, sizeY, images, "", tiles)
	if err != nil {
		t.Fatalf("NewTemplateInfo: %v", err)
	}
	return tmpl
}

func tileSet(t *testing.T, gridType grid.Type, templates ...*terrain.TemplateInfo) *terrain.TileSet {
	t.Helper()
	g := grid.Spec{Type: gridType, TileSize: geom.Vec2{X: 32, Y: 32}}
	ts, err := terrain.NewTileSet("test", g, templates)
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	return ts
}

func defined(n int) []*terrain.TileInfo {
	tiles := make([]*terrain.TileInfo, n)
	for i := range tiles {
		tiles[i] = &terrain.TileInfo{}
	}
	return tiles
}

func TestNew_WrongRuleSetKind(t *testing.T) {
	_, err := New(otherTerrain{}, &fakeProvider{})
	if !errors.Is(err, ErrNotTemplated) {
		t.Errorf("expected ErrNotTemplated, got %v", err)
	}
}

// otherTerrain is a terrain rule set of the wrong kind.
type otherTerrain struct{}

func (otherTerrain) TerrainName() string { return "other" }

func TestSprite_NeverFails(t *testing.T) {
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 1, []string{"a.shp"}, []*terrain.TileInfo{{}, nil}))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Defined tile resolves to a real sprite.
	if s := c.Sprite(terrain.TerrainTile{Template: 1, Index: 0}, 0); s.Image != "a.shp" {
		t.Errorf("expected real sprite, got %+v", s)
	}

	// Everything unresolvable degrades to the placeholder, never an error.
	missing := c.Missing()
	cases := []struct {
		name    string
		tile    terrain.TerrainTile
		variant int
	}{
		{"undefined cell", terrain.TerrainTile{Template: 1, Index: 1}, 0},
		{"index out of range", terrain.TerrainTile{Template: 1, Index: 9}, 0},
		{"unknown template", terrain.TerrainTile{Template: 42, Index: 0}, 0},
	}
	for _, tc := range cases {
		if s := c.Sprite(tc.tile, tc.variant); s != missing {
			t.Errorf("%s: expected placeholder, got %+v", tc.name, s)
		}
	}

	// Out-of-range variants clamp to variant 0.
	if s := c.Sprite(terrain.TerrainTile{Template: 1, Index: 0}, 5); s.Image != "a.shp" {
		t.Errorf("out-of-range variant should clamp, got %+v", s)
	}
}

func TestValidate_MissingImage(t *testing.T) {
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 1, []string{"gone.shp"}, defined(2)))
	c, err := New(ts, &fakeProvider{frames: map[string]int{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report := c.Report()
	if !report.Failed {
		t.Error("report should be failed")
	}
	want := []string{"Template '1' references sprite 'gone.shp' that does not exist."}
	if diff := cmp.Diff(want, report.Errors); diff != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", diff)
	}

	// Both tiles still resolve to the placeholder.
	for i := uint8(0); i < 2; i++ {
		if s := c.Sprite(terrain.TerrainTile{Template: 1, Index: i}, 0); s != c.Missing() {
			t.Errorf("tile %d should resolve to placeholder, got %+v", i, s)
		}
	}
}

func TestValidate_MissingFrame(t *testing.T) {
	// a.shp exists with one frame but the template needs two.
	ts := tileSet(t, grid.Rectangular,
		template(t, 3, 2, 1, []string{"a.shp"}, defined(2)))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{"Template '3' references frame 1 that does not exist in sprite 'a.shp'."}
	if diff := cmp.Diff(want, c.Report().Errors); diff != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", diff)
	}
}

func TestValidate_ExhaustiveCount(t *testing.T) {
	// Two missing images (one shared by two templates, reported once) and two
	// missing frames across distinct existing images: exactly N + M errors,
	// and no frame errors for already-missing images.
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 1, []string{"gone.shp", "short.shp"}, defined(2)),
		template(t, 2, 1, 1, []string{"gone.shp", "alsogone.shp"}, defined(1)),
		template(t, 3, 2, 1, []string{"trim.shp"}, defined(2)),
	)
	c, err := New(ts, &fakeProvider{frames: map[string]int{
		"short.shp": 1, // missing frame 1 for template 1
		"trim.shp":  1, // missing frame 1 for template 3
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{
		"Template '1' references sprite 'gone.shp' that does not exist.",
		"Template '1' references frame 1 that does not exist in sprite 'short.shp'.",
		"Template '2' references sprite 'alsogone.shp' that does not exist.",
		"Template '3' references frame 1 that does not exist in sprite 'trim.shp'.",
	}
	if diff := cmp.Diff(want, c.Report().Errors); diff != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", diff)
	}
}

func TestValidate_SkipsUndefinedTiles(t *testing.T) {
	// Sparse template: only tile 0 is defined, so the one-frame image is
	// sufficient and validation passes.
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 1, []string{"a.shp"}, []*terrain.TileInfo{{}, nil}))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if report := c.Report(); report.Failed || len(report.Errors) != 0 {
		t.Errorf("expected clean report, got %+v", report)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 2, []string{"gone.shp", "short.shp"}, defined(4)),
		template(t, 9, 1, 1, []string{"other.shp"}, defined(1)),
	)
	c, err := New(ts, &fakeProvider{frames: map[string]int{"short.shp": 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := c.Validate()
	second := c.Validate()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated validation differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(c.Report(), first); diff != "" {
		t.Errorf("re-validation differs from construction report:\n%s", diff)
	}
}

func TestTemplateBounds_Empty(t *testing.T) {
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 2, []string{"a.shp"}, make([]*terrain.TileInfo, 4)))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 4}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if b := c.TemplateBounds(1); !b.IsEmpty() {
		t.Errorf("template with no defined tiles should have empty bounds, got %+v", b)
	}
	if b := c.TemplateBounds(99); !b.IsEmpty() {
		t.Errorf("unknown template should have empty bounds, got %+v", b)
	}
}

func TestTemplateBounds_SingleTile(t *testing.T) {
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 1, 1, []string{"a.shp"}, defined(1)))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b := c.TemplateBounds(1)
	if b.IsEmpty() {
		t.Fatal("bounds should not be empty")
	}
	// 32x32 sprite centered on the projected origin.
	if b.Min.X != -16 || b.Min.Y != -16 || b.Max.X != 16 || b.Max.Y != 16 {
		t.Errorf("unexpected bounds: %+v", b)
	}
	if s := b.Size(); s.X != 32 || s.Y != 32 {
		t.Errorf("unexpected bounds size: %+v", s)
	}
}

func TestTemplateBounds_RunningIndexSkipsUndefined(t *testing.T) {
	// Tile 0 undefined, tile 1 defined: the defined tile must still project
	// at x=1, proving the running index advances over skipped cells.
	ts := tileSet(t, grid.Rectangular,
		template(t, 1, 2, 1, []string{"a.shp"}, []*terrain.TileInfo{nil, {}}))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b := c.TemplateBounds(1)
	if b.Min.X != 16 || b.Max.X != 48 {
		t.Errorf("defined tile should project at x=1: %+v", b)
	}
}

func TestTemplateBounds_Isometric(t *testing.T) {
	ts := tileSet(t, grid.Isometric,
		template(t, 1, 2, 1, []string{"a.shp"}, defined(2)))
	c, err := New(ts, &fakeProvider{frames: map[string]int{"a.shp": 2}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Tile (1,0) projects to u=0.5, v=0.5 in tile units.
	b := c.TemplateBounds(1)
	if b.Min.X != -16 || b.Max.X != 32 {
		t.Errorf("unexpected isometric bounds: %+v", b)
	}
	if b.Max.Y != 32 {
		t.Errorf("unexpected isometric bottom edge: %+v", b)
	}
}
