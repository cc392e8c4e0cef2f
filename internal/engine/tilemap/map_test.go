package tilemap

import (
	"testing"

	"github.com/emberfall-mod/emberfall/internal/engine/grid"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

func testGrid() grid.Spec {
	return grid.Spec{Type: grid.Rectangular, TileSize: geom.Vec2{X: 32, Y: 32}}
}

func TestMap_SetTile(t *testing.T) {
	m := New(4, 3, testGrid())

	tile := terrain.TerrainTile{Template: 7, Index: 2}
	m.SetTile(Cell{X: 1, Y: 2}, tile)

	if got := m.Tile(Cell{X: 1, Y: 2}); got != tile {
		t.Errorf("expected %v, got %v", tile, got)
	}
	if got := m.Tile(Cell{X: 0, Y: 0}); got != (terrain.TerrainTile{}) {
		t.Errorf("untouched cell should stay zero, got %v", got)
	}

	// Out-of-bounds edits and reads are no-ops.
	m.SetTile(Cell{X: 9, Y: 9}, tile)
	if got := m.Tile(Cell{X: 9, Y: 9}); got != (terrain.TerrainTile{}) {
		t.Errorf("out-of-bounds read should be zero, got %v", got)
	}
}

func TestMap_ObserverOrder(t *testing.T) {
	m := New(2, 2, testGrid())

	var order []int
	var cells []Cell
	m.OnCellChanged(func(c Cell) { order = append(order, 1); cells = append(cells, c) })
	m.OnCellChanged(func(c Cell) { order = append(order, 2) })

	m.SetTile(Cell{X: 1, Y: 0}, terrain.TerrainTile{Template: 1})
	m.SetHeight(Cell{X: 0, Y: 1}, 3)

	want := []int{1, 2, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("notification %d: expected observer %d, got %d", i, want[i], order[i])
		}
	}

	if cells[0] != (Cell{X: 1, Y: 0}) || cells[1] != (Cell{X: 0, Y: 1}) {
		t.Errorf("unexpected notified cells: %v", cells)
	}
}

func TestParse(t *testing.T) {
	ts := testTileSet(t)

	src := `
width: 3
height: 2
default: {template: 11, index: 0}
cells:
  - {x: 1, y: 0, template: 10, index: 1, height: 2}
`
	m, err := Parse([]byte(src), ts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Width != 3 || m.Height != 2 {
		t.Errorf("unexpected size %dx%d", m.Width, m.Height)
	}
	if got := m.Tile(Cell{X: 0, Y: 0}); got.Template != 11 {
		t.Errorf("default cell should use template 11, got %v", got)
	}
	if got := m.Tile(Cell{X: 1, Y: 0}); got.Template != 10 || got.Index != 1 {
		t.Errorf("unexpected listed cell tile: %v", got)
	}
	if h := m.CellHeight(Cell{X: 1, Y: 0}); h != 2 {
		t.Errorf("expected height 2, got %d", h)
	}
}

func TestParse_CellOutOfBounds(t *testing.T) {
	src := "width: 2\nheight: 2\ncells: [{x: 5, y: 0, template: 1}]\n"
	if _, err := Parse([]byte(src), testTileSet(t)); err == nil {
		t.Error("expected error for out-of-bounds cell")
	}
}

func testTileSet(t *testing.T) *terrain.TileSet {
	t.Helper()
	mk := func(id uint16) *terrain.TemplateInfo {
		tmpl, err := terrain.NewTemplateInfo(id, 2, 1, []string{"x.shp"}, "", []*terrain.TileInfo{{}, {}})
		if err != nil {
			t.Fatalf("NewTemplateInfo: %v", err)
		}
		return tmpl
	}
	ts, err := terrain.NewTileSet("test", testGrid(), []*terrain.TemplateInfo{mk(10), mk(11)})
	if err != nil {
		t.Fatalf("NewTileSet: %v", err)
	}
	return ts
}
