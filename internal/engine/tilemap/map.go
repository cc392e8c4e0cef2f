// Package tilemap holds the per-cell tile and height data of a loaded map
// and notifies observers when cells are edited.
package tilemap

import (
	"github.com/emberfall-mod/emberfall/internal/engine/grid"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
)

// Cell is a map cell coordinate.
type Cell struct {
	X, Y int
}

// Map is the mutable cell grid of one loaded map. All access is
// single-threaded; observers run synchronously on the caller's goroutine.
type Map struct {
	Width  int
	Height int
	Grid   grid.Spec

	tiles     []terrain.TerrainTile
	heights   []uint8
	observers []func(Cell)
}

// New creates a map of the given size with all cells zeroed.
func New(width, height int, g grid.Spec) *Map {
	return &Map{
		Width:   width,
		Height:  height,
		Grid:    g,
		tiles:   make([]terrain.TerrainTile, width*height),
		heights: make([]uint8, width*height),
	}
}

// Contains reports whether c lies inside the map bounds.
func (m *Map) Contains(c Cell) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

func (m *Map) index(c Cell) int {
	return c.Y*m.Width + c.X
}

// Tile returns the terrain tile at c, or the zero tile out of bounds.
func (m *Map) Tile(c Cell) terrain.TerrainTile {
	if !m.Contains(c) {
		return terrain.TerrainTile{}
	}
	return m.tiles[m.index(c)]
}

// CellHeight returns the height level at c, or zero out of bounds.
func (m *Map) CellHeight(c Cell) uint8 {
	if !m.Contains(c) {
		return 0
	}
	return m.heights[m.index(c)]
}

// SetTile replaces the tile at c and notifies observers.
func (m *Map) SetTile(c Cell, t terrain.TerrainTile) {
	if !m.Contains(c) {
		return
	}
	m.tiles[m.index(c)] = t
	m.notify(c)
}

// SetHeight replaces the height level at c and notifies observers.
func (m *Map) SetHeight(c Cell, h uint8) {
	if !m.Contains(c) {
		return
	}
	m.heights[m.index(c)] = h
	m.notify(c)
}

// OnCellChanged subscribes fn to cell edits. Observers are invoked
// synchronously, in registration order, for both tile and height changes.
func (m *Map) OnCellChanged(fn func(Cell)) {
	m.observers = append(m.observers, fn)
}

func (m *Map) notify(c Cell) {
	for _, fn := range m.observers {
		fn(c)
	}
}
