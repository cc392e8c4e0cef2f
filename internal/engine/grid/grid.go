// Package grid converts tile coordinates to screen positions for the two
// supported map topologies.
package grid

import (
	"fmt"

	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// Type selects the map grid topology.
type Type int

const (
	// Rectangular lays tiles out on a plain square lattice.
	Rectangular Type = iota
	// Isometric rotates the lattice 45 degrees so diamond tiles interlock.
	Isometric
)

// String returns the YAML name of the grid type.
func (t Type) String() string {
	switch t {
	case Rectangular:
		return "rectangular"
	case Isometric:
		return "isometric"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses a grid type name as it appears in tileset files.
func ParseType(name string) (Type, error) {
	switch name {
	case "rectangular":
		return Rectangular, nil
	case "isometric":
		return Isometric, nil
	default:
		return 0, fmt.Errorf("unknown grid type %q", name)
	}
}

// Spec describes the grid a map was authored for. Supplied by the map and
// read-only for the renderer's lifetime.
type Spec struct {
	Type     Type
	TileSize geom.Vec2 // pixel size of one tile
}

// Project converts a template-local tile coordinate (x, y) to whole-tile
// screen units (u, v), before pixel scaling.
//
// On an isometric grid adjacent diamonds interlock: stepping +x moves half a
// tile right and down, stepping +y moves half a tile left and down.
func (s Spec) Project(x, y int) (u, v float32) {
	if s.Type == Isometric {
		return float32(x-y) / 2, float32(x+y) / 2
	}
	return float32(x), float32(y)
}

// TileScreenPos returns the pixel top-left of a tile at template-local
// coordinate (x, y) with the given declared height, for a sprite of the given
// size and intrinsic offset. Height shifts the tile upward by half a tile per
// height unit, which layers elevated terrain over its neighbours.
func (s Spec) TileScreenPos(x, y int, height float32, spriteSize, spriteOffset geom.Vec2) geom.Vec2 {
	u, v := s.Project(x, y)
	center := geom.Vec2{
		X: u * s.TileSize.X,
		Y: (v - 0.5*height) * s.TileSize.Y,
	}
	return center.Sub(spriteSize.Scale(0.5)).Add(spriteOffset)
}
