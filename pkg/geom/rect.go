package geom

// Rect is an axis-aligned rectangle in pixels. The zero value is not a valid
// rectangle; use Empty for the "no area" sentinel.
type Rect struct {
	Min, Max Vec2

	// set distinguishes a real rectangle from the Empty sentinel, so a
	// rectangle located at the origin is not mistaken for "no rectangle".
	set bool
}

// Empty is the sentinel returned when no rectangle could be produced.
var Empty = Rect{}

// NewRect returns the rectangle with the given top-left corner and size.
func NewRect(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size), set: true}
}

// IsEmpty reports whether r is the Empty sentinel.
func (r Rect) IsEmpty() bool {
	return !r.set
}

// Size returns the width and height of r.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Union returns the smallest rectangle containing both r and other.
// Union with Empty returns the other operand unchanged.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	u := Rect{Min: r.Min, Max: r.Max, set: true}
	if other.Min.X < u.Min.X {
		u.Min.X = other.Min.X
	}
	if other.Min.Y < u.Min.Y {
		u.Min.Y = other.Min.Y
	}
	if other.Max.X > u.Max.X {
		u.Max.X = other.Max.X
	}
	if other.Max.Y > u.Max.Y {
		u.Max.Y = other.Max.Y
	}
	return u
}
