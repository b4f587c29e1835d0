package curve3

// Box is an axis-aligned bounding box.
type Box struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
}

// NewBoxFromPoints returns a box with the extents of p0 and p1, ensuring that
// width, height and depth are non-negative.
func NewBoxFromPoints(p0, p1 Point) Box {
	return Box{p0.X, p0.Y, p0.Z, p1.X, p1.Y, p1.Z}.Abs()
}

// BoundingBox returns the smallest box that encloses all points. It returns
// the zero box for an empty sequence.
func BoundingBox(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := NewBoxFromPoints(points[0], points[0])
	for _, pt := range points[1:] {
		b = b.UnionPoint(pt)
	}
	return b
}

// Abs returns a new box with the same extents as b, but ensuring that width,
// height and depth are non-negative.
func (b Box) Abs() Box {
	return Box{
		X0: min(b.X0, b.X1),
		Y0: min(b.Y0, b.Y1),
		Z0: min(b.Z0, b.Z1),
		X1: max(b.X0, b.X1),
		Y1: max(b.Y0, b.Y1),
		Z1: max(b.Z0, b.Z1),
	}
}

// Width returns the box's width, defined as X1 − X0. It may be negative.
func (b Box) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the box's height, defined as Y1 − Y0. It may be negative.
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// Depth returns the box's depth, defined as Z1 − Z0. It may be negative.
func (b Box) Depth() float64 {
	return b.Z1 - b.Z0
}

func (b Box) Center() Point {
	return Point{
		X: 0.5 * (b.X0 + b.X1),
		Y: 0.5 * (b.Y0 + b.Y1),
		Z: 0.5 * (b.Z0 + b.Z1),
	}
}

// Contains reports whether pt lies within the box. Unlike a half-open
// rectangle, the far faces are included, so that a box built from points
// contains all of them.
func (b Box) Contains(pt Point) bool {
	return pt.X >= b.X0 && pt.X <= b.X1 &&
		pt.Y >= b.Y0 && pt.Y <= b.Y1 &&
		pt.Z >= b.Z0 && pt.Z <= b.Z1
}

// Union returns the smallest box enclosing b and o.
//
// Results are valid only if width, height and depth are non-negative.
func (b Box) Union(o Box) Box {
	return Box{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		Z0: min(b.Z0, o.Z0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
		Z1: max(b.Z1, o.Z1),
	}
}

// UnionPoint computes the union with one point.
func (b Box) UnionPoint(pt Point) Box {
	return Box{
		X0: min(b.X0, pt.X),
		Y0: min(b.Y0, pt.Y),
		Z0: min(b.Z0, pt.Z),
		X1: max(b.X1, pt.X),
		Y1: max(b.Y1, pt.Y),
		Z1: max(b.Z1, pt.Z),
	}
}

// Inflate returns a box grown by d on every side.
func (b Box) Inflate(d float64) Box {
	return Box{
		X0: b.X0 - d,
		Y0: b.Y0 - d,
		Z0: b.Z0 - d,
		X1: b.X1 + d,
		Y1: b.Y1 + d,
		Z1: b.Z1 + d,
	}
}
