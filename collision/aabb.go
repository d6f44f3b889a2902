package collision

// Contains reports whether p lies strictly inside the box. Points on the
// boundary are not contained.
func (b AABB[S]) Contains(p Point2[S]) bool {
	return p.X > b.TopLeft.X && p.X < b.BottomRight.X &&
		p.Y < b.TopLeft.Y && p.Y > b.BottomRight.Y
}

// Touches reports whether p lies exactly on one of the box edges.
func (b AABB[S]) Touches(p Point2[S]) bool {
	inX := p.X >= b.TopLeft.X && p.X <= b.BottomRight.X
	inY := p.Y <= b.TopLeft.Y && p.Y >= b.BottomRight.Y

	return (inY && (p.X == b.TopLeft.X || p.X == b.BottomRight.X)) ||
		(inX && (p.Y == b.TopLeft.Y || p.Y == b.BottomRight.Y))
}

func (b AABB[S]) encloses(p Point2[S]) bool {
	return b.Contains(p) || b.Touches(p)
}

// AABBPoint reports Inside for a point strictly inside the box and
// Intersects for a point on its boundary.
func AABBPoint[S Scalar](b AABB[S], p Point2[S]) Intersection[S] {
	if b.Contains(p) {
		return inside[S]()
	}
	if b.Touches(p) {
		return intersectsAt(p)
	}
	return outside[S]()
}

func PointAABB[S Scalar](p Point2[S], b AABB[S]) Intersection[S] {
	return AABBPoint(b, p).Inverse()
}

// AABBAABB reports Inside when o lies within b, InverseContain when b lies
// within o, and Overlap with the top left and bottom right corners of the
// shared region otherwise. Boxes sharing only an edge or a corner overlap on
// a degenerate region.
func AABBAABB[S Scalar](b, o AABB[S]) Intersection[S] {
	if o.TopLeft.X > b.BottomRight.X || o.BottomRight.X < b.TopLeft.X ||
		o.TopLeft.Y < b.BottomRight.Y || o.BottomRight.Y > b.TopLeft.Y {
		return outside[S]()
	}

	if b.holds(o) {
		return inside[S]()
	}
	if o.holds(b) {
		return inverseContain[S]()
	}

	return overlap(
		Point2[S]{X: maxOf(b.TopLeft.X, o.TopLeft.X), Y: minOf(b.TopLeft.Y, o.TopLeft.Y)},
		Point2[S]{X: minOf(b.BottomRight.X, o.BottomRight.X), Y: maxOf(b.BottomRight.Y, o.BottomRight.Y)},
	)
}

func (b AABB[S]) holds(o AABB[S]) bool {
	return o.TopLeft.X >= b.TopLeft.X && o.BottomRight.X <= b.BottomRight.X &&
		o.TopLeft.Y <= b.TopLeft.Y && o.BottomRight.Y >= b.BottomRight.Y
}
