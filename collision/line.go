package collision

// LineLine intersects two segments.
//
// Collinear segments that share a sub-segment report Overlap with the shared
// part clipped to l, its end points following the direction of l. Parallel
// segments report Parallel. Crossing segments report Intersects at the
// crossing point.
func LineLine[S Scalar](l, o Line[S]) Intersection[S] {
	if l.IsZero() {
		return LinePoint(o, l.A)
	}
	if o.IsZero() {
		return LinePoint(l, o.A)
	}

	r := l.Direction()
	s := o.Direction()
	qp := o.A.Sub(l.A)

	unum := qp.Cross(r)
	denom := r.Cross(s)

	if unum == 0 && denom == 0 {
		return collinearLines(l, r, s, qp)
	}

	if denom == 0 {
		return parallel[S]()
	}

	u := unum / denom
	t := qp.Cross(s) / denom
	if t >= 0 && t <= 1 && u >= 0 && u <= 1 {
		return intersectsAt(l.At(t))
	}
	return outside[S]()
}

func collinearLines[S Scalar](l Line[S], r, s, qp Vector2[S]) Intersection[S] {
	rr := r.Dot(r)
	sr := s.Dot(r)
	t0 := qp.Dot(r) / rr
	t1 := t0 + sr/rr

	// s and r go in opposite directions, o covers [t1, t0] on l. The overlap
	// follows l in both cases.
	if sr < 0 {
		if t1 <= 1 && t0 >= 0 {
			return overlap(l.At(maxOf(t1, 0)), l.At(minOf(t0, 1)))
		}
		return outside[S]()
	}

	if t0 <= 1 && t1 >= 0 {
		return overlap(l.At(maxOf(t0, 0)), l.At(minOf(t1, 1)))
	}
	return outside[S]()
}

// LinesIntersect reports whether two segments share at least one point.
func LinesIntersect[S Scalar](l, o Line[S]) bool {
	return LineLine(l, o).Hit()
}

// LineContainsLine reports whether o is collinear with l and both its end
// points fall within the bounding box of l. This is a conservative check: it
// does not look at the order of the end points.
func LineContainsLine[S Scalar](l, o Line[S]) bool {
	if LineLine(l, o).Kind != Overlap {
		return false
	}

	bounds := l.Bounds()
	return bounds.encloses(o.A) && bounds.encloses(o.B)
}

// LinePoint reports Intersects when p lies on the segment.
func LinePoint[S Scalar](l Line[S], p Point2[S]) Intersection[S] {
	if l.IsZero() {
		return PointPoint(l.A, p)
	}

	d := l.Direction()
	ap := p.Sub(l.A)
	if ap.Cross(d) != 0 {
		return outside[S]()
	}

	t := ap.Dot(d) / d.Dot(d)
	if t < 0 || t > 1 {
		return outside[S]()
	}
	return intersectsAt(p)
}

func PointLine[S Scalar](p Point2[S], l Line[S]) Intersection[S] {
	return LinePoint(l, p).Inverse()
}

// PointPoint reports Intersects when both points are equal.
func PointPoint[S Scalar](p, o Point2[S]) Intersection[S] {
	if p == o {
		return intersectsAt(p)
	}
	return outside[S]()
}

// LineAABB reports InverseContain when the segment lies strictly inside the
// box. Otherwise the contact points with the box edges are returned in the
// top, right, bottom, left order. A contact on a corner is reported once for
// each edge it touches.
func LineAABB[S Scalar](l Line[S], b AABB[S]) Intersection[S] {
	if b.Contains(l.A) && b.Contains(l.B) {
		return inverseContain[S]()
	}

	var points []Point2[S]
	for _, edge := range b.Edges() {
		res := LineLine(l, edge)
		switch res.Kind {
		case Intersects, Overlap:
			points = append(points, res.ContactPoints()...)
		}
	}

	if len(points) == 0 {
		return outside[S]()
	}
	return intersectsN(points)
}

func AABBLine[S Scalar](b AABB[S], l Line[S]) Intersection[S] {
	return LineAABB(l, b).Inverse()
}
