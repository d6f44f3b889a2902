package collision

// CircleLine intersects a circle with a segment by solving
// |A + t(B-A) - C| = r for t.
//
// A zero-length segment is tested as a point. A segment that lies entirely
// inside the circle reports Inside. Otherwise only the roots falling within
// the segment are reported.
func CircleLine[S Scalar](c Circle[S], l Line[S]) Intersection[S] {
	d := l.Direction()
	if d.IsZero() {
		return CirclePoint(c, l.A)
	}

	f := l.A.Sub(c.Pos)
	a := d.Dot(d)
	b := 2 * f.Dot(d)
	k := f.Dot(f) - c.Radius*c.Radius

	dis := b*b - 4*a*k
	if dis < 0 {
		return outside[S]()
	}

	if dis == 0 {
		t := -b / (2 * a)
		if t >= 0 && t <= 1 {
			return intersectsAt(l.At(t))
		}
		return outside[S]()
	}

	dis = sqrt(dis)
	t0 := (-b - dis) / (2 * a)
	t1 := (-b + dis) / (2 * a)
	in0 := t0 >= 0 && t0 <= 1
	in1 := t1 >= 0 && t1 <= 1

	switch {
	case t0 < 0 && t1 > 1:
		return inside[S]()

	case in0 && in1:
		return intersectsAt2(l.At(t0), l.At(t1))

	case t0 < 0 && in1:
		return intersectsAt(l.At(t1))

	case in0 && t1 > 1:
		return intersectsAt(l.At(t0))

	default:
		return outside[S]()
	}
}

func LineCircle[S Scalar](l Line[S], c Circle[S]) Intersection[S] {
	return CircleLine(c, l).Inverse()
}

// CirclePoint classifies p by its euclidean distance to the circle center.
func CirclePoint[S Scalar](c Circle[S], p Point2[S]) Intersection[S] {
	distSq := p.DistanceSq(c.Pos)
	radiusSq := c.Radius * c.Radius

	switch {
	case distSq < radiusSq:
		return inside[S]()
	case distSq == radiusSq:
		return intersectsAt(p)
	default:
		return outside[S]()
	}
}

func PointCircle[S Scalar](p Point2[S], c Circle[S]) Intersection[S] {
	return CirclePoint(c, p).Inverse()
}

// CircleAABB intersects the circle with each edge of the box.
//
// When an edge lies entirely inside the circle, the whole box is reported
// Inside. When no edge is touched, the box either holds the circle
// (InverseContain) or is Outside. Otherwise every contact point is returned
// in the top, right, bottom, left edge order.
func CircleAABB[S Scalar](c Circle[S], b AABB[S]) Intersection[S] {
	edges := b.Edges()

	var points []Point2[S]
	outsideCount := 0

	for _, edge := range edges {
		res := CircleLine(c, edge)
		switch res.Kind {
		case Inside:
			return inside[S]()

		case Outside:
			outsideCount++

		case Intersects:
			points = append(points, res.ContactPoints()...)
		}
	}

	if outsideCount == len(edges) {
		if b.Contains(c.Pos) {
			return inverseContain[S]()
		}
		return outside[S]()
	}
	return intersectsN(points)
}

func AABBCircle[S Scalar](b AABB[S], c Circle[S]) Intersection[S] {
	return CircleAABB(c, b).Inverse()
}

// CircleCircle reports Inside when o lies within c, InverseContain when c
// lies within o, and the one or two points where both outlines cross
// otherwise.
func CircleCircle[S Scalar](c, o Circle[S]) Intersection[S] {
	d := o.Pos.Sub(c.Pos)
	distSq := d.LengthSq()
	sum := c.Radius + o.Radius

	if distSq > sum*sum {
		return outside[S]()
	}

	dist := sqrt(distSq)
	if dist+o.Radius <= c.Radius {
		return inside[S]()
	}
	if dist+c.Radius <= o.Radius {
		return inverseContain[S]()
	}

	// Distance from c.Pos to the chord joining both crossing points.
	along := (c.Radius*c.Radius - o.Radius*o.Radius + distSq) / (2 * dist)
	unit := d.Mul(1 / dist)
	mid := c.Pos.Add(unit.Mul(along))

	h2 := c.Radius*c.Radius - along*along
	if distSq == sum*sum || h2 <= 0 {
		return intersectsAt(mid)
	}

	off := unit.Perp().Mul(sqrt(h2))
	return intersectsAt2(mid.Add(off), mid.Add(off.Mul(-1)))
}
