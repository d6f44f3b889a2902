package collision

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	// ErrTypeUnsupportedShapes is the error type returned when a shape pair
	// has no intersection test.
	ErrTypeUnsupportedShapes = "unsupported-shapes"
)

// Intersect runs the intersection test matching the dynamic types of a and b.
// Shapes other than Point2, Line, Circle and AABB are reported with an error
// of type ErrTypeUnsupportedShapes.
func Intersect[S Scalar](a, b Shape[S]) (Intersection[S], error) {
	switch a := a.(type) {
	case Point2[S]:
		switch b := b.(type) {
		case Point2[S]:
			return PointPoint(a, b), nil
		case Line[S]:
			return PointLine(a, b), nil
		case Circle[S]:
			return PointCircle(a, b), nil
		case AABB[S]:
			return PointAABB(a, b), nil
		}

	case Line[S]:
		switch b := b.(type) {
		case Point2[S]:
			return LinePoint(a, b), nil
		case Line[S]:
			return LineLine(a, b), nil
		case Circle[S]:
			return LineCircle(a, b), nil
		case AABB[S]:
			return LineAABB(a, b), nil
		}

	case Circle[S]:
		switch b := b.(type) {
		case Point2[S]:
			return CirclePoint(a, b), nil
		case Line[S]:
			return CircleLine(a, b), nil
		case Circle[S]:
			return CircleCircle(a, b), nil
		case AABB[S]:
			return CircleAABB(a, b), nil
		}

	case AABB[S]:
		switch b := b.(type) {
		case Point2[S]:
			return AABBPoint(a, b), nil
		case Line[S]:
			return AABBLine(a, b), nil
		case Circle[S]:
			return AABBCircle(a, b), nil
		case AABB[S]:
			return AABBAABB(a, b), nil
		}
	}

	return Intersection[S]{}, errors.New("unsupported shape combination").
		WithType(ErrTypeUnsupportedShapes).
		WithTag("shape_a", fmt.Sprintf("%T", a)).
		WithTag("shape_b", fmt.Sprintf("%T", b))
}

// Hits reports whether a and b share at least one point.
func Hits[S Scalar](a, b Shape[S]) (bool, error) {
	res, err := Intersect(a, b)
	if err != nil {
		return false, err
	}
	return res.Hit(), nil
}

// Contains reports whether b lies entirely within a. Lines use the
// conservative LineContainsLine check.
func Contains[S Scalar](a, b Shape[S]) (bool, error) {
	if la, ok := a.(Line[S]); ok {
		if lb, ok := b.(Line[S]); ok {
			return LineContainsLine(la, lb), nil
		}
	}

	res, err := Intersect(a, b)
	if err != nil {
		return false, err
	}
	return res.IsInside(), nil
}
