package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCircleLine(t *testing.T) {
	c := NewCircle(pt(0, 0), 5.0)

	t.Run("a tangent segment intersects once", func(t *testing.T) {
		require.Equal(t, intersectsAt(pt(0, 5)), CircleLine(c, line(-5, 5, 5, 5)))
	})

	t.Run("a tangent point beyond the segment is outside", func(t *testing.T) {
		require.Equal(t, Outside, CircleLine(c, line(10, 5, 20, 5)).Kind)
	})

	t.Run("a segment crossing the circle intersects twice", func(t *testing.T) {
		require.Equal(t, intersectsAt2(pt(-5, 0), pt(5, 0)), CircleLine(c, line(-10, 0, 10, 0)))
		require.Equal(t, intersectsAt2(pt(5, 0), pt(-5, 0)), CircleLine(c, line(10, 0, -10, 0)))
	})

	t.Run("a segment starting inside reports its exit point", func(t *testing.T) {
		require.Equal(t, intersectsAt(pt(5, 0)), CircleLine(c, line(0, 0, 10, 0)))
	})

	t.Run("a segment ending inside reports its entry point", func(t *testing.T) {
		require.Equal(t, intersectsAt(pt(-5, 0)), CircleLine(c, line(-10, 0, 0, 0)))
	})

	t.Run("a segment entirely inside is inside", func(t *testing.T) {
		require.Equal(t, Inside, CircleLine(c, line(-1, 0, 1, 0)).Kind)
		require.Equal(t, InverseContain, LineCircle(line(-1, 0, 1, 0), c).Kind)
	})

	t.Run("a segment away from the circle is outside", func(t *testing.T) {
		require.Equal(t, Outside, CircleLine(c, line(-20, 20, 20, 20)).Kind)
	})

	t.Run("a segment before the circle on a secant line is outside", func(t *testing.T) {
		require.Equal(t, Outside, CircleLine(c, line(-20, 0, -10, 0)).Kind)
		require.Equal(t, Outside, CircleLine(c, line(10, 0, 20, 0)).Kind)
	})

	t.Run("zero length segments are tested as points", func(t *testing.T) {
		require.Equal(t, Inside, CircleLine(c, line(0, 0, 0, 0)).Kind)
		require.Equal(t, Outside, CircleLine(c, line(20, 20, 20, 20)).Kind)
		require.Equal(t, intersectsAt(pt(5, 0)), CircleLine(c, line(5, 0, 5, 0)))
	})
}

func TestCirclePoint(t *testing.T) {
	c := NewCircle(pt(1, 1), 5.0)

	require.Equal(t, Inside, CirclePoint(c, pt(2, 2)).Kind)
	require.Equal(t, intersectsAt(pt(4, 5)), CirclePoint(c, pt(4, 5)))
	require.Equal(t, Outside, CirclePoint(c, pt(10, 1)).Kind)

	t.Run("points within the axis aligned extent but beyond the radius are outside", func(t *testing.T) {
		require.Equal(t, Outside, CirclePoint(c, pt(5, 5)).Kind)
	})

	t.Run("a point sees itself held by the circle", func(t *testing.T) {
		require.Equal(t, InverseContain, PointCircle(pt(2, 2), c).Kind)
	})

	t.Run("a zero radius circle only touches its center", func(t *testing.T) {
		dot := NewCircle(pt(1, 1), 0.0)
		require.Equal(t, intersectsAt(pt(1, 1)), CirclePoint(dot, pt(1, 1)))
		require.Equal(t, Outside, CirclePoint(dot, pt(1, 2)).Kind)
	})
}

func TestCircleAABB(t *testing.T) {
	box := NewAABB(pt(-5, 5), pt(5, -5))

	t.Run("an inscribed circle touches the four edge midpoints", func(t *testing.T) {
		res := CircleAABB(NewCircle(pt(0, 0), 5.0), box)
		require.Equal(t, intersectsN([]Point2[float64]{
			pt(0, 5),
			pt(5, 0),
			pt(0, -5),
			pt(-5, 0),
		}), res)
	})

	t.Run("a circle enclosing the box is inside", func(t *testing.T) {
		require.Equal(t, Inside, CircleAABB(NewCircle(pt(0, 0), 10.0), box).Kind)
		require.Equal(t, InverseContain, AABBCircle(box, NewCircle(pt(0, 0), 10.0)).Kind)
	})

	t.Run("a circle enclosed by the box is held by the box", func(t *testing.T) {
		require.Equal(t, InverseContain, CircleAABB(NewCircle(pt(0, 0), 1.0), box).Kind)
		require.Equal(t, Inside, AABBCircle(box, NewCircle(pt(0, 0), 1.0)).Kind)
	})

	t.Run("a circle crossing one edge reports the contact points", func(t *testing.T) {
		res := CircleAABB(NewCircle(pt(5, 0), 1.0), box)
		require.Equal(t, intersectsN([]Point2[float64]{pt(5, 1), pt(5, -1)}), res)
	})

	t.Run("a circle away from the box is outside", func(t *testing.T) {
		require.Equal(t, Outside, CircleAABB(NewCircle(pt(20, 20), 1.0), box).Kind)
	})
}

func TestCircleCircle(t *testing.T) {
	c := NewCircle(pt(0, 0), 5.0)

	t.Run("distant circles are outside", func(t *testing.T) {
		require.Equal(t, Outside, CircleCircle(c, NewCircle(pt(15, 0), 5.0)).Kind)
	})

	t.Run("crossing circles report both crossing points", func(t *testing.T) {
		res := CircleCircle(c, NewCircle(pt(8, 0), 5.0))
		require.Equal(t, intersectsAt2(pt(4, 3), pt(4, -3)), res)
	})

	t.Run("tangent circles report a single point", func(t *testing.T) {
		res := CircleCircle(c, NewCircle(pt(10, 0), 5.0))
		require.Equal(t, intersectsAt(pt(5, 0)), res)
	})

	t.Run("a smaller circle within is inside", func(t *testing.T) {
		require.Equal(t, Inside, CircleCircle(c, NewCircle(pt(1, 1), 2.0)).Kind)
		require.Equal(t, InverseContain, CircleCircle(NewCircle(pt(1, 1), 2.0), c).Kind)
	})

	t.Run("equal circles are inside each other", func(t *testing.T) {
		require.Equal(t, Inside, CircleCircle(c, c).Kind)
	})
}

func TestNewCircleNegativeRadius(t *testing.T) {
	require.Equal(t, 3.0, NewCircle(pt(0, 0), -3.0).Radius)
}
