package collision

import "strconv"

// Point2 is a position in the plane.
type Point2[S Scalar] struct {
	X S
	Y S
}

func NewPoint2[S Scalar](x, y S) Point2[S] {
	return Point2[S]{X: x, Y: y}
}

// Sub returns the vector going from o to p.
func (p Point2[S]) Sub(o Point2[S]) Vector2[S] {
	return Vector2[S]{X: p.X - o.X, Y: p.Y - o.Y}
}

// Add returns p translated by v.
func (p Point2[S]) Add(v Vector2[S]) Point2[S] {
	return Point2[S]{X: p.X + v.X, Y: p.Y + v.Y}
}

// Dot returns the dot product of p and o seen as position vectors.
func (p Point2[S]) Dot(o Point2[S]) S {
	return p.X*o.X + p.Y*o.Y
}

// Cross returns the z component of the cross product of p and o seen as
// position vectors.
func (p Point2[S]) Cross(o Point2[S]) S {
	return p.X*o.Y - p.Y*o.X
}

func (p Point2[S]) DistanceSq(o Point2[S]) S {
	return p.Sub(o).LengthSq()
}

func (p Point2[S]) Distance(o Point2[S]) S {
	return sqrt(p.DistanceSq(o))
}

func (p Point2[S]) String() string {
	return "[" + strconv.FormatFloat(float64(p.X), 'f', -1, 64) + "," + strconv.FormatFloat(float64(p.Y), 'f', -1, 64) + "]"
}

// Vector2 is a displacement in the plane.
type Vector2[S Scalar] struct {
	X S
	Y S
}

func (v Vector2[S]) Add(o Vector2[S]) Vector2[S] {
	return Vector2[S]{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2[S]) Sub(o Vector2[S]) Vector2[S] {
	return Vector2[S]{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2[S]) Mul(s S) Vector2[S] {
	return Vector2[S]{X: v.X * s, Y: v.Y * s}
}

func (v Vector2[S]) Dot(o Vector2[S]) S {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2[S]) Cross(o Vector2[S]) S {
	return v.X*o.Y - v.Y*o.X
}

// Perp returns v rotated by 90 degrees counter clockwise.
func (v Vector2[S]) Perp() Vector2[S] {
	return Vector2[S]{X: -v.Y, Y: v.X}
}

func (v Vector2[S]) LengthSq() S {
	return v.Dot(v)
}

func (v Vector2[S]) Length() S {
	return sqrt(v.LengthSq())
}

func (v Vector2[S]) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
