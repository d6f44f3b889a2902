package collision

// Shape is implemented by every primitive that can be handed to Intersect.
type Shape[S Scalar] interface {
	// Bounds returns the smallest AABB enclosing the shape.
	Bounds() AABB[S]
}

// Line is a directed segment going from A to B. A zero-length line is valid
// and behaves as the point A.
type Line[S Scalar] struct {
	A Point2[S]
	B Point2[S]
}

func NewLine[S Scalar](a, b Point2[S]) Line[S] {
	return Line[S]{A: a, B: b}
}

// Direction returns the vector going from A to B.
func (l Line[S]) Direction() Vector2[S] {
	return l.B.Sub(l.A)
}

// At returns the point at the parameter t, A being at 0 and B at 1.
func (l Line[S]) At(t S) Point2[S] {
	return l.A.Add(l.Direction().Mul(t))
}

func (l Line[S]) IsZero() bool {
	return l.A == l.B
}

func (l Line[S]) Bounds() AABB[S] {
	return AABB[S]{
		TopLeft:     Point2[S]{X: minOf(l.A.X, l.B.X), Y: maxOf(l.A.Y, l.B.Y)},
		BottomRight: Point2[S]{X: maxOf(l.A.X, l.B.X), Y: minOf(l.A.Y, l.B.Y)},
	}
}

// Circle is a disc. A zero radius degenerates to the point Pos.
type Circle[S Scalar] struct {
	Pos    Point2[S]
	Radius S
}

// NewCircle returns a circle. Negative radiuses are treated as their absolute
// value.
func NewCircle[S Scalar](pos Point2[S], radius S) Circle[S] {
	return Circle[S]{Pos: pos, Radius: abs(radius)}
}

func (c Circle[S]) Bounds() AABB[S] {
	return AABB[S]{
		TopLeft:     Point2[S]{X: c.Pos.X - c.Radius, Y: c.Pos.Y + c.Radius},
		BottomRight: Point2[S]{X: c.Pos.X + c.Radius, Y: c.Pos.Y - c.Radius},
	}
}

// AABB is an axis aligned box. TopLeft holds the smallest x and the greatest
// y, BottomRight the greatest x and the smallest y.
type AABB[S Scalar] struct {
	TopLeft     Point2[S]
	BottomRight Point2[S]
}

// NewAABB returns the box spanned by the two given corners, whatever their
// order.
func NewAABB[S Scalar](a, b Point2[S]) AABB[S] {
	return AABB[S]{
		TopLeft:     Point2[S]{X: minOf(a.X, b.X), Y: maxOf(a.Y, b.Y)},
		BottomRight: Point2[S]{X: maxOf(a.X, b.X), Y: minOf(a.Y, b.Y)},
	}
}

func (b AABB[S]) Bounds() AABB[S] {
	return b
}

func (b AABB[S]) Width() S {
	return b.BottomRight.X - b.TopLeft.X
}

func (b AABB[S]) Height() S {
	return b.TopLeft.Y - b.BottomRight.Y
}

func (b AABB[S]) Center() Point2[S] {
	return Point2[S]{
		X: b.TopLeft.X + b.Width()/2,
		Y: b.BottomRight.Y + b.Height()/2,
	}
}

func (b AABB[S]) TopRight() Point2[S] {
	return Point2[S]{X: b.BottomRight.X, Y: b.TopLeft.Y}
}

func (b AABB[S]) BottomLeft() Point2[S] {
	return Point2[S]{X: b.TopLeft.X, Y: b.BottomRight.Y}
}

// Edges returns the four sides of the box in the top, right, bottom, left
// order, running clockwise.
func (b AABB[S]) Edges() [4]Line[S] {
	tr := b.TopRight()
	bl := b.BottomLeft()

	return [4]Line[S]{
		{A: b.TopLeft, B: tr},
		{A: tr, B: b.BottomRight},
		{A: b.BottomRight, B: bl},
		{A: bl, B: b.TopLeft},
	}
}

// Quadrants returns the four boxes that exactly quarter b, in the NW, NE, SE,
// SW order.
func (b AABB[S]) Quadrants() [4]AABB[S] {
	tl := b.TopLeft
	br := b.BottomRight
	hw := (br.X - tl.X) / 2
	hh := (br.Y - tl.Y) / 2
	mid := Point2[S]{X: tl.X + hw, Y: tl.Y + hh}

	return [4]AABB[S]{
		{TopLeft: tl, BottomRight: mid},
		{TopLeft: Point2[S]{X: mid.X, Y: tl.Y}, BottomRight: Point2[S]{X: br.X, Y: mid.Y}},
		{TopLeft: mid, BottomRight: br},
		{TopLeft: Point2[S]{X: tl.X, Y: mid.Y}, BottomRight: Point2[S]{X: mid.X, Y: br.Y}},
	}
}

func (p Point2[S]) Bounds() AABB[S] {
	return AABB[S]{TopLeft: p, BottomRight: p}
}
