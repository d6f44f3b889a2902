package collision

// Kind tags an Intersection.
type Kind int

const (
	// The shapes do not share any point.
	Outside Kind = iota

	// The other shape lies entirely inside self.
	Inside

	// Self lies entirely inside the other shape.
	InverseContain

	// Lines only: the lines have the same direction but are not collinear.
	Parallel

	// The shapes cross at one or two points.
	Intersects

	// The shapes share a whole region delimited by two points: the shared
	// sub-segment of collinear lines, or the overlap of two boxes given by its
	// top left and bottom right corners.
	Overlap

	// The shapes cross at any number of points.
	IntersectsN
)

func (k Kind) String() string {
	switch k {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case InverseContain:
		return "inverse-contain"
	case Parallel:
		return "parallel"
	case Intersects:
		return "intersects"
	case Overlap:
		return "overlap"
	case IntersectsN:
		return "intersects-n"
	default:
		return "unknown"
	}
}

// Intersection is the outcome of a pairwise test. Which fields are set
// depends on Kind:
//   - Intersects: P, and Q when HasQ is true.
//   - Overlap: P and Q.
//   - IntersectsN: Points.
type Intersection[S Scalar] struct {
	Kind   Kind
	P      Point2[S]
	Q      Point2[S]
	HasQ   bool
	Points []Point2[S]
}

func outside[S Scalar]() Intersection[S] {
	return Intersection[S]{Kind: Outside}
}

func inside[S Scalar]() Intersection[S] {
	return Intersection[S]{Kind: Inside}
}

func inverseContain[S Scalar]() Intersection[S] {
	return Intersection[S]{Kind: InverseContain}
}

func parallel[S Scalar]() Intersection[S] {
	return Intersection[S]{Kind: Parallel}
}

func intersectsAt[S Scalar](p Point2[S]) Intersection[S] {
	return Intersection[S]{Kind: Intersects, P: p}
}

func intersectsAt2[S Scalar](p, q Point2[S]) Intersection[S] {
	return Intersection[S]{Kind: Intersects, P: p, Q: q, HasQ: true}
}

func overlap[S Scalar](p, q Point2[S]) Intersection[S] {
	return Intersection[S]{Kind: Overlap, P: p, Q: q, HasQ: true}
}

func intersectsN[S Scalar](points []Point2[S]) Intersection[S] {
	return Intersection[S]{Kind: IntersectsN, Points: points}
}

// Hit reports whether the shapes share at least one point.
func (i Intersection[S]) Hit() bool {
	return i.Kind != Outside && i.Kind != Parallel
}

func (i Intersection[S]) IsOutside() bool {
	return i.Kind == Outside
}

func (i Intersection[S]) IsInside() bool {
	return i.Kind == Inside
}

// ContactPoints returns the contact points carried by the result, in order.
func (i Intersection[S]) ContactPoints() []Point2[S] {
	switch i.Kind {
	case Intersects, Overlap:
		if i.HasQ {
			return []Point2[S]{i.P, i.Q}
		}
		return []Point2[S]{i.P}

	case IntersectsN:
		return i.Points

	default:
		return nil
	}
}

// Inverse returns the result seen from the other shape: Inside and
// InverseContain are swapped, the rest is kept as is.
func (i Intersection[S]) Inverse() Intersection[S] {
	switch i.Kind {
	case Inside:
		i.Kind = InverseContain
	case InverseContain:
		i.Kind = Inside
	}
	return i
}

func (i Intersection[S]) String() string {
	s := i.Kind.String()
	for _, p := range i.ContactPoints() {
		s += " " + p.String()
	}
	return s
}
