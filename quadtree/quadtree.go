// Package quadtree implements a bucketed quadtree over positioned entities.
//
// A node is either a leaf holding up to its capacity of entities or an
// internal node with four children covering the NW, NE, SE and SW quarters of
// its volume. A leaf subdivides the first time an insert would exceed its
// capacity and never merges back.
//
// A QuadTree is not safe for concurrent use. Callers serialize mutations and
// queries.
package quadtree

import (
	"slices"

	"github.com/aukilabs/spatial/collision"
)

// The depth from which leaves stop subdividing and grow past their capacity.
// It bounds the tree when many entities share the same position.
const maxDepth = 32

// Positioned is the constraint for the entities stored in a QuadTree. Values
// are usually pointers shared with the entity owner.
type Positioned[S collision.Scalar] interface {
	comparable
	Position() collision.Point2[S]
}

// QuadTree is a node of the tree. The root is created with WithCapacity.
type QuadTree[S collision.Scalar, T Positioned[S]] struct {
	capacity int
	depth    int
	volume   collision.AABB[S]
	bucket   []entry[S, T]
	children *[4]*QuadTree[S, T]
}

// entry keeps the position an entity was routed with. Removals match on it so
// that an entity whose position changed in place can still be found.
type entry[S collision.Scalar, T Positioned[S]] struct {
	key   collision.Point2[S]
	value T
}

// WithCapacity returns a leaf covering volume. A capacity of 0 is coerced to
// 1.
func WithCapacity[S collision.Scalar, T Positioned[S]](volume collision.AABB[S], capacity int) *QuadTree[S, T] {
	if capacity <= 0 {
		capacity = 1
	}

	return &QuadTree[S, T]{
		capacity: capacity,
		volume:   volume,
	}
}

// Insert adds e at its current position. It returns false and leaves the tree
// untouched when the position is outside the tree volume.
func (q *QuadTree[S, T]) Insert(e T) bool {
	pos := e.Position()
	if !q.accepts(pos) {
		return false
	}
	return q.insert(entry[S, T]{key: pos, value: e})
}

func (q *QuadTree[S, T]) insert(e entry[S, T]) bool {
	if q.children == nil && len(q.bucket) >= q.capacity && q.depth < maxDepth {
		q.subdivide()
	}

	if q.children == nil {
		q.bucket = append(q.bucket, e)
		return true
	}

	for _, c := range q.children {
		if c.accepts(e.key) {
			return c.insert(e)
		}
	}
	return false
}

func (q *QuadTree[S, T]) subdivide() {
	var children [4]*QuadTree[S, T]
	for i, v := range q.volume.Quadrants() {
		children[i] = &QuadTree[S, T]{
			capacity: q.capacity,
			depth:    q.depth + 1,
			volume:   v,
		}
	}
	q.children = &children

	bucket := q.bucket
	q.bucket = nil
	for _, e := range bucket {
		q.insert(e)
	}
}

func (q *QuadTree[S, T]) accepts(p collision.Point2[S]) bool {
	return collision.AABBPoint(q.volume, p).Kind != collision.Outside
}

// RemoveKey removes and returns the first entity inserted at key.
func (q *QuadTree[S, T]) RemoveKey(key collision.Point2[S]) (T, bool) {
	return q.remove(key, func(T) bool { return true })
}

// Update removes the entity stored at old and inserts e at its current
// position. Nothing is inserted when no entity is stored at old. When the new
// position is outside the tree volume, the removed entity is dropped and
// false is returned.
func (q *QuadTree[S, T]) Update(old collision.Point2[S], e T) bool {
	if _, ok := q.RemoveKey(old); !ok {
		return false
	}
	return q.Insert(e)
}

// Remove removes e from key, leaving other entities sharing that position in
// place.
func (q *QuadTree[S, T]) Remove(key collision.Point2[S], e T) bool {
	_, ok := q.remove(key, func(v T) bool { return v == e })
	return ok
}

// Relocate is like Update but only removes e itself from old. It is meant for
// entities whose position is changed in place.
func (q *QuadTree[S, T]) Relocate(old collision.Point2[S], e T) bool {
	if !q.Remove(old, e) {
		return false
	}
	return q.Insert(e)
}

func (q *QuadTree[S, T]) remove(key collision.Point2[S], match func(T) bool) (T, bool) {
	var zero T

	if !q.accepts(key) {
		return zero, false
	}

	if q.children == nil {
		for i, e := range q.bucket {
			if e.key == key && match(e.value) {
				q.bucket = slices.Delete(q.bucket, i, i+1)
				return e.value, true
			}
		}
		return zero, false
	}

	for _, c := range q.children {
		if v, ok := c.remove(key, match); ok {
			return v, true
		}
	}
	return zero, false
}

// GetInRadius returns the entities of every leaf whose volume is not outside
// c. Entities are not filtered individually: the result can contain entities
// outside the circle.
func (q *QuadTree[S, T]) GetInRadius(c collision.Circle[S]) []T {
	var res []T
	q.collect(func(v collision.AABB[S]) bool {
		return collision.CircleAABB(c, v).Kind != collision.Outside
	}, &res)
	return res
}

// GetInBox returns the entities of every leaf whose volume is not outside b.
// As with GetInRadius, entities are not filtered individually.
func (q *QuadTree[S, T]) GetInBox(b collision.AABB[S]) []T {
	var res []T
	q.collect(func(v collision.AABB[S]) bool {
		return collision.AABBAABB(b, v).Kind != collision.Outside
	}, &res)
	return res
}

func (q *QuadTree[S, T]) collect(hit func(collision.AABB[S]) bool, res *[]T) {
	if !hit(q.volume) {
		return
	}

	if q.children == nil {
		for _, e := range q.bucket {
			*res = append(*res, e.value)
		}
		return
	}

	for _, c := range q.children {
		c.collect(hit, res)
	}
}
