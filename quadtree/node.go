package quadtree

import "github.com/aukilabs/spatial/collision"

// DebugInfo summarizes the shape of a tree.
type DebugInfo struct {
	Capacity  int   `json:"capacity"`
	Nodes     int   `json:"nodes"`
	Leaves    int   `json:"leaves"`
	Entities  int   `json:"entities"`
	Depth     int   `json:"depth"`
	MaxBucket int   `json:"max_bucket"`
	Occupancy []int `json:"occupancy"`
}

func (q *QuadTree[S, T]) Volume() collision.AABB[S] {
	return q.volume
}

func (q *QuadTree[S, T]) Capacity() int {
	return q.capacity
}

func (q *QuadTree[S, T]) IsLeaf() bool {
	return q.children == nil
}

// Children returns the NW, NE, SE and SW children, or nil for a leaf.
func (q *QuadTree[S, T]) Children() []*QuadTree[S, T] {
	if q.children == nil {
		return nil
	}
	return q.children[:]
}

// Bucket returns a copy of the entities stored in the node.
func (q *QuadTree[S, T]) Bucket() []T {
	bucket := make([]T, len(q.bucket))
	for i, e := range q.bucket {
		bucket[i] = e.value
	}
	return bucket
}

// Walk visits the nodes in pre-order. The children of a node are skipped when
// fn returns false.
func (q *QuadTree[S, T]) Walk(fn func(*QuadTree[S, T]) bool) {
	if !fn(q) || q.children == nil {
		return
	}

	for _, c := range q.children {
		c.Walk(fn)
	}
}

// Len returns the number of stored entities.
func (q *QuadTree[S, T]) Len() int {
	var n int
	q.Walk(func(node *QuadTree[S, T]) bool {
		n += len(node.bucket)
		return true
	})
	return n
}

// Depth returns the number of levels below and including q. A leaf has a
// depth of 1.
func (q *QuadTree[S, T]) Depth() int {
	if q.children == nil {
		return 1
	}

	var depth int
	for _, c := range q.children {
		depth = max(depth, c.Depth())
	}
	return depth + 1
}

// DebugInfo returns node counts and the bucket size of every leaf in
// pre-order.
func (q *QuadTree[S, T]) DebugInfo() DebugInfo {
	info := DebugInfo{
		Capacity:  q.capacity,
		Depth:     q.Depth(),
		Occupancy: []int{},
	}

	q.Walk(func(node *QuadTree[S, T]) bool {
		info.Nodes++
		if node.children != nil {
			return true
		}

		n := len(node.bucket)
		info.Leaves++
		info.Entities += n
		info.MaxBucket = max(info.MaxBucket, n)
		info.Occupancy = append(info.Occupancy, n)
		return true
	})

	return info
}
