package models

import (
	"slices"
	"sync"
)

// IDGenerator hands out sequential ids starting at 1. Released ids are handed
// out again, lowest first, before new ones are allocated.
type IDGenerator struct {
	mutex    sync.Mutex
	last     uint32
	released []uint32
}

// Next returns an unused id.
func (g *IDGenerator) Next() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if len(g.released) != 0 {
		id := g.released[0]
		g.released = g.released[1:]
		return id
	}

	g.last++
	return g.last
}

// Release marks id as reusable. Ids that were never handed out or that are
// already released are ignored.
func (g *IDGenerator) Release(id uint32) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if id == 0 || id > g.last {
		return
	}

	i, found := slices.BinarySearch(g.released, id)
	if found {
		return
	}
	g.released = slices.Insert(g.released, i, id)
}

// Reserve marks id as used so that Next never returns it. It is used when
// entities come with their own ids.
func (g *IDGenerator) Reserve(id uint32) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if id == 0 {
		return
	}

	if i, found := slices.BinarySearch(g.released, id); found {
		g.released = slices.Delete(g.released, i, i+1)
		return
	}

	for g.last < id-1 {
		g.last++
		g.released = append(g.released, g.last)
	}
	if g.last < id {
		g.last = id
	}
}
