package models

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/quadtree"
	"github.com/google/uuid"
)

const (
	ErrTypeOutOfBounds    = "out-of-bounds"
	ErrTypeEntityNotFound = "entity-not-found"
	ErrTypeEntityExists   = "entity-exists"
)

// World is a registry of entities indexed by position. Entities are moved
// through the world so that the index follows them.
type World struct {
	UUID string
	Name string

	ids      IDGenerator
	mutex    sync.RWMutex
	entities map[uint32]*Entity
	keys     map[uint32]collision.Point2[float64]
	index    *quadtree.QuadTree[float64, *Entity]

	frame           atomic.Uint64
	startFrameOnce  sync.Once
	closeFrameChan  chan struct{}
	frameTicker     *time.Ticker
	frameHandlerIDs IDGenerator
	frameHandlers   map[uint32]func(frame uint64)
	frameMutex      sync.RWMutex

	closeOnce sync.Once
}

// NewWorld returns a world covering volume. The index leaves hold up to
// capacity entities before subdividing.
func NewWorld(name string, volume collision.AABB[float64], capacity int, frameDuration time.Duration) *World {
	return &World{
		UUID:           uuid.New().String(),
		Name:           name,
		entities:       make(map[uint32]*Entity),
		keys:           make(map[uint32]collision.Point2[float64]),
		index:          quadtree.WithCapacity[float64, *Entity](volume, capacity),
		closeFrameChan: make(chan struct{}, 1),
		frameTicker:    time.NewTicker(frameDuration),
		frameHandlers:  make(map[uint32]func(uint64)),
	}
}

func (w *World) Close() {
	w.closeOnce.Do(func() {
		w.frameTicker.Stop()
		w.closeFrameChan <- struct{}{}
	})
}

func (w *World) Volume() collision.AABB[float64] {
	return w.index.Volume()
}

// AddEntity indexes e. An entity without id gets a new one.
func (w *World) AddEntity(e *Entity) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.entities[e.ID]; ok && e.ID != 0 {
		return errors.New("entity is already added").
			WithType(ErrTypeEntityExists).
			WithTag("entity_id", e.ID)
	}

	pos := e.Position()
	if !w.index.Insert(e) {
		instrumentDroppedInsert(w.Name)
		logs.WithTag("world", w.Name).
			WithTag("entity_id", e.ID).
			WithTag("position", pos.String()).
			Debug("entity dropped by the index")

		return errors.New("entity is outside of the world").
			WithType(ErrTypeOutOfBounds).
			WithTag("entity_id", e.ID).
			WithTag("position", pos.String())
	}

	if e.ID == 0 {
		e.ID = w.ids.Next()
	} else {
		w.ids.Reserve(e.ID)
	}

	w.entities[e.ID] = e
	w.keys[e.ID] = pos
	instrumentEntityGauge(w.Name, len(w.entities))
	return nil
}

func (w *World) RemoveEntity(id uint32) (*Entity, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}

	w.index.Remove(w.keys[id], e)
	delete(w.entities, id)
	delete(w.keys, id)
	w.ids.Release(id)

	instrumentEntityGauge(w.Name, len(w.entities))
	return e, true
}

func (w *World) EntityByID(id uint32) (*Entity, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	e, ok := w.entities[id]
	return e, ok
}

// Entities returns the entities ordered by id.
func (w *World) Entities() []*Entity {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	entities := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		entities = append(entities, e)
	}
	sortByID(entities)
	return entities
}

func (w *World) EntityCount() int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return len(w.entities)
}

// MoveEntity sets the pose of an entity and relocates it in the index. A
// pose outside of the world is rejected and leaves the entity untouched.
func (w *World) MoveEntity(id uint32, p Pose) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	e, ok := w.entities[id]
	if !ok {
		return errors.New("entity not found").
			WithType(ErrTypeEntityNotFound).
			WithTag("entity_id", id)
	}
	return w.move(e, p)
}

// Move is like MoveEntity but only moves e itself. An entity that was removed
// from the world is reported as not found, even when its id was given to
// another entity since.
func (w *World) Move(e *Entity, p Pose) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if cur, ok := w.entities[e.ID]; !ok || cur != e {
		return errors.New("entity not found").
			WithType(ErrTypeEntityNotFound).
			WithTag("entity_id", e.ID)
	}
	return w.move(e, p)
}

func (w *World) move(e *Entity, p Pose) error {
	id := e.ID
	pos := p.Position()
	if collision.AABBPoint(w.index.Volume(), pos).IsOutside() {
		return errors.New("pose is outside of the world").
			WithType(ErrTypeOutOfBounds).
			WithTag("entity_id", id).
			WithTag("position", pos.String())
	}

	e.SetPose(p)
	if !w.index.Relocate(w.keys[id], e) {
		return errors.Newf("relocating entity %v failed", id).
			WithTag("from", w.keys[id].String()).
			WithTag("to", pos.String())
	}
	w.keys[id] = pos
	return nil
}

// Nearby returns the entities stored in the index leaves reached by c. When
// exact is true, entities outside of c are filtered out.
func (w *World) Nearby(c collision.Circle[float64], exact bool) []*Entity {
	defer instrumentQuery(w.Name, queryRadius, time.Now())

	w.mutex.RLock()
	entities := w.index.GetInRadius(c)
	w.mutex.RUnlock()

	if exact {
		entities = slices.DeleteFunc(entities, func(e *Entity) bool {
			return collision.CirclePoint(c, e.Position()).IsOutside()
		})
	}
	sortByID(entities)
	return entities
}

// InBox returns the entities stored in the index leaves reached by b. When
// exact is true, entities outside of b are filtered out.
func (w *World) InBox(b collision.AABB[float64], exact bool) []*Entity {
	defer instrumentQuery(w.Name, queryBox, time.Now())

	w.mutex.RLock()
	entities := w.index.GetInBox(b)
	w.mutex.RUnlock()

	if exact {
		entities = slices.DeleteFunc(entities, func(e *Entity) bool {
			return collision.AABBPoint(b, e.Position()).IsOutside()
		})
	}
	sortByID(entities)
	return entities
}

func (w *World) DebugInfo() quadtree.DebugInfo {
	w.mutex.RLock()
	info := w.index.DebugInfo()
	w.mutex.RUnlock()

	instrumentIndex(w.Name, info)
	return info
}

// Frame returns the number of frames dispatched so far.
func (w *World) Frame() uint64 {
	return w.frame.Load()
}

// HandleFrame registers h to be called on every frame. The returned function
// unregisters it.
func (w *World) HandleFrame(h func(frame uint64)) (cancel func()) {
	w.frameMutex.Lock()
	defer w.frameMutex.Unlock()

	id := w.frameHandlerIDs.Next()
	w.frameHandlers[id] = h

	return func() {
		w.frameMutex.Lock()
		defer w.frameMutex.Unlock()

		delete(w.frameHandlers, id)
		w.frameHandlerIDs.Release(id)
	}
}

// StartDispatchFrames calls the frame handlers on every tick until the world
// is closed.
func (w *World) StartDispatchFrames() {
	w.startFrameOnce.Do(func() {
		logs.WithTag("world", w.Name).
			WithTag("world_uuid", w.UUID).
			Info("starting frames")

		for {
			select {
			case <-w.closeFrameChan:
				logs.WithTag("world", w.Name).Info("stopping frames")
				return

			case <-w.frameTicker.C:
				w.dispatchFrame()
			}
		}
	})
}

func (w *World) dispatchFrame() {
	frame := w.frame.Add(1)

	w.frameMutex.RLock()
	defer w.frameMutex.RUnlock()

	for _, h := range w.frameHandlers {
		h(frame)
	}
}

func sortByID(entities []*Entity) {
	slices.SortFunc(entities, func(a, b *Entity) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
