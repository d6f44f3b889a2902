package models

import (
	"math"
	"sync"

	"github.com/aukilabs/spatial/collision"
)

// Entity is an object positioned in a world.
type Entity struct {
	ID      uint32
	OwnerID uint32
	Kind    string

	mutex    sync.RWMutex
	pose     Pose
	velocity Velocity
}

// NewEntity returns an entity with the given pose. Its id is set when it is
// added to a world.
func NewEntity(ownerID uint32, kind string, pose Pose) *Entity {
	return &Entity{
		OwnerID: ownerID,
		Kind:    kind,
		pose:    pose,
	}
}

func (e *Entity) SetPose(v Pose) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.pose = v
}

func (e *Entity) Pose() Pose {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.pose
}

func (e *Entity) SetVelocity(v Velocity) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.velocity = v
}

func (e *Entity) Velocity() Velocity {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.velocity
}

// Position returns the spatial key of the entity.
func (e *Entity) Position() collision.Point2[float64] {
	return e.Pose().Position()
}

// Snapshot returns a copy of the entity state suited for encoding.
func (e *Entity) Snapshot() EntitySnapshot {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return EntitySnapshot{
		ID:       e.ID,
		OwnerID:  e.OwnerID,
		Kind:     e.Kind,
		Pose:     e.pose,
		Velocity: e.velocity,
	}
}

func Snapshots(entities []*Entity) []EntitySnapshot {
	snapshots := make([]EntitySnapshot, len(entities))
	for i, e := range entities {
		snapshots[i] = e.Snapshot()
	}
	return snapshots
}

// EntitySnapshot is the encoded form of an entity.
type EntitySnapshot struct {
	ID       uint32   `json:"id"`
	OwnerID  uint32   `json:"owner_id,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Pose     Pose     `json:"pose"`
	Velocity Velocity `json:"velocity"`
}

// Pose is a position on the world plane with a heading in radians.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

func (p Pose) Position() collision.Point2[float64] {
	return collision.NewPoint2(p.X, p.Y)
}

// Velocity is expressed in world units per second.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Heading returns the direction of the velocity in radians.
func (v Velocity) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
