// Package systems contains the ecs systems that drive the world entities.
package systems

import (
	"slices"

	"github.com/EngoEngine/ecs"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/models"
)

type movementEntity struct {
	*ecs.BasicEntity
	entity *models.Entity
}

// MovementSystem moves entities along their velocity on every update. Entities
// bounce off the world boundaries.
type MovementSystem struct {
	World *models.World

	entities []movementEntity
}

// Add registers e to be moved by the system.
func (s *MovementSystem) Add(basic *ecs.BasicEntity, e *models.Entity) {
	s.entities = append(s.entities, movementEntity{
		BasicEntity: basic,
		entity:      e,
	})
}

func (s *MovementSystem) Remove(basic ecs.BasicEntity) {
	s.entities = slices.DeleteFunc(s.entities, func(e movementEntity) bool {
		return e.ID() == basic.ID()
	})
}

func (s *MovementSystem) Len() int {
	return len(s.entities)
}

// Update moves every entity by its velocity times dt seconds.
func (s *MovementSystem) Update(dt float32) {
	volume := s.World.Volume()

	s.entities = slices.DeleteFunc(s.entities, func(me movementEntity) bool {
		v := me.entity.Velocity()
		if v.IsZero() {
			return false
		}

		pose, v := step(volume, me.entity.Pose(), v, float64(dt))
		me.entity.SetVelocity(v)

		err := s.World.Move(me.entity, pose)
		switch {
		case err == nil:
			return false

		case errors.IsType(err, models.ErrTypeEntityNotFound):
			logs.WithTag("entity_id", me.entity.ID).Debug("entity left the world, removing it from movement")
			return true

		default:
			logs.Warn(errors.New("moving entity failed").
				WithTag("entity_id", me.entity.ID).
				Wrap(err))
			return false
		}
	})
}

func step(volume collision.AABB[float64], p models.Pose, v models.Velocity, dt float64) (models.Pose, models.Velocity) {
	x, vx := bounce(p.X+v.X*dt, v.X, volume.TopLeft.X, volume.BottomRight.X)
	y, vy := bounce(p.Y+v.Y*dt, v.Y, volume.BottomRight.Y, volume.TopLeft.Y)

	v = models.Velocity{X: vx, Y: vy}
	return models.Pose{X: x, Y: y, Heading: v.Heading()}, v
}

// bounce reflects x back into [lo, hi], flipping the speed when it does.
func bounce(x, speed, lo, hi float64) (float64, float64) {
	switch {
	case x < lo:
		x = lo + (lo - x)
		speed = -speed
	case x > hi:
		x = hi - (x - hi)
		speed = -speed
	}
	return min(max(x, lo), hi), speed
}
