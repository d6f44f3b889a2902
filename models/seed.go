package models

import (
	"io"
	"math"
	"math/rand"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/spatial/collision"
	"github.com/segmentio/encoding/json"
)

// DecodeSeed reads a JSON list of entity snapshots and returns the matching
// entities. Ids are kept when set.
func DecodeSeed(r io.Reader) ([]*Entity, error) {
	var snapshots []EntitySnapshot
	if err := json.NewDecoder(r).Decode(&snapshots); err != nil {
		return nil, errors.New("decoding seed failed").Wrap(err)
	}

	entities := make([]*Entity, len(snapshots))
	for i, s := range snapshots {
		e := NewEntity(s.OwnerID, s.Kind, s.Pose)
		e.ID = s.ID
		e.SetVelocity(s.Velocity)
		entities[i] = e
	}
	return entities, nil
}

// RandomEntities returns n entities spread over volume, moving in random
// directions at up to maxSpeed.
func RandomEntities(rnd *rand.Rand, n int, volume collision.AABB[float64], maxSpeed float64) []*Entity {
	entities := make([]*Entity, n)
	for i := range entities {
		angle := rnd.Float64() * 2 * math.Pi
		speed := rnd.Float64() * maxSpeed

		v := Velocity{
			X: math.Cos(angle) * speed,
			Y: math.Sin(angle) * speed,
		}

		e := NewEntity(0, "random", Pose{
			X:       volume.TopLeft.X + rnd.Float64()*volume.Width(),
			Y:       volume.BottomRight.Y + rnd.Float64()*volume.Height(),
			Heading: v.Heading(),
		})
		e.SetVelocity(v)
		entities[i] = e
	}
	return entities
}
