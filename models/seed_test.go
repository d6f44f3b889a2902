package models

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aukilabs/spatial/collision"
	"github.com/stretchr/testify/require"
)

func TestDecodeSeed(t *testing.T) {
	t.Run("entities are decoded", func(t *testing.T) {
		entities, err := DecodeSeed(strings.NewReader(`[
			{"id": 7, "owner_id": 1, "kind": "drone", "pose": {"x": 1, "y": 2, "heading": 0.5}, "velocity": {"x": 3, "y": 4}},
			{"kind": "tree", "pose": {"x": -1, "y": -2}}
		]`))
		require.NoError(t, err)
		require.Len(t, entities, 2)

		require.Equal(t, uint32(7), entities[0].ID)
		require.Equal(t, uint32(1), entities[0].OwnerID)
		require.Equal(t, "drone", entities[0].Kind)
		require.Equal(t, Pose{X: 1, Y: 2, Heading: 0.5}, entities[0].Pose())
		require.Equal(t, Velocity{X: 3, Y: 4}, entities[0].Velocity())

		require.Zero(t, entities[1].ID)
		require.True(t, entities[1].Velocity().IsZero())
	})

	t.Run("malformed seeds are rejected", func(t *testing.T) {
		_, err := DecodeSeed(strings.NewReader(`{"id": 1}`))
		require.Error(t, err)
	})
}

func TestRandomEntities(t *testing.T) {
	volume := collision.NewAABB(collision.NewPoint2(-10.0, 10), collision.NewPoint2(10.0, -10))
	entities := RandomEntities(rand.New(rand.NewSource(1)), 100, volume, 2)
	require.Len(t, entities, 100)

	for _, e := range entities {
		require.False(t, collision.AABBPoint(volume, e.Position()).IsOutside())

		v := e.Velocity()
		require.LessOrEqual(t, v.X*v.X+v.Y*v.Y, 4.0+1e-9)
	}
}
