package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDGeneratorNext(t *testing.T) {
	t.Run("returns sequential ids", func(t *testing.T) {
		var ids IDGenerator

		for i := 1; i <= 5; i++ {
			require.Equal(t, uint32(i), ids.Next())
		}
	})

	t.Run("returns released ids lowest first", func(t *testing.T) {
		var ids IDGenerator

		for i := 1; i <= 5; i++ {
			ids.Next()
		}

		ids.Release(4)
		ids.Release(2)
		ids.Release(2)
		require.Equal(t, uint32(2), ids.Next())
		require.Equal(t, uint32(4), ids.Next())
		require.Equal(t, uint32(6), ids.Next())
	})

	t.Run("ignores ids that were not handed out", func(t *testing.T) {
		var ids IDGenerator

		ids.Release(0)
		ids.Release(3)
		require.Equal(t, uint32(1), ids.Next())
	})
}

func TestIDGeneratorReserve(t *testing.T) {
	t.Run("skips reserved ids", func(t *testing.T) {
		var ids IDGenerator

		ids.Reserve(3)
		require.Equal(t, uint32(1), ids.Next())
		require.Equal(t, uint32(2), ids.Next())
		require.Equal(t, uint32(4), ids.Next())
	})

	t.Run("takes back a released id", func(t *testing.T) {
		var ids IDGenerator

		ids.Next()
		ids.Next()
		ids.Release(1)
		ids.Reserve(1)
		require.Equal(t, uint32(3), ids.Next())
	})
}
