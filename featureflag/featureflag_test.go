package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{" exact_radius_query", "", "feature2"})

	t.Run("run if enabled", func(t *testing.T) {
		var runExact bool
		f.IfSet(FlagExactRadiusQuery, func() {
			runExact = true
		})
		require.True(t, runExact)

		var runMovement bool
		f.IfSet(FlagDisableMovement, func() {
			runMovement = true
		})
		require.False(t, runMovement)
	})

	t.Run("run if disabled", func(t *testing.T) {
		var runExact bool
		f.IfNotSet(FlagExactRadiusQuery, func() {
			runExact = true
		})
		require.False(t, runExact)

		var runMovement bool
		f.IfNotSet(FlagDisableMovement, func() {
			runMovement = true
		})
		require.True(t, runMovement)
	})

	t.Run("empty flags are ignored", func(t *testing.T) {
		require.Len(t, f, 2)
	})

	t.Run("unknown flags are reported", func(t *testing.T) {
		require.Equal(t, []string{"FEATURE2"}, f.Unknown())
	})
}
