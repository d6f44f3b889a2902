package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() config {
	return config{
		FrameDuration: time.Millisecond * 50,
		World: worldConfig{
			Name:     "test",
			Left:     -10,
			Top:      10,
			Right:    10,
			Bottom:   -10,
			Capacity: 4,
		},
		Seed: seedConfig{
			MaxSpeed: 1,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("a valid config passes", func(t *testing.T) {
		require.NoError(t, validateConfig(testConfig()))
	})

	t.Run("an inverted world is rejected", func(t *testing.T) {
		conf := testConfig()
		conf.World.Left = 20
		require.Error(t, validateConfig(conf))

		conf = testConfig()
		conf.World.Top = -20
		require.Error(t, validateConfig(conf))
	})

	t.Run("a zero capacity is rejected", func(t *testing.T) {
		conf := testConfig()
		conf.World.Capacity = 0
		require.Error(t, validateConfig(conf))
	})

	t.Run("a zero frame duration is rejected", func(t *testing.T) {
		conf := testConfig()
		conf.FrameDuration = 0
		require.Error(t, validateConfig(conf))
	})

	t.Run("a negative seed count is rejected", func(t *testing.T) {
		conf := testConfig()
		conf.Seed.Count = -1
		require.Error(t, validateConfig(conf))
	})
}

const testSeed = `[{"id": 3, "kind": "drone", "pose": {"x": 1, "y": 1}}]`

func TestSeedEntities(t *testing.T) {
	t.Run("random entities are added", func(t *testing.T) {
		conf := testConfig()
		conf.Seed.Count = 5

		entities, err := seedEntities(context.Background(), conf, http.DefaultClient)
		require.NoError(t, err)
		require.Len(t, entities, 5)
	})

	t.Run("entities are read from a file", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(filename, []byte(testSeed), 0o600))

		conf := testConfig()
		conf.Seed.File = filename
		conf.Seed.Count = 2

		entities, err := seedEntities(context.Background(), conf, http.DefaultClient)
		require.NoError(t, err)
		require.Len(t, entities, 3)
		require.Equal(t, uint32(3), entities[0].ID)
		require.Equal(t, "drone", entities[0].Kind)
	})

	t.Run("entities are fetched from a url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(testSeed))
		}))
		defer server.Close()

		conf := testConfig()
		conf.Seed.File = server.URL

		entities, err := seedEntities(context.Background(), conf, server.Client())
		require.NoError(t, err)
		require.Len(t, entities, 1)
	})

	t.Run("a failing url is reported", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		conf := testConfig()
		conf.Seed.File = server.URL

		_, err := seedEntities(context.Background(), conf, server.Client())
		require.Error(t, err)
	})

	t.Run("a missing file is reported", func(t *testing.T) {
		conf := testConfig()
		conf.Seed.File = filepath.Join(t.TempDir(), "missing.json")

		_, err := seedEntities(context.Background(), conf, http.DefaultClient)
		require.Error(t, err)
	})
}

func TestFeedEndpoint(t *testing.T) {
	require.Equal(t, "ws://localhost:4000/feed", feedEndpoint(":4000"))
	require.Equal(t, "ws://10.0.0.1:4000/feed", feedEndpoint("10.0.0.1:4000"))
}
