package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/models"
	"github.com/aukilabs/spatial/quadtree"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) *models.World {
	volume := collision.NewAABB(collision.NewPoint2(-10.0, 10), collision.NewPoint2(10.0, -10))
	w := models.NewWorld("test", volume, 4, time.Second)
	t.Cleanup(w.Close)

	for _, p := range []models.Pose{{X: -8, Y: 8}, {X: -1, Y: 1}, {X: 8, Y: -8}} {
		require.NoError(t, w.AddEntity(models.NewEntity(0, "test", p)))
	}
	return w
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeEntities(t *testing.T, w *httptest.ResponseRecorder) []uint32 {
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res EntitiesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "test", res.World)

	ids := make([]uint32, 0, len(res.Entities))
	for _, e := range res.Entities {
		ids = append(ids, e.ID)
	}
	return ids
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder, status int) ErrorResponse {
	require.Equal(t, status, w.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHandleEntities(t *testing.T) {
	world := newTestWorld(t)
	require.Equal(t, []uint32{1, 2, 3}, decodeEntities(t, get(t, HandleEntities(world), "/entities")))
}

func TestHandleNearby(t *testing.T) {
	world := newTestWorld(t)
	h := HandleNearby(world, false)

	t.Run("returns the entities of the reached leaves", func(t *testing.T) {
		ids := decodeEntities(t, get(t, h, "/entities/nearby?x=-8&y=8&radius=1"))
		require.Equal(t, []uint32{1, 2, 3}, ids)
	})

	t.Run("exact queries filter by distance", func(t *testing.T) {
		ids := decodeEntities(t, get(t, h, "/entities/nearby?x=-8&y=8&radius=1&exact=true"))
		require.Equal(t, []uint32{1}, ids)
	})

	t.Run("the default exactness applies", func(t *testing.T) {
		ids := decodeEntities(t, get(t, HandleNearby(world, true), "/entities/nearby?x=-8&y=8&radius=1"))
		require.Equal(t, []uint32{1}, ids)
	})

	t.Run("a missing parameter is a bad request", func(t *testing.T) {
		res := decodeError(t, get(t, h, "/entities/nearby?x=1&y=1"), http.StatusBadRequest)
		require.Equal(t, ErrTypeInvalidParameter, res.Type)
	})

	t.Run("a non finite parameter is a bad request", func(t *testing.T) {
		res := decodeError(t, get(t, h, "/entities/nearby?x=NaN&y=1&radius=1"), http.StatusBadRequest)
		require.Equal(t, ErrTypeInvalidParameter, res.Type)
	})

	t.Run("a negative radius is a bad request", func(t *testing.T) {
		res := decodeError(t, get(t, h, "/entities/nearby?x=1&y=1&radius=-1"), http.StatusBadRequest)
		require.Equal(t, ErrTypeInvalidParameter, res.Type)
	})

	t.Run("an invalid exact flag is a bad request", func(t *testing.T) {
		res := decodeError(t, get(t, h, "/entities/nearby?x=1&y=1&radius=1&exact=maybe"), http.StatusBadRequest)
		require.Equal(t, ErrTypeInvalidParameter, res.Type)
	})

	t.Run("only get is allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/entities/nearby", nil))
		res := decodeError(t, w, http.StatusMethodNotAllowed)
		require.Equal(t, ErrTypeMethodNotAllowed, res.Type)
		require.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	})
}

func TestHandleInBox(t *testing.T) {
	world := newTestWorld(t)
	h := HandleInBox(world, true)

	t.Run("returns the entities within the box", func(t *testing.T) {
		ids := decodeEntities(t, get(t, h, "/entities/box?left=-2&top=2&right=10&bottom=-10"))
		require.Equal(t, []uint32{2, 3}, ids)
	})

	t.Run("swapped corners are normalized", func(t *testing.T) {
		ids := decodeEntities(t, get(t, h, "/entities/box?left=10&top=-10&right=-2&bottom=2"))
		require.Equal(t, []uint32{2, 3}, ids)
	})

	t.Run("a missing bound is a bad request", func(t *testing.T) {
		res := decodeError(t, get(t, h, "/entities/box?left=-2&top=2&right=10"), http.StatusBadRequest)
		require.Equal(t, ErrTypeInvalidParameter, res.Type)
	})
}

func TestHandleDebug(t *testing.T) {
	world := newTestWorld(t)

	w := get(t, HandleDebug(world), "/debug/index")
	require.Equal(t, http.StatusOK, w.Code)

	var info quadtree.DebugInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.Equal(t, 3, info.Entities)
	require.Equal(t, 1, info.Leaves)
	require.Equal(t, []int{3}, info.Occupancy)
}
