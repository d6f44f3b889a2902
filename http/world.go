package http

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/models"
	"github.com/segmentio/encoding/json"
)

const (
	ErrTypeInvalidParameter = "invalid-parameter"
	ErrTypeMethodNotAllowed = "method-not-allowed"
)

// EntitiesResponse is the body returned by the entity queries.
type EntitiesResponse struct {
	World    string                  `json:"world"`
	Frame    uint64                  `json:"frame"`
	Entities []models.EntitySnapshot `json:"entities"`
}

// ErrorResponse is the body returned when a request fails.
type ErrorResponse struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// HandleEntities returns every entity of the world.
func HandleEntities(world *models.World) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}
		writeEntities(w, world, world.Entities())
	}
}

// HandleNearby answers GET ?x=&y=&radius=[&exact=] with the entities around a
// point. Without exact, the defaultExact value applies.
func HandleNearby(world *models.World, defaultExact bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}

		q := r.URL.Query()
		x, err := floatParam(q, "x")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		y, err := floatParam(q, "y")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		radius, err := floatParam(q, "radius")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if radius < 0 {
			writeError(w, http.StatusBadRequest, errors.New("radius is negative").
				WithType(ErrTypeInvalidParameter).
				WithTag("radius", radius))
			return
		}
		exact, err := boolParam(q, "exact", defaultExact)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		c := collision.NewCircle(collision.NewPoint2(x, y), radius)
		writeEntities(w, world, world.Nearby(c, exact))
	}
}

// HandleInBox answers GET ?left=&top=&right=&bottom=[&exact=] with the entities
// within a box.
func HandleInBox(world *models.World, defaultExact bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}

		q := r.URL.Query()
		var bounds [4]float64
		for i, name := range []string{"left", "top", "right", "bottom"} {
			v, err := floatParam(q, name)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			bounds[i] = v
		}
		exact, err := boolParam(q, "exact", defaultExact)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		b := collision.NewAABB(
			collision.NewPoint2(bounds[0], bounds[1]),
			collision.NewPoint2(bounds[2], bounds[3]),
		)
		writeEntities(w, world, world.InBox(b, exact))
	}
}

// HandleDebug returns the shape of the world index.
func HandleDebug(world *models.World) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGet(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, world.DebugInfo())
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}

	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed").
		WithType(ErrTypeMethodNotAllowed).
		WithTag("method", r.Method))
	return false
}

func floatParam(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, errors.New("missing parameter").
			WithType(ErrTypeInvalidParameter).
			WithTag("parameter", name)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("parameter is not a finite number").
			WithType(ErrTypeInvalidParameter).
			WithTag("parameter", name).
			WithTag("value", s)
	}
	return v, nil
}

func boolParam(q url.Values, name string, defaultValue bool) (bool, error) {
	s := q.Get(name)
	if s == "" {
		return defaultValue, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("parameter is not a boolean").
			WithType(ErrTypeInvalidParameter).
			WithTag("parameter", name).
			WithTag("value", s)
	}
	return v, nil
}

func writeEntities(w http.ResponseWriter, world *models.World, entities []*models.Entity) {
	writeJSON(w, http.StatusOK, EntitiesResponse{
		World:    world.Name,
		Frame:    world.Frame(),
		Entities: models.Snapshots(entities),
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	logs.WithTag("status", status).Debug(err)

	writeJSON(w, status, ErrorResponse{
		Type:    errors.Type(err),
		Message: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logs.Error(errors.New("encoding response failed").Wrap(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
