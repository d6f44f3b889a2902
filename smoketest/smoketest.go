package smoketest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	spatialwebsocket "github.com/aukilabs/spatial/websocket"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

const (
	ErrTypeDialFailed       = "dial-failed"
	ErrTypeUnexpectedMsg    = "unexpected-msg"
	ErrTypeSmokeTestTimeout = "smoke-test-timeout"
)

// Options configures a smoke test against a feed endpoint.
type Options struct {
	// The websocket url of the feed, e.g. ws://localhost:4000/feed.
	Endpoint string

	// The origin sent in the handshake. Defaults to http://localhost.
	Origin string

	// The time given to the whole test. Defaults to 10 seconds.
	Timeout time.Duration
}

// Result describes the outcome of a smoke test.
type Result struct {
	Endpoint  string        `json:"endpoint"`
	Success   bool          `json:"success"`
	Latency   time.Duration `json:"latency"`
	Entities  int           `json:"entities"`
	ErrorType string        `json:"error_type,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// Run connects to the feed, checks that it answers a ping and that a
// subscription over the given area returns a nearby snapshot.
func Run(ctx context.Context, opts Options, x, y, radius float64) (Result, error) {
	if opts.Origin == "" {
		opts.Origin = "http://localhost"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 10
	}

	res := Result{Endpoint: opts.Endpoint}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	conf, err := websocket.NewConfig(opts.Endpoint, opts.Origin)
	if err != nil {
		return res.failed(errors.New("parsing endpoint failed").
			WithType(ErrTypeDialFailed).
			WithTag("endpoint", opts.Endpoint).
			Wrap(err))
	}

	conn, err := conf.DialContext(ctx)
	if err != nil {
		return res.failed(errors.New("dialing feed failed").
			WithType(ErrTypeDialFailed).
			WithTag("endpoint", opts.Endpoint).
			Wrap(err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	start := time.Now()
	pong, err := exchange(conn, spatialwebsocket.Request{Type: spatialwebsocket.MsgTypePing})
	if err != nil {
		return res.failed(err)
	}
	if pong.Type != spatialwebsocket.MsgTypePong {
		return res.failed(unexpectedMsg(spatialwebsocket.MsgTypePong, pong))
	}
	res.Latency = time.Since(start)

	nearby, err := exchange(conn, spatialwebsocket.Request{
		Type:   spatialwebsocket.MsgTypeSubscribe,
		X:      x,
		Y:      y,
		Radius: radius,
	})
	if err != nil {
		return res.failed(err)
	}
	if nearby.Type != spatialwebsocket.MsgTypeNearby {
		return res.failed(unexpectedMsg(spatialwebsocket.MsgTypeNearby, nearby))
	}

	res.Success = true
	res.Entities = len(nearby.Entities)
	return res, nil
}

func exchange(conn *websocket.Conn, req spatialwebsocket.Request) (spatialwebsocket.Response, error) {
	var res spatialwebsocket.Response

	if err := spatialwebsocket.JSON.Send(conn, req); err != nil {
		return res, errors.New("sending message failed").
			WithType(ErrTypeSmokeTestTimeout).
			WithTag("msg_type", req.Type).
			Wrap(err)
	}

	if err := spatialwebsocket.JSON.Receive(conn, &res); err != nil {
		return res, errors.New("receiving message failed").
			WithType(ErrTypeSmokeTestTimeout).
			WithTag("msg_type", req.Type).
			Wrap(err)
	}
	return res, nil
}

func unexpectedMsg(expected string, res spatialwebsocket.Response) error {
	return errors.New("unexpected message").
		WithType(ErrTypeUnexpectedMsg).
		WithTag("expected", expected).
		WithTag("received", res.Type).
		WithTag("error_type", res.ErrorType)
}

func (r Result) failed(err error) (Result, error) {
	r.Success = false
	r.ErrorType = errors.Type(err)
	r.Message = err.Error()
	return r, err
}

// HandleSmokeTest runs a smoke test against the configured endpoint and
// writes its result. The area defaults to the origin with a radius of 1 and
// can be set with the x, y and radius query parameters.
func HandleSmokeTest(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		x, y, radius := 0.0, 0.0, 1.0

		q := r.URL.Query()
		for name, v := range map[string]*float64{"x": &x, "y": &y, "radius": &radius} {
			s := q.Get(name)
			if s == "" {
				continue
			}

			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			*v = f
		}

		res, err := Run(r.Context(), opts, x, y, radius)
		status := http.StatusOK
		if err != nil {
			logs.WithTag("endpoint", opts.Endpoint).
				Warn(errors.New("smoke test failed").Wrap(err))
			status = http.StatusServiceUnavailable
		}

		b, err := json.Marshal(res)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(b)
	}
}
