// Package websocket implements the realtime proximity feed: clients subscribe
// to an area and receive the entities within it on every world frame.
package websocket

import (
	"context"
	"io"
	"math"
	"net"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/spatial/collision"
	"github.com/aukilabs/spatial/models"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

const (
	sendChanSize       = 64
	defaultIdleTimeout = time.Minute * 5
)

type Options struct {
	// The time a client can stay without sending messages before being
	// disconnected.
	IdleTimeout time.Duration

	// Whether subscriptions filter entities by distance when the client does
	// not say.
	DefaultExact bool
}

// Handle serves the proximity feed on conn until the client disconnects, stays
// idle for too long, or ctx is done.
func Handle(ctx context.Context, conn *websocket.Conn, world *models.World, opts Options) {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}

	h := handler{
		conn:  conn,
		world: world,
		opts:  opts,
	}

	h.handle(ctx)
}

type subscription struct {
	area  collision.Circle[float64]
	exact bool
}

type inbound struct {
	req Request
	err error
}

type handler struct {
	conn  *websocket.Conn
	world *models.World
	opts  Options

	sendChan       chan Response
	receiveChan    chan inbound
	disconnectChan chan error
	frames         chan uint64

	subscription *subscription
	received     int
	sent         int
}

func (h *handler) handle(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	instrumentConnect()
	defer instrumentDisconnect()

	logs.WithTag("remote_addr", h.remoteAddr()).
		WithTag("world", h.world.Name).
		Info("new client is connected")

	h.disconnectChan = make(chan error, 8)
	h.sendChan = make(chan Response, sendChanSize)
	h.receiveChan = make(chan inbound)
	h.frames = make(chan uint64, 1)

	cancelFrames := h.world.HandleFrame(func(frame uint64) {
		select {
		case h.frames <- frame:
		default:
		}
	})
	defer cancelFrames()

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()
	defer h.conn.Close()

	wg.Add(1)
	go func() {
		defer wg.Done()
		h.startSending(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		h.startReceiving(ctx)
	}()

	idleTimer := time.NewTimer(h.opts.IdleTimeout)
	defer idleTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			h.handleDisconnect(ctx.Err())
			return

		case <-idleTimer.C:
			h.handleDisconnect(errors.New("idle connection").
				WithTag("duration", h.opts.IdleTimeout))
			return

		case in := <-h.receiveChan:
			idleTimer.Stop()
			idleTimer.Reset(h.opts.IdleTimeout)

			if in.err != nil {
				h.sendError(in.err)
				continue
			}
			h.handleRequest(in.req)

		case frame := <-h.frames:
			h.sendNearby(frame)

		case err := <-h.disconnectChan:
			h.handleDisconnect(err)
			return
		}
	}
}

func (h *handler) startSending(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case res := <-h.sendChan:
			if err := JSON.Send(h.conn, res); err != nil {
				h.disconnect(errors.New("sending message failed").Wrap(err))
				return
			}
			instrumentSentMsg(res.Type)
		}
	}
}

func (h *handler) startReceiving(ctx context.Context) {
	for {
		var data []byte
		if err := websocket.Message.Receive(h.conn, &data); err != nil {
			h.disconnect(errors.New("receiving message failed").Wrap(err))
			return
		}

		var in inbound
		if err := json.Unmarshal(data, &in.req); err != nil {
			in.err = errors.New("invalid message").
				WithType(ErrTypeInvalidMsg).
				Wrap(err)
		}

		select {
		case <-ctx.Done():
			return
		case h.receiveChan <- in:
		}
	}
}

func (h *handler) handleRequest(req Request) {
	h.received++
	instrumentReceivedMsg(req.Type)

	switch req.Type {
	case MsgTypeSubscribe:
		if err := validateSubscribe(req); err != nil {
			h.sendError(err)
			return
		}

		exact := h.opts.DefaultExact
		if req.Exact != nil {
			exact = *req.Exact
		}

		h.subscription = &subscription{
			area:  collision.NewCircle(collision.NewPoint2(req.X, req.Y), req.Radius),
			exact: exact,
		}
		h.sendNearby(h.world.Frame())

	case MsgTypeUnsubscribe:
		h.subscription = nil

	case MsgTypePing:
		h.send(Response{Type: MsgTypePong, Frame: h.world.Frame()})

	default:
		h.sendError(errors.New("unknown message type").
			WithType(ErrTypeUnknownMsg).
			WithTag("msg_type", req.Type))
	}
}

func validateSubscribe(req Request) error {
	for _, v := range []float64{req.X, req.Y, req.Radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("subscription is not finite").
				WithType(ErrTypeInvalidMsg)
		}
	}

	if req.Radius < 0 {
		return errors.New("subscription radius is negative").
			WithType(ErrTypeInvalidMsg).
			WithTag("radius", req.Radius)
	}
	return nil
}

func (h *handler) sendNearby(frame uint64) {
	if h.subscription == nil {
		return
	}

	entities := h.world.Nearby(h.subscription.area, h.subscription.exact)
	h.send(Response{
		Type:     MsgTypeNearby,
		Frame:    frame,
		Entities: models.Snapshots(entities),
	})
}

func (h *handler) sendError(err error) {
	logs.WithTag("remote_addr", h.remoteAddr()).Debug(err)

	h.send(Response{
		Type:      MsgTypeError,
		ErrorType: errors.Type(err),
		Message:   err.Error(),
	})
}

// send queues res. Messages are dropped when the client does not keep up.
func (h *handler) send(res Response) {
	select {
	case h.sendChan <- res:
		h.sent++
	default:
		instrumentDroppedMsg(res.Type)
	}
}

func (h *handler) disconnect(err error) {
	select {
	case h.disconnectChan <- err:
	default:
	}
}

func (h *handler) handleDisconnect(err error) {
	h.conn.Close()

	entry := logs.WithTag("remote_addr", h.remoteAddr()).
		WithTag("world", h.world.Name).
		WithTag("received_msgs", h.received).
		WithTag("sent_msgs", h.sent)

	if err != nil &&
		!errors.Is(err, io.EOF) &&
		!errors.Is(err, net.ErrClosed) &&
		!errors.Is(err, context.Canceled) {
		entry.Warn(errors.New("client is disconnected").Wrap(err))
		return
	}
	entry.Info("client is disconnected")
}

func (h *handler) remoteAddr() string {
	if req := h.conn.Request(); req != nil {
		return req.RemoteAddr
	}
	return ""
}
