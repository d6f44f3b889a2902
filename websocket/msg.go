package websocket

import (
	"github.com/aukilabs/spatial/models"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypePing        = "ping"
	MsgTypePong        = "pong"
	MsgTypeNearby      = "nearby"
	MsgTypeError       = "error"
)

const (
	ErrTypeInvalidMsg = "invalid-msg"
	ErrTypeUnknownMsg = "unknown-msg"
)

// Request is a message sent by a client.
//
// A subscribe request sets the area the client receives updates for. Exact is
// optional and falls back on the server default.
type Request struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Exact  *bool   `json:"exact,omitempty"`
}

// Response is a message sent to a client.
type Response struct {
	Type      string                  `json:"type"`
	Frame     uint64                  `json:"frame,omitempty"`
	Entities  []models.EntitySnapshot `json:"entities,omitempty"`
	ErrorType string                  `json:"error_type,omitempty"`
	Message   string                  `json:"message,omitempty"`
}

// JSON is the codec used to exchange messages as text frames.
var JSON = websocket.Codec{
	Marshal:   marshalJSON,
	Unmarshal: unmarshalJSON,
}

func marshalJSON(v any) ([]byte, byte, error) {
	b, err := json.Marshal(v)
	return b, websocket.TextFrame, err
}

func unmarshalJSON(msg []byte, payloadType byte, v any) error {
	return json.Unmarshal(msg, v)
}
