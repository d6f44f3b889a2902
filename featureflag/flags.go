package featureflag

type Flag string

const (
	// Radius queries filter entities by distance unless the request says
	// otherwise.
	FlagExactRadiusQuery Flag = "EXACT_RADIUS_QUERY"

	// Entities are not moved by their velocity.
	FlagDisableMovement Flag = "DISABLE_MOVEMENT"

	// The WebSocket proximity feed is not served.
	FlagDisableWebsocketFeed Flag = "DISABLE_WEBSOCKET_FEED"
)

// Known lists the flags the server understands.
var Known = []Flag{
	FlagExactRadiusQuery,
	FlagDisableMovement,
	FlagDisableWebsocketFeed,
}
