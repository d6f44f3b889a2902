package websocket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	msgTypeLabel = "msg_type"
)

var (
	wsConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connected_clients",
		Help: "The number of clients connected to the proximity feed.",
	})

	wsReceivedMsgs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ws_received_msgs",
		Help: "The number of messages received from WebSocket connections.",
	}, []string{msgTypeLabel})

	wsSentMsgs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ws_sent_msgs",
		Help: "The number of messages sent to WebSocket connections.",
	}, []string{msgTypeLabel})

	wsDroppedMsgs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ws_dropped_msgs",
		Help: "The number of messages dropped because a client did not keep up.",
	}, []string{msgTypeLabel})
)

func instrumentConnect() {
	wsConnectedClients.Inc()
}

func instrumentDisconnect() {
	wsConnectedClients.Dec()
}

func instrumentReceivedMsg(msgType string) {
	wsReceivedMsgs.With(prometheus.Labels{msgTypeLabel: msgType}).Inc()
}

func instrumentSentMsg(msgType string) {
	wsSentMsgs.With(prometheus.Labels{msgTypeLabel: msgType}).Inc()
}

func instrumentDroppedMsg(msgType string) {
	wsDroppedMsgs.With(prometheus.Labels{msgTypeLabel: msgType}).Inc()
}
