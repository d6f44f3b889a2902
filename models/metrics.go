package models

import (
	"time"

	"github.com/aukilabs/spatial/quadtree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	worldLabel     = "world"
	queryKindLabel = "query_kind"

	queryRadius = "radius"
	queryBox    = "box"
)

var (
	entityCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "world_entity_count",
		Help: "The number of entities in a world.",
	}, []string{worldLabel})

	droppedInsertCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "world_dropped_insert_count",
		Help: "The number of entities the index rejected because they were outside of the world.",
	}, []string{worldLabel})

	indexNodeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "index_node_count",
		Help: "The number of nodes of a world index.",
	}, []string{worldLabel})

	indexDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "index_depth",
		Help: "The depth of a world index.",
	}, []string{worldLabel})

	queryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "world_query_latency_seconds",
		Help:    "The time spent answering spatial queries.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	}, []string{worldLabel, queryKindLabel})
)

func instrumentEntityGauge(world string, count int) {
	entityCount.
		With(prometheus.Labels{worldLabel: world}).
		Set(float64(count))
}

func instrumentDroppedInsert(world string) {
	droppedInsertCount.
		With(prometheus.Labels{worldLabel: world}).
		Inc()
}

func instrumentIndex(world string, info quadtree.DebugInfo) {
	labels := prometheus.Labels{worldLabel: world}
	indexNodeCount.With(labels).Set(float64(info.Nodes))
	indexDepth.With(labels).Set(float64(info.Depth))
}

func instrumentQuery(world, kind string, start time.Time) {
	queryLatency.
		With(prometheus.Labels{
			worldLabel:     world,
			queryKindLabel: kind,
		}).
		Observe(time.Since(start).Seconds())
}
