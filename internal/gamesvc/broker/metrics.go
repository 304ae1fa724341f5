package broker

import (
	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardgame_messages_total",
			Help: "Total number of inbound socket messages by type and outcome.",
		},
		[]string{"type", "status"},
	)

	handleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardgame_message_duration_seconds",
			Help:    "Time spent handling one inbound socket message.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)
)

// metricType keeps label cardinality bounded for unknown message types.
func metricType(msgType string) string {
	switch msgType {
	case comm.TypeJoinGame, comm.TypeCreateCard, comm.TypeMoveCard, comm.TypePlayCard:
		return msgType
	}
	return "unknown"
}
