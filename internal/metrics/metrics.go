package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monotony"

// Label names
const (
	LabelType     = "type"
	LabelKind     = "kind"
	LabelProtocol = "protocol"
)

// Session metrics
var (
	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_handled_total",
			Help:      "Total number of inbound session events handled",
		},
		[]string{LabelType},
	)

	CommandsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_executed_total",
			Help:      "Total number of player commands executed",
		},
		[]string{LabelKind},
	)

	MovesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_failed_total",
			Help:      "Total number of moves to an unknown room",
		},
	)

	PublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total number of outbound messages that could not be published",
		},
	)

	PlayersOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_online",
			Help:      "Current number of joined players",
		},
	)
)

// Listener metrics
var (
	ConnectionsOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_open",
			Help:      "Current number of open client connections",
		},
		[]string{LabelProtocol},
	)

	TerminalsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terminals_accepted_total",
			Help:      "Total number of telnet and ssh terminals accepted, named or not",
		},
		[]string{LabelProtocol},
	)

	FramesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Total number of inbound frames discarded as malformed or unknown",
		},
		[]string{LabelProtocol},
	)
)
