package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	ReservationsCreated prometheus.Counter
	PlayersJoined       prometheus.Counter
	PlayersLeft         prometheus.Counter
	WaitListJoins       prometheus.Counter
	StorageLoadFailed   prometheus.Counter
	StorageWriteFailed  prometheus.Counter
	EventPublishFailed  prometheus.Counter
	BackendSyncDuration prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
