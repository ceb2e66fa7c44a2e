package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ReservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_reservations_created_total",
			Help: "The total number of reservations created.",
		}),
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_players_joined_total",
			Help: "The total number of lineup joins.",
		}),
		PlayersLeft: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_players_left_total",
			Help: "The total number of lineup cancellations and kicks.",
		}),
		WaitListJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_waitlist_joins_total",
			Help: "The total number of waiting list joins.",
		}),
		StorageLoadFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_storage_load_failures_total",
			Help: "The total number of times persisted state could not be read or parsed.",
		}),
		StorageWriteFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_storage_write_failures_total",
			Help: "The total number of failed writes of the reservation collection.",
		}),
		EventPublishFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_event_publish_failures_total",
			Help: "The total number of events that could not be published.",
		}),
		BackendSyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pitchside_backend_sync_duration_seconds",
			Help:    "The duration of a full pull from the backend API.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pitchside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ReservationsCreated,
		s.PlayersJoined,
		s.PlayersLeft,
		s.WaitListJoins,
		s.StorageLoadFailed,
		s.StorageWriteFailed,
		s.EventPublishFailed,
		s.BackendSyncDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncReservationsCreated() {
	s.ReservationsCreated.Inc()
}

func (s *Service) IncPlayersJoined() {
	s.PlayersJoined.Inc()
}

func (s *Service) IncPlayersLeft() {
	s.PlayersLeft.Inc()
}

func (s *Service) IncWaitListJoins() {
	s.WaitListJoins.Inc()
}

func (s *Service) IncStorageLoadFailed() {
	s.StorageLoadFailed.Inc()
}

func (s *Service) IncStorageWriteFailed() {
	s.StorageWriteFailed.Inc()
}

func (s *Service) IncEventPublishFailed() {
	s.EventPublishFailed.Inc()
}

func (s *Service) ObserveBackendSyncDuration(duration float64) {
	s.BackendSyncDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
