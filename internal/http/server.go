package http

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/http/handlers"
	"github.com/mauv0809/pitchside/internal/notifier"
)

func NewServer(service *booking.Service, events *booking.EventHandler, notifier notifier.Notifier, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Service:        service,
		Events:         events,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) handle(pattern string, h http.Handler) {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(h, paramsMiddleware, authMiddleware)
	s.Router.Handle(pattern, Chain(h, paramsMiddleware))
}

func (s *Server) routes() {
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.handle("/health", handlers.HealthCheckHandler())

	s.handle("GET /reservations", handlers.ListReservationsHandler(s.Service))
	s.handle("POST /reservations", handlers.CreateReservationHandler(s.Service))
	s.handle("GET /reservations/{id}", handlers.GetReservationHandler(s.Service))
	s.handle("PATCH /reservations/{id}", handlers.UpdateReservationHandler(s.Service))
	s.handle("DELETE /reservations/{id}", handlers.DeleteReservationHandler(s.Service))
	s.handle("PUT /reservations/{id}/status", handlers.SetStatusHandler(s.Service))
	s.handle("POST /reservations/{id}/transition", handlers.TransitionHandler(s.Service))
	s.handle("POST /reservations/{id}/players", handlers.JoinHandler(s.Service))
	s.handle("GET /reservations/{id}/players/{userID}", handlers.IsJoinedHandler(s.Service))
	s.handle("DELETE /reservations/{id}/players/{userID}", handlers.LeaveHandler(s.Service))
	s.handle("POST /reservations/{id}/waitlist", handlers.JoinWaitListHandler(s.Service))
	s.handle("DELETE /reservations/{id}/waitlist/{userID}", handlers.LeaveWaitListHandler(s.Service))
	s.handle("POST /reservations/{id}/details", handlers.ShowDetailsHandler(s.Service))

	s.handle("GET /pitches", handlers.ListPitchesHandler(s.Service))
	s.handle("POST /pitches", handlers.CreatePitchHandler(s.Service))
	s.handle("GET /pitches/{id}", handlers.GetPitchHandler(s.Service))
	s.handle("PATCH /pitches/{id}", handlers.UpdatePitchHandler(s.Service))
	s.handle("DELETE /pitches/{id}", handlers.DeletePitchHandler(s.Service))

	s.handle("GET /users/{userID}", handlers.UserProfileHandler(s.Service))
	s.handle("GET /users/{userID}/stats", handlers.UserStatsHandler(s.Service))
	s.handle("GET /users/{userID}/waitlist", handlers.UserWaitListHandler(s.Service))
	s.handle("POST /users/{userID}/session", handlers.SessionHandler(s.Service))
	s.handle("GET /leaderboard", handlers.LeaderboardHandler(s.Service, s.Notifier))
	s.handle("POST /sync", handlers.SyncHandler(s.Service))

	// Pub/Sub push subscriptions, one per handled topic.
	for _, topic := range booking.HandledTopics {
		s.handle("POST /pubsub/"+string(topic), handlers.PushHandler(s.Events, topic))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
