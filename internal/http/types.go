package http

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/notifier"
)

type Server struct {
	Service        *booking.Service
	Events         *booking.EventHandler
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
