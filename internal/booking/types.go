package booking

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/waitlist"
)

var (
	ErrFull          = errors.New("reservation is full")
	ErrAlreadyJoined = errors.New("user already in the lineup")
	ErrMissingUser   = errors.New("user id is required")
)

// Service composes the reservation book with the pitch catalog, the
// waiting-list mirror, the backend and the event bus.
type Service struct {
	book     reservation.Book
	pitches  pitch.Catalog
	waitlist waitlist.Sync
	backend  backend.BackendClient
	pubsub   pubsub.PubSubClient
	metrics  metrics.Metrics
	now      func() time.Time

	// roster serializes check-then-act sequences on lineups.
	roster sync.Mutex

	usersMu sync.Mutex
	users   map[string]struct{}
}

// SyncResult reports what a backend sync changed.
type SyncResult struct {
	Reservations reservation.MergeResult `json:"reservations"`
	Pitches      int                     `json:"pitches"`
	Reconciled   map[string][]int64      `json:"reconciled,omitempty"`
	DurationMs   int64                   `json:"durationMs"`
}

// EventHandler turns bus events into notifications.
type EventHandler struct {
	service  *Service
	notifier notifier.Notifier
	decoder  pubsub.PubSubClient
	dryRun   bool
}
