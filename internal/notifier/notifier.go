package notifier

import (
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For reservation lifecycle events
	SendStatusChange(event pubsub.StatusChangedEvent, dryRun bool) error
	SendSlotOpened(event pubsub.SlotOpenedEvent, dryRun bool) error
	SendGameDetails(r reservation.Reservation, dryRun bool) error
	// For on-demand posts
	SendLeaderboard(board []stats.UserStats, dryRun bool) error
}
