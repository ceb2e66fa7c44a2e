// Package waitlist mirrors, per user, which reservations they are queued for.
// The record lives next to the reservation collection in the same store and
// is rebuilt from the backend snapshot whenever the two disagree.
package waitlist

import (
	"context"

	"github.com/mauv0809/pitchside/internal/reservation"
)

// Sync defines the operations over per-user waiting-list membership.
type Sync interface {
	Load(ctx context.Context, userID string) (Membership, error)
	Save(ctx context.Context, userID string, membership Membership) error
	Mark(ctx context.Context, userID string, reservationID int64, member bool) error
	Reconcile(ctx context.Context, userID string, reservations []reservation.Reservation) ([]int64, error)
}
