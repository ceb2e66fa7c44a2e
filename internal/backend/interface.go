package backend

import (
	"context"

	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// BackendClient defines the interface for reading the authoritative state
// from the booking backend. This allows for mock implementations to be used
// in tests.
type BackendClient interface {
	GetReservations(ctx context.Context) ([]reservation.Reservation, error)
	GetPitches(ctx context.Context) ([]pitch.Pitch, error)
	GetUser(ctx context.Context, userID string) (User, error)
}
