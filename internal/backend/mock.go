package backend

import (
	"context"
	"sync"

	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// MockClient is a mock implementation of the BackendClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetReservationsFunc func() ([]reservation.Reservation, error)
	GetPitchesFunc      func() ([]pitch.Pitch, error)
	GetUserFunc         func(userID string) (User, error)

	// Call records
	GetReservationsCalls int
	GetPitchesCalls      int
	GetUserCalls         []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetReservationsCalls = 0
	m.GetPitchesCalls = 0
	m.GetUserCalls = nil
}

func (m *MockClient) GetReservations(ctx context.Context) ([]reservation.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetReservationsCalls++
	if m.GetReservationsFunc != nil {
		return m.GetReservationsFunc()
	}
	return []reservation.Reservation{}, nil
}

func (m *MockClient) GetPitches(ctx context.Context) ([]pitch.Pitch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPitchesCalls++
	if m.GetPitchesFunc != nil {
		return m.GetPitchesFunc()
	}
	return []pitch.Pitch{}, nil
}

func (m *MockClient) GetUser(ctx context.Context, userID string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetUserCalls = append(m.GetUserCalls, userID)
	if m.GetUserFunc != nil {
		return m.GetUserFunc(userID)
	}
	return User{ID: userID}, nil
}
