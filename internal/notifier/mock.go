package notifier

import (
	"sync"

	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendStatusChangeFunc func(event pubsub.StatusChangedEvent) error
	SendSlotOpenedFunc   func(event pubsub.SlotOpenedEvent) error

	// Call records
	SendStatusChangeCalls []pubsub.StatusChangedEvent
	SendSlotOpenedCalls   []pubsub.SlotOpenedEvent
	SendGameDetailsCalls  []reservation.Reservation
	SendLeaderboardCalls  [][]stats.UserStats
	DryRuns               []bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStatusChangeCalls = nil
	m.SendSlotOpenedCalls = nil
	m.SendGameDetailsCalls = nil
	m.SendLeaderboardCalls = nil
	m.DryRuns = nil
}

func (m *Mock) SendStatusChange(event pubsub.StatusChangedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStatusChangeCalls = append(m.SendStatusChangeCalls, event)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendStatusChangeFunc != nil {
		return m.SendStatusChangeFunc(event)
	}
	return nil
}

func (m *Mock) SendSlotOpened(event pubsub.SlotOpenedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSlotOpenedCalls = append(m.SendSlotOpenedCalls, event)
	m.DryRuns = append(m.DryRuns, dryRun)
	if m.SendSlotOpenedFunc != nil {
		return m.SendSlotOpenedFunc(event)
	}
	return nil
}

func (m *Mock) SendGameDetails(r reservation.Reservation, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameDetailsCalls = append(m.SendGameDetailsCalls, r)
	m.DryRuns = append(m.DryRuns, dryRun)
	return nil
}

func (m *Mock) SendLeaderboard(board []stats.UserStats, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, board)
	m.DryRuns = append(m.DryRuns, dryRun)
	return nil
}

// Calls returns the total number of notifications sent.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DryRuns)
}
