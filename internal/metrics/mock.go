package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	reservationsCreated  int
	playersJoined        int
	playersLeft          int
	waitListJoins        int
	storageLoadFailed    int
	storageWriteFailed   int
	eventPublishFailed   int
	backendSyncDurations []float64
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		backendSyncDurations: make([]float64, 0),
	}
}

func (m *Mock) IncReservationsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservationsCreated++
}

func (m *Mock) IncPlayersJoined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersJoined++
}

func (m *Mock) IncPlayersLeft() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersLeft++
}

func (m *Mock) IncWaitListJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waitListJoins++
}

func (m *Mock) IncStorageLoadFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storageLoadFailed++
}

func (m *Mock) IncStorageWriteFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storageWriteFailed++
}

func (m *Mock) IncEventPublishFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventPublishFailed++
}

func (m *Mock) ObserveBackendSyncDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backendSyncDurations = append(m.backendSyncDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ReservationsCreated returns the number of times IncReservationsCreated was called.
func (m *Mock) ReservationsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservationsCreated
}

func (m *Mock) PlayersJoined() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersJoined
}

func (m *Mock) PlayersLeft() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersLeft
}

func (m *Mock) WaitListJoins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waitListJoins
}

// StorageLoadFailed returns the number of times IncStorageLoadFailed was called.
func (m *Mock) StorageLoadFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storageLoadFailed
}

// StorageWriteFailed returns the number of times IncStorageWriteFailed was called.
func (m *Mock) StorageWriteFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storageWriteFailed
}

func (m *Mock) EventPublishFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventPublishFailed
}

// BackendSyncs returns how many sync durations were observed.
func (m *Mock) BackendSyncs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.backendSyncDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
