package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/storage"
)

const saveTimeout = 5 * time.Second

var _ Book = (*book)(nil)

// New creates a Book and hydrates it from the value stored under key. A
// missing or unreadable value yields an empty collection; the error is
// logged and never returned.
func New(store storage.Store, key string, metrics metrics.Metrics) Book {
	return newBook(store, key, metrics, time.Now)
}

func newBook(store storage.Store, key string, metrics metrics.Metrics, now func() time.Time) *book {
	b := &book{
		store:   store,
		key:     key,
		metrics: metrics,
		now:     now,
	}
	b.hydrate()
	return b
}

func (b *book) hydrate() {
	b.reservations = []Reservation{}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	data, err := b.store.Load(ctx, b.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("No stored reservations, starting empty", "key", b.key)
			return
		}
		log.Error("Failed to load reservations, starting empty", "error", err, "key", b.key)
		b.metrics.IncStorageLoadFailed()
		return
	}

	var stored []Reservation
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Error("Failed to parse stored reservations, starting empty", "error", err, "key", b.key)
		b.metrics.IncStorageLoadFailed()
		return
	}
	for _, r := range stored {
		normalize(&r)
		if r.ID > b.lastID {
			b.lastID = r.ID
		}
		b.reservations = append(b.reservations, r)
	}
	log.Info("Hydrated reservations from storage", "key", b.key, "count", len(b.reservations))
}

// persist writes the whole collection. The caller must hold the write lock.
func (b *book) persist() {
	data, err := json.Marshal(b.reservations)
	if err != nil {
		log.Error("Failed to serialize reservations", "error", err)
		b.metrics.IncStorageWriteFailed()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := b.store.Save(ctx, b.key, data); err != nil {
		log.Error("Failed to persist reservations", "error", err, "key", b.key)
		b.metrics.IncStorageWriteFailed()
	}
}

// nextID derives an id from the clock and keeps ids strictly increasing
// when two reservations land in the same millisecond.
func (b *book) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

func (b *book) indexOf(id int64) int {
	for i := range b.reservations {
		if b.reservations[i].ID == id {
			return i
		}
	}
	return -1
}

// mutate applies fn to a copy of the reservation, swaps the copy in and
// persists. It reports false when the id is unknown.
func (b *book) mutate(id int64, fn func(r *Reservation)) (Reservation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		log.Debug("Reservation not found, ignoring", "reservationID", id)
		return Reservation{}, false
	}
	next := clone(b.reservations[i])
	fn(&next)
	b.reservations[i] = next
	b.persist()
	return clone(next), true
}

// AddReservation assigns an id, resets the join count and appends.
func (b *book) AddReservation(r Reservation) Reservation {
	b.mu.Lock()
	defer b.mu.Unlock()

	r = clone(r)
	r.ID = b.nextID()
	r.PlayersJoined = 0
	if r.Status == "" {
		r.Status = StatusUpcoming
	}
	if r.Lineup == nil {
		r.Lineup = []Player{}
	}
	if r.WaitList == nil {
		r.WaitList = []string{}
	}
	b.reservations = append(b.reservations, r)
	b.persist()
	b.metrics.IncReservationsCreated()
	log.Info("Created reservation", "reservationID", r.ID, "pitch", r.Pitch.Name, "date", r.Date)
	return clone(r)
}

// UpdateReservation shallow-merges the non-nil fields of update.
func (b *book) UpdateReservation(id int64, update ReservationUpdate) (Reservation, bool) {
	return b.mutate(id, func(r *Reservation) {
		applyUpdate(r, update)
	})
}

func (b *book) DeleteReservation(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.reservations = append(b.reservations[:i:i], b.reservations[i+1:]...)
	b.persist()
	log.Info("Deleted reservation", "reservationID", id)
	return true
}

// UpdateReservationStatus overwrites the status without consulting the
// transition table. Use TransitionStatus for the guarded variant.
func (b *book) UpdateReservationStatus(id int64, status Status) (Reservation, bool) {
	return b.mutate(id, func(r *Reservation) {
		r.Status = status
	})
}

// TransitionStatus moves a reservation along the allowed transitions only.
func (b *book) TransitionStatus(id int64, status Status) (Reservation, error) {
	if !status.Valid() {
		return Reservation{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return Reservation{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	current := b.reservations[i].Status
	if !CanTransition(current, status) {
		return clone(b.reservations[i]), fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, status)
	}
	next := clone(b.reservations[i])
	next.Status = status
	b.reservations[i] = next
	b.persist()
	log.Info("Transitioned reservation status", "reservationID", id, "from", current, "to", status)
	return clone(next), nil
}

// JoinReservation appends a joined lineup entry. Membership and capacity are
// the caller's concern.
func (b *book) JoinReservation(id int64, userID, playerName string) (Reservation, bool) {
	r, ok := b.mutate(id, func(r *Reservation) {
		r.Lineup = append(r.Lineup, Player{
			UserID:   userID,
			Name:     playerName,
			Status:   PlayerJoined,
			JoinedAt: b.now().UTC(),
		})
		r.PlayersJoined = len(r.Lineup)
	})
	if ok {
		b.metrics.IncPlayersJoined()
		log.Info("Player joined reservation", "reservationID", id, "userID", userID, "players", r.PlayersJoined)
	}
	return r, ok
}

// CancelReservation removes the user from the lineup. Removing a non-member
// leaves the lineup as is.
func (b *book) CancelReservation(id int64, userID string) (Reservation, bool) {
	var removed bool
	r, ok := b.mutate(id, func(r *Reservation) {
		before := len(r.Lineup)
		r.Lineup = withoutPlayer(r.Lineup, userID)
		r.PlayersJoined = len(r.Lineup)
		removed = len(r.Lineup) < before
	})
	if removed {
		b.metrics.IncPlayersLeft()
		log.Info("Player left reservation", "reservationID", id, "userID", userID, "players", r.PlayersJoined)
	}
	return r, ok
}

func (b *book) RemovePlayerFromReservation(id int64, playerID string) (Reservation, bool) {
	return b.CancelReservation(id, playerID)
}

// JoinGame is JoinReservation for callers that may not know who the user is.
func (b *book) JoinGame(id int64, playerName, userID string) (Reservation, bool) {
	if userID == "" {
		log.Debug("JoinGame called without a user, ignoring", "reservationID", id)
		return Reservation{}, false
	}
	if playerName == "" {
		playerName = FallbackName(userID)
	}
	return b.JoinReservation(id, userID, playerName)
}

func (b *book) IsUserJoined(id int64, userID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	return hasPlayer(b.reservations[i].Lineup, userID)
}

// JoinWaitList adds the user once. Lineup membership is not checked.
func (b *book) JoinWaitList(id int64, userID string) (Reservation, bool) {
	var added bool
	r, ok := b.mutate(id, func(r *Reservation) {
		for _, waiting := range r.WaitList {
			if waiting == userID {
				return
			}
		}
		r.WaitList = append(r.WaitList, userID)
		added = true
	})
	if added {
		b.metrics.IncWaitListJoins()
		log.Info("User joined waiting list", "reservationID", id, "userID", userID, "waiting", len(r.WaitList))
	}
	return r, ok
}

func (b *book) LeaveWaitList(id int64, userID string) (Reservation, bool) {
	return b.mutate(id, func(r *Reservation) {
		kept := make([]string, 0, len(r.WaitList))
		for _, waiting := range r.WaitList {
			if waiting != userID {
				kept = append(kept, waiting)
			}
		}
		r.WaitList = kept
	})
}

func (b *book) GetReservations() []Reservation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Reservation, len(b.reservations))
	for i, r := range b.reservations {
		out[i] = clone(r)
	}
	return out
}

func (b *book) GetReservation(id int64) (Reservation, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexOf(id)
	if i < 0 {
		return Reservation{}, false
	}
	return clone(b.reservations[i]), true
}

// Merge applies an authoritative backend snapshot. Reservations are matched
// by ExternalID: matches are replaced but keep their local id, unknown ones
// are added, and local copies of backend reservations missing from the
// snapshot are dropped. Reservations that never came from the backend stay.
func (b *book) Merge(remote []Reservation) MergeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result MergeResult
	seen := make(map[string]bool, len(remote))
	for _, incoming := range remote {
		if incoming.ExternalID == "" {
			continue
		}
		seen[incoming.ExternalID] = true
		incoming = clone(incoming)
		normalize(&incoming)

		replaced := false
		for i := range b.reservations {
			if b.reservations[i].ExternalID == incoming.ExternalID {
				incoming.ID = b.reservations[i].ID
				b.reservations[i] = incoming
				replaced = true
				result.Updated++
				break
			}
		}
		if !replaced {
			incoming.ID = b.nextID()
			b.reservations = append(b.reservations, incoming)
			result.Added++
		}
	}

	kept := b.reservations[:0]
	for _, r := range b.reservations {
		if r.ExternalID != "" && !seen[r.ExternalID] {
			result.Removed++
			continue
		}
		kept = append(kept, r)
	}
	b.reservations = kept

	b.persist()
	log.Info("Merged backend reservations", "added", result.Added, "updated", result.Updated, "removed", result.Removed)
	return result
}

// FallbackName is the display name used when a player joins without one.
func FallbackName(userID string) string {
	short := []rune(userID)
	if len(short) > 6 {
		short = short[:6]
	}
	return "Player " + string(short)
}

func applyUpdate(r *Reservation, u ReservationUpdate) {
	if u.Pitch != nil {
		r.Pitch = *u.Pitch
	}
	if u.Date != nil {
		r.Date = *u.Date
	}
	if u.StartTime != nil {
		r.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		r.EndTime = *u.EndTime
	}
	if u.Duration != nil {
		r.Duration = *u.Duration
	}
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.MaxPlayers != nil {
		r.MaxPlayers = *u.MaxPlayers
	}
	if u.Price != nil {
		r.Price = *u.Price
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Summary != nil {
		s := cloneSummary(*u.Summary)
		r.Summary = &s
	}
	if u.Highlights != nil {
		r.Highlights = cloneSlice(*u.Highlights)
	}
}

func normalize(r *Reservation) {
	if r.Status == "" {
		r.Status = StatusUpcoming
	}
	if r.Lineup == nil {
		r.Lineup = []Player{}
	}
	if r.WaitList == nil {
		r.WaitList = []string{}
	}
	r.PlayersJoined = len(r.Lineup)
}

func hasPlayer(lineup []Player, userID string) bool {
	for _, p := range lineup {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func withoutPlayer(lineup []Player, userID string) []Player {
	kept := make([]Player, 0, len(lineup))
	for _, p := range lineup {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	return kept
}

// clone deep-copies the slices so callers never share backing arrays with
// the collection.
func clone(r Reservation) Reservation {
	out := r
	out.Lineup = cloneSlice(r.Lineup)
	out.WaitList = cloneSlice(r.WaitList)
	out.Highlights = cloneSlice(r.Highlights)
	if r.Summary != nil {
		s := cloneSummary(*r.Summary)
		out.Summary = &s
	}
	return out
}

func cloneSummary(s Summary) Summary {
	out := s
	if s.Score != nil {
		score := *s.Score
		out.Score = &score
	}
	out.Players = cloneSlice(s.Players)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
