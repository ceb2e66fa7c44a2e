// Package booking is the application layer: every user-facing operation on
// reservations, pitches and statistics goes through Service, which keeps the
// stores consistent and announces changes on the event bus.
package booking

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
	"github.com/mauv0809/pitchside/internal/waitlist"
)

// New creates a new Service.
func New(book reservation.Book, pitches pitch.Catalog, sync waitlist.Sync, backend backend.BackendClient, pubsub pubsub.PubSubClient, metrics metrics.Metrics) *Service {
	return &Service{
		book:     book,
		pitches:  pitches,
		waitlist: sync,
		backend:  backend,
		pubsub:   pubsub,
		metrics:  metrics,
		now:      time.Now,
		users:    make(map[string]struct{}),
	}
}

func (s *Service) publish(topic pubsub.EventType, data any) {
	if err := s.pubsub.SendMessage(topic, data); err != nil {
		s.metrics.IncEventPublishFailed()
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}

func (s *Service) remember(userID string) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.users[userID] = struct{}{}
}

func (s *Service) knownUsers() []string {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	out := make([]string, 0, len(s.users))
	for userID := range s.users {
		out = append(out, userID)
	}
	return out
}

func reservationEvent(r reservation.Reservation) pubsub.ReservationEvent {
	return pubsub.ReservationEvent{
		ReservationID: r.ID,
		ExternalID:    r.ExternalID,
		Title:         r.Title,
		Date:          r.Date,
		StartTime:     r.StartTime,
	}
}

func (s *Service) AddReservation(r reservation.Reservation) reservation.Reservation {
	created := s.book.AddReservation(r)
	s.publish(pubsub.EventReservationCreated, reservationEvent(created))
	return created
}

func (s *Service) UpdateReservation(id int64, update reservation.ReservationUpdate) (reservation.Reservation, bool) {
	before, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, false
	}
	after, ok := s.book.UpdateReservation(id, update)
	if ok && after.Status != before.Status {
		s.publishStatusChange(after, before.Status)
	}
	return after, ok
}

func (s *Service) DeleteReservation(id int64) bool {
	r, ok := s.book.GetReservation(id)
	if !ok {
		return false
	}
	if !s.book.DeleteReservation(id) {
		return false
	}
	s.publish(pubsub.EventReservationDeleted, reservationEvent(r))
	return true
}

// UpdateReservationStatus sets the status without checking the transition.
func (s *Service) UpdateReservationStatus(id int64, status reservation.Status) (reservation.Reservation, error) {
	if !status.Valid() {
		return reservation.Reservation{}, fmt.Errorf("%w: %q", reservation.ErrInvalidStatus, status)
	}
	before, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	after, ok := s.book.UpdateReservationStatus(id, status)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	if after.Status != before.Status {
		s.publishStatusChange(after, before.Status)
	}
	return after, nil
}

// TransitionStatus moves a reservation along the lifecycle, rejecting
// illegal moves.
func (s *Service) TransitionStatus(id int64, status reservation.Status) (reservation.Reservation, error) {
	before, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	after, err := s.book.TransitionStatus(id, status)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if after.Status != before.Status {
		s.publishStatusChange(after, before.Status)
	}
	return after, nil
}

func (s *Service) publishStatusChange(r reservation.Reservation, from reservation.Status) {
	s.publish(pubsub.EventReservationStatusChanged, pubsub.StatusChangedEvent{
		ReservationID: r.ID,
		Title:         r.Title,
		Date:          r.Date,
		StartTime:     r.StartTime,
		From:          string(from),
		To:            string(r.Status),
	})
}

// JoinReservation adds the user to the lineup when there is room. A user
// waiting for the reservation is taken off the waiting list.
func (s *Service) JoinReservation(ctx context.Context, id int64, userID, playerName string) (reservation.Reservation, error) {
	if userID == "" {
		return reservation.Reservation{}, ErrMissingUser
	}
	if playerName == "" {
		playerName = reservation.FallbackName(userID)
	}

	s.roster.Lock()
	defer s.roster.Unlock()

	current, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	if s.book.IsUserJoined(id, userID) {
		return current, ErrAlreadyJoined
	}
	if len(current.Lineup) >= current.MaxPlayers {
		return current, ErrFull
	}

	r, ok := s.book.JoinReservation(id, userID, playerName)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	if slices.Contains(r.WaitList, userID) {
		r, _ = s.book.LeaveWaitList(id, userID)
		s.markWaiting(ctx, userID, id, false)
	}
	s.publish(pubsub.EventPlayerJoined, pubsub.PlayerEvent{ReservationID: id, UserID: userID, PlayerName: playerName})
	return r, nil
}

// JoinGame is JoinReservation with the argument order of the game screens.
func (s *Service) JoinGame(ctx context.Context, id int64, playerName, userID string) (reservation.Reservation, error) {
	return s.JoinReservation(ctx, id, userID, playerName)
}

// CancelReservation takes the user out of the lineup; a user who is not in it
// leaves the reservation untouched. When that frees a spot
// in a full reservation with people waiting, slot-opened is published.
func (s *Service) CancelReservation(id int64, userID string) (reservation.Reservation, error) {
	s.roster.Lock()
	defer s.roster.Unlock()

	before, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	if !s.book.IsUserJoined(id, userID) {
		return before, nil
	}
	after, ok := s.book.CancelReservation(id, userID)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	s.publish(pubsub.EventPlayerLeft, pubsub.PlayerEvent{ReservationID: id, UserID: userID})

	if len(before.Lineup) >= before.MaxPlayers && len(after.WaitList) > 0 {
		log.Info("Slot opened on full reservation", "reservationID", id, "waiting", len(after.WaitList))
		s.publish(pubsub.EventSlotOpened, pubsub.SlotOpenedEvent{
			ReservationID: id,
			Title:         after.Title,
			Date:          after.Date,
			StartTime:     after.StartTime,
			OpenSlots:     after.MaxPlayers - len(after.Lineup),
			WaitList:      after.WaitList,
		})
	}
	return after, nil
}

// RemovePlayerFromReservation is the moderation path of CancelReservation.
func (s *Service) RemovePlayerFromReservation(id int64, playerID string) (reservation.Reservation, error) {
	return s.CancelReservation(id, playerID)
}

func (s *Service) IsUserJoined(id int64, userID string) bool {
	return s.book.IsUserJoined(id, userID)
}

// JoinWaitList queues the user. Users already in the lineup are rejected.
func (s *Service) JoinWaitList(ctx context.Context, id int64, userID string) (reservation.Reservation, error) {
	if userID == "" {
		return reservation.Reservation{}, ErrMissingUser
	}
	s.roster.Lock()
	defer s.roster.Unlock()

	if s.book.IsUserJoined(id, userID) {
		current, _ := s.book.GetReservation(id)
		return current, ErrAlreadyJoined
	}
	r, ok := s.book.JoinWaitList(id, userID)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	s.remember(userID)
	s.markWaiting(ctx, userID, id, true)
	s.publish(pubsub.EventWaitListJoined, pubsub.PlayerEvent{ReservationID: id, UserID: userID})
	return r, nil
}

func (s *Service) LeaveWaitList(ctx context.Context, id int64, userID string) (reservation.Reservation, error) {
	r, ok := s.book.LeaveWaitList(id, userID)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	s.remember(userID)
	s.markWaiting(ctx, userID, id, false)
	s.publish(pubsub.EventWaitListLeft, pubsub.PlayerEvent{ReservationID: id, UserID: userID})
	return r, nil
}

// markWaiting mirrors waiting-list membership; failures are logged only.
func (s *Service) markWaiting(ctx context.Context, userID string, id int64, member bool) {
	if err := s.waitlist.Mark(ctx, userID, id, member); err != nil {
		s.metrics.IncStorageWriteFailed()
		log.Error("Failed to mirror waitlist membership", "userID", userID, "reservationID", id, "error", err)
	}
}

// WaitListMembership returns the stored membership of a user.
func (s *Service) WaitListMembership(ctx context.Context, userID string) (waitlist.Membership, error) {
	return s.waitlist.Load(ctx, userID)
}

func (s *Service) GetReservations() []reservation.Reservation {
	return s.book.GetReservations()
}

func (s *Service) GetReservation(id int64) (reservation.Reservation, bool) {
	return s.book.GetReservation(id)
}

func (s *Service) AddPitch(p pitch.Pitch) pitch.Pitch {
	return s.pitches.AddPitch(p)
}

func (s *Service) UpdatePitch(id string, update pitch.PitchUpdate) (pitch.Pitch, bool) {
	return s.pitches.UpdatePitch(id, update)
}

func (s *Service) DeletePitch(id string) bool {
	return s.pitches.DeletePitch(id)
}

func (s *Service) GetPitches() []pitch.Pitch {
	return s.pitches.GetPitches()
}

func (s *Service) GetPitch(id string) (pitch.Pitch, bool) {
	return s.pitches.GetPitch(id)
}

func (s *Service) GetUserStats(userID string) stats.UserStats {
	return stats.ForUser(s.book.GetReservations(), userID)
}

func (s *Service) Leaderboard() []stats.UserStats {
	return stats.Leaderboard(s.book.GetReservations())
}

// GetUser fetches a profile from the backend.
func (s *Service) GetUser(ctx context.Context, userID string) (backend.User, error) {
	return s.backend.GetUser(ctx, userID)
}

// ShowGameDetails looks up a reservation and asks listeners to present it.
func (s *Service) ShowGameDetails(id int64) (reservation.Reservation, error) {
	r, ok := s.book.GetReservation(id)
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	s.publish(pubsub.EventShowGameDetails, pubsub.GameDetailsEvent{ReservationID: id})
	return r, nil
}

// AnnounceLogin broadcasts a user's session change.
func (s *Service) AnnounceLogin(userID string, loggedIn bool) error {
	if userID == "" {
		return ErrMissingUser
	}
	if loggedIn {
		s.remember(userID)
	}
	s.publish(pubsub.EventLoginStatus, pubsub.LoginStatusEvent{UserID: userID, LoggedIn: loggedIn, At: s.now().Unix()})
	return nil
}

// SyncFromBackend pulls the authoritative snapshot. Reservations are merged
// server-wins by external id, the pitch catalog is replaced, and the
// waiting-list mirror of every known user is reconciled against the result.
func (s *Service) SyncFromBackend(ctx context.Context) (SyncResult, error) {
	start := s.now()
	log.Info("Starting backend sync...")

	remote, err := s.backend.GetReservations(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	pitches, err := s.backend.GetPitches(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to fetch pitches: %w", err)
	}

	result := SyncResult{Pitches: len(pitches)}
	s.roster.Lock()
	result.Reservations = s.book.Merge(remote)
	s.roster.Unlock()
	s.pitches.ReplaceAll(pitches)

	merged := s.book.GetReservations()
	users := s.knownUsers()
	for _, r := range merged {
		users = append(users, r.WaitList...)
	}
	slices.Sort(users)
	users = slices.Compact(users)

	for _, userID := range users {
		changed, err := s.waitlist.Reconcile(ctx, userID, merged)
		if err != nil {
			log.Error("Failed to reconcile waitlist", "userID", userID, "error", err)
			continue
		}
		if len(changed) > 0 {
			if result.Reconciled == nil {
				result.Reconciled = make(map[string][]int64)
			}
			result.Reconciled[userID] = changed
		}
	}

	elapsed := s.now().Sub(start)
	result.DurationMs = elapsed.Milliseconds()
	s.metrics.ObserveBackendSyncDuration(elapsed.Seconds())
	log.Info("Backend sync finished",
		"added", result.Reservations.Added,
		"updated", result.Reservations.Updated,
		"removed", result.Reservations.Removed,
		"pitches", result.Pitches,
		"reconciledUsers", len(result.Reconciled),
		"duration", elapsed,
	)
	return result, nil
}

// ParseID parses a reservation id from a path segment.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid reservation id %q", raw)
	}
	return id, nil
}

