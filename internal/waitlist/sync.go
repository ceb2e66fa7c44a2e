package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/storage"
)

// New creates a Sync backed by the given store.
func New(store storage.Store) Sync {
	return &syncer{store: store}
}

// Key is the storage key holding a user's membership.
func Key(userID string) string {
	return "waitlist:" + userID
}

func (s *syncer) Load(ctx context.Context, userID string) (Membership, error) {
	data, err := s.store.Load(ctx, Key(userID))
	if errors.Is(err, storage.ErrNotFound) {
		return Membership{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load waitlist for %s: %w", userID, err)
	}
	membership := Membership{}
	if err := json.Unmarshal(data, &membership); err != nil {
		log.Warn("Discarding corrupt waitlist record", "userID", userID, "error", err)
		return Membership{}, nil
	}
	return membership, nil
}

func (s *syncer) Save(ctx context.Context, userID string, membership Membership) error {
	if membership == nil {
		membership = Membership{}
	}
	data, err := json.Marshal(membership)
	if err != nil {
		return fmt.Errorf("failed to encode waitlist for %s: %w", userID, err)
	}
	if err := s.store.Save(ctx, Key(userID), data); err != nil {
		return fmt.Errorf("failed to save waitlist for %s: %w", userID, err)
	}
	return nil
}

func (s *syncer) Mark(ctx context.Context, userID string, reservationID int64, member bool) error {
	membership, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	key := strconv.FormatInt(reservationID, 10)
	if member {
		membership[key] = true
	} else {
		delete(membership, key)
	}
	return s.Save(ctx, userID, membership)
}

// Reconcile rebuilds the user's membership from the authoritative
// reservations and returns the ids whose stored value disagreed, sorted.
func (s *syncer) Reconcile(ctx context.Context, userID string, reservations []reservation.Reservation) ([]int64, error) {
	local, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	remote := Membership{}
	for _, r := range reservations {
		if slices.Contains(r.WaitList, userID) {
			remote[strconv.FormatInt(r.ID, 10)] = true
		}
	}

	var changed []int64
	for key := range union(local, remote) {
		if local[key] == remote[key] {
			continue
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			log.Debug("Dropping unparseable waitlist entry", "userID", userID, "key", key)
			continue
		}
		changed = append(changed, id)
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

	if len(changed) == 0 && len(local) == len(remote) {
		return nil, nil
	}
	if err := s.Save(ctx, userID, remote); err != nil {
		return nil, err
	}
	log.Info("Waitlist reconciled", "userID", userID, "changed", len(changed))
	return changed, nil
}

func union(a, b Membership) map[string]struct{} {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}
