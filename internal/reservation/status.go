package reservation

import "errors"

var (
	// ErrNotFound is returned by operations that report a missing reservation.
	ErrNotFound = errors.New("reservation not found")
	// ErrInvalidStatus is returned for a status outside upcoming/completed/cancelled.
	ErrInvalidStatus = errors.New("invalid reservation status")
	// ErrIllegalTransition is returned by TransitionStatus for a move the table does not allow.
	ErrIllegalTransition = errors.New("illegal reservation status transition")
)

// allowedTransitions lists, per state, the states it may move to.
// Completed and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	StatusUpcoming: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a reservation in state from may move to state to.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
