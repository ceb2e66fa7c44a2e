package reservation

// Book defines the operations over the reservation collection. All methods
// are synchronous; a reservation id that does not exist is a silent no-op
// reported through the boolean result.
type Book interface {
	AddReservation(r Reservation) Reservation
	UpdateReservation(id int64, update ReservationUpdate) (Reservation, bool)
	DeleteReservation(id int64) bool
	UpdateReservationStatus(id int64, status Status) (Reservation, bool)
	TransitionStatus(id int64, status Status) (Reservation, error)

	JoinReservation(id int64, userID, playerName string) (Reservation, bool)
	CancelReservation(id int64, userID string) (Reservation, bool)
	RemovePlayerFromReservation(id int64, playerID string) (Reservation, bool)
	JoinGame(id int64, playerName, userID string) (Reservation, bool)
	IsUserJoined(id int64, userID string) bool

	JoinWaitList(id int64, userID string) (Reservation, bool)
	LeaveWaitList(id int64, userID string) (Reservation, bool)

	GetReservations() []Reservation
	GetReservation(id int64) (Reservation, bool)
	Merge(remote []Reservation) MergeResult
}
