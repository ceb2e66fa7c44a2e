package handlers

import (
	"net/http"

	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/reservation"
)

func ListReservationsHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.GetReservations())
	}
}

func GetReservationHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		res, found := service.GetReservation(id)
		if !found {
			writeError(w, reservation.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func CreateReservationHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in reservation.Reservation
		if !readJSON(w, r, &in) {
			return
		}
		if in.MaxPlayers <= 0 {
			http.Error(w, "maxPlayers must be positive", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, service.AddReservation(in))
	}
}

func UpdateReservationHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		var update reservation.ReservationUpdate
		if !readJSON(w, r, &update) {
			return
		}
		if update.Status != nil && !update.Status.Valid() {
			writeError(w, reservation.ErrInvalidStatus)
			return
		}
		res, found := service.UpdateReservation(id, update)
		if !found {
			writeError(w, reservation.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func DeleteReservationHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		if !service.DeleteReservation(id) {
			writeError(w, reservation.ErrNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type statusRequest struct {
	Status reservation.Status `json:"status"`
}

// SetStatusHandler sets the status unconditionally.
func SetStatusHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		var req statusRequest
		if !readJSON(w, r, &req) {
			return
		}
		res, err := service.UpdateReservationStatus(id, req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// TransitionHandler moves the reservation along the lifecycle.
func TransitionHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		var req statusRequest
		if !readJSON(w, r, &req) {
			return
		}
		res, err := service.TransitionStatus(id, req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type joinRequest struct {
	UserID     string `json:"userId"`
	PlayerName string `json:"playerName"`
}

func JoinHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		var req joinRequest
		if !readJSON(w, r, &req) {
			return
		}
		res, err := service.JoinReservation(r.Context(), id, req.UserID, req.PlayerName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func LeaveHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		res, err := service.CancelReservation(id, r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func IsJoinedHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		if _, found := service.GetReservation(id); !found {
			writeError(w, reservation.ErrNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"joined": service.IsUserJoined(id, r.PathValue("userID"))})
	}
}

type waitListRequest struct {
	UserID string `json:"userId"`
}

func JoinWaitListHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		var req waitListRequest
		if !readJSON(w, r, &req) {
			return
		}
		res, err := service.JoinWaitList(r.Context(), id, req.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func LeaveWaitListHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		res, err := service.LeaveWaitList(r.Context(), id, r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// ShowDetailsHandler publishes show-game-details for the reservation.
func ShowDetailsHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := reservationID(w, r)
		if !ok {
			return
		}
		res, err := service.ShowGameDetails(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, res)
	}
}
