package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/notifier"
)

func UserStatsHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.GetUserStats(r.PathValue("userID")))
	}
}

func UserWaitListHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		membership, err := service.WaitListMembership(r.Context(), r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, membership)
	}
}

func UserProfileHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := service.GetUser(r.Context(), r.PathValue("userID"))
		if err != nil {
			log.Error("Failed to fetch user from backend", "userID", r.PathValue("userID"), "error", err)
			http.Error(w, "Failed to fetch user", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

type sessionRequest struct {
	LoggedIn bool `json:"loggedIn"`
}

// SessionHandler announces a login or logout.
func SessionHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionRequest
		if !readJSON(w, r, &req) {
			return
		}
		if err := service.AnnounceLogin(r.PathValue("userID"), req.LoggedIn); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// LeaderboardHandler returns the leaderboard. With post=true it is also
// posted to Slack.
func LeaderboardHandler(service *booking.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board := service.Leaderboard()
		if r.URL.Query().Get("post") == "true" {
			if err := notifier.SendLeaderboard(board, IsDryRunFromContext(r)); err != nil {
				log.Error("Failed to post leaderboard", "error", err)
				http.Error(w, "Failed to post leaderboard", http.StatusBadGateway)
				return
			}
		}
		writeJSON(w, http.StatusOK, board)
	}
}

func SyncHandler(service *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.SyncFromBackend(r.Context())
		if err != nil {
			log.Error("Backend sync failed", "error", err)
			http.Error(w, "Backend sync failed", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
