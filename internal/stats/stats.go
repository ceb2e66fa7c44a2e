// Package stats aggregates per-user numbers from finished reservations.
//
// A reservation counts towards a user only when it is completed and the user
// is in its lineup. Highlights are the canonical event source; the player
// lines of a structured summary are read only for reservations that have no
// highlights, so an event is never counted twice.
package stats

import (
	"sort"

	"github.com/mauv0809/pitchside/internal/reservation"
)

// ForUser computes the statistics of one user.
func ForUser(reservations []reservation.Reservation, userID string) UserStats {
	s := UserStats{UserID: userID}
	for _, r := range reservations {
		if r.Status != reservation.StatusCompleted {
			continue
		}
		name, ok := lineupName(r.Lineup, userID)
		if !ok {
			continue
		}
		if s.PlayerName == "" {
			s.PlayerName = name
		}
		tally(&s, r, userID)
	}
	if s.Matches > 0 {
		s.WinPercentage = (float64(s.Wins) / float64(s.Matches)) * 100
	}
	return s
}

// Leaderboard computes statistics for every user who played a completed
// reservation, ordered by wins, goals and assists, then user id.
func Leaderboard(reservations []reservation.Reservation) []UserStats {
	seen := make(map[string]bool)
	var users []string
	for _, r := range reservations {
		if r.Status != reservation.StatusCompleted {
			continue
		}
		for _, p := range r.Lineup {
			if !seen[p.UserID] {
				seen[p.UserID] = true
				users = append(users, p.UserID)
			}
		}
	}

	board := make([]UserStats, 0, len(users))
	for _, userID := range users {
		board = append(board, ForUser(reservations, userID))
	}
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Goals != b.Goals {
			return a.Goals > b.Goals
		}
		if a.Assists != b.Assists {
			return a.Assists > b.Assists
		}
		return a.UserID < b.UserID
	})
	return board
}

func tally(s *UserStats, r reservation.Reservation, userID string) {
	s.Matches++

	var line *reservation.SummaryPlayer
	if r.Summary != nil {
		for i := range r.Summary.Players {
			if r.Summary.Players[i].PlayerID == userID {
				line = &r.Summary.Players[i]
				break
			}
		}
		if line != nil && won(r.Summary.Score, line.Team) {
			s.Wins++
		}
	}

	if len(r.Highlights) > 0 {
		for _, h := range r.Highlights {
			if h.PlayerID != userID {
				continue
			}
			switch h.Type {
			case reservation.HighlightGoal:
				s.Goals++
			case reservation.HighlightAssist:
				s.Assists++
			case reservation.HighlightMVP:
				s.MVPs++
			case reservation.HighlightCleanSheet:
				s.CleanSheets++
			}
		}
		return
	}

	if line != nil {
		s.Goals += line.Goals
		s.Assists += line.Assists
		if line.MVP {
			s.MVPs++
		}
		if line.CleanSheet {
			s.CleanSheets++
		}
	}
}

func won(score *reservation.Score, team reservation.Team) bool {
	if score == nil {
		return false
	}
	switch team {
	case reservation.TeamHome:
		return score.Home > score.Away
	case reservation.TeamAway:
		return score.Away > score.Home
	}
	return false
}

func lineupName(lineup []reservation.Player, userID string) (string, bool) {
	for _, p := range lineup {
		if p.UserID == userID {
			return p.Name, true
		}
	}
	return "", false
}
