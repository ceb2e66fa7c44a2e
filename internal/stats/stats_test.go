package stats_test

import (
	"testing"

	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineup(ids ...string) []reservation.Player {
	players := make([]reservation.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, reservation.Player{UserID: id, Name: "name-" + id, Status: reservation.PlayerJoined})
	}
	return players
}

func TestForUser_NoMatches(t *testing.T) {
	reservations := []reservation.Reservation{
		{ID: 1, Status: reservation.StatusUpcoming, Lineup: lineup("u1")},
		{ID: 2, Status: reservation.StatusCompleted, Lineup: lineup("u2")},
	}

	s := stats.ForUser(reservations, "u1")

	assert.Equal(t, stats.UserStats{UserID: "u1"}, s)
	assert.Zero(t, s.WinPercentage)
}

func TestForUser_GoalFromHighlights(t *testing.T) {
	reservations := []reservation.Reservation{{
		ID:         1,
		Status:     reservation.StatusCompleted,
		Lineup:     lineup("u1"),
		Highlights: []reservation.Highlight{{Type: reservation.HighlightGoal, PlayerID: "u1"}},
	}}

	s := stats.ForUser(reservations, "u1")

	assert.Equal(t, 1, s.Goals)
	assert.Equal(t, 1, s.Matches)
	assert.Equal(t, "name-u1", s.PlayerName)
}

func TestForUser_SkipsCancelledAndNonMembers(t *testing.T) {
	goal := []reservation.Highlight{{Type: reservation.HighlightGoal, PlayerID: "u1"}}
	reservations := []reservation.Reservation{
		{ID: 1, Status: reservation.StatusCancelled, Lineup: lineup("u1"), Highlights: goal},
		{ID: 2, Status: reservation.StatusCompleted, Lineup: lineup("u2"), Highlights: goal},
	}

	s := stats.ForUser(reservations, "u1")

	assert.Zero(t, s.Matches)
	assert.Zero(t, s.Goals)
}

func TestForUser_HighlightsWinOverSummaryLines(t *testing.T) {
	reservations := []reservation.Reservation{{
		ID:     1,
		Status: reservation.StatusCompleted,
		Lineup: lineup("u1", "u2"),
		Summary: &reservation.Summary{
			Score: &reservation.Score{Home: 2, Away: 1},
			Players: []reservation.SummaryPlayer{
				{PlayerID: "u1", Team: reservation.TeamHome, Goals: 2, MVP: true},
				{PlayerID: "u2", Team: reservation.TeamAway, Goals: 1},
			},
		},
		Highlights: []reservation.Highlight{
			{Type: reservation.HighlightGoal, PlayerID: "u1"},
			{Type: reservation.HighlightGoal, PlayerID: "u1"},
			{Type: reservation.HighlightMVP, PlayerID: "u1"},
		},
	}}

	s := stats.ForUser(reservations, "u1")

	assert.Equal(t, 2, s.Goals, "summary goals are not added on top of highlights")
	assert.Equal(t, 1, s.MVPs)
	assert.Equal(t, 1, s.Wins, "wins come from the summary score")
	assert.Equal(t, 100.0, s.WinPercentage)
}

func TestForUser_FallsBackToSummaryLines(t *testing.T) {
	reservations := []reservation.Reservation{
		{
			ID:     1,
			Status: reservation.StatusCompleted,
			Lineup: lineup("u1"),
			Summary: &reservation.Summary{
				Score:   &reservation.Score{Home: 0, Away: 0},
				Players: []reservation.SummaryPlayer{{PlayerID: "u1", Team: reservation.TeamAway, Assists: 2, CleanSheet: true}},
			},
		},
		{
			ID:     2,
			Status: reservation.StatusCompleted,
			Lineup: lineup("u1"),
			Summary: &reservation.Summary{
				Score:   &reservation.Score{Home: 1, Away: 4},
				Players: []reservation.SummaryPlayer{{PlayerID: "u1", Team: reservation.TeamAway, Goals: 3}},
			},
		},
	}

	s := stats.ForUser(reservations, "u1")

	assert.Equal(t, 2, s.Matches)
	assert.Equal(t, 1, s.Wins, "a draw is not a win")
	assert.Equal(t, 3, s.Goals)
	assert.Equal(t, 2, s.Assists)
	assert.Equal(t, 1, s.CleanSheets)
	assert.Equal(t, 50.0, s.WinPercentage)
}

func TestLeaderboard_Ordering(t *testing.T) {
	reservations := []reservation.Reservation{
		{
			ID:     1,
			Status: reservation.StatusCompleted,
			Lineup: lineup("b", "a", "c"),
			Summary: &reservation.Summary{
				Score: &reservation.Score{Home: 1, Away: 0},
				Players: []reservation.SummaryPlayer{
					{PlayerID: "a", Team: reservation.TeamHome},
					{PlayerID: "b", Team: reservation.TeamHome},
					{PlayerID: "c", Team: reservation.TeamAway},
				},
			},
			Highlights: []reservation.Highlight{{Type: reservation.HighlightGoal, PlayerID: "b"}},
		},
		{ID: 2, Status: reservation.StatusUpcoming, Lineup: lineup("z")},
	}

	board := stats.Leaderboard(reservations)

	require.Len(t, board, 3)
	assert.Equal(t, "b", board[0].UserID, "same wins, more goals")
	assert.Equal(t, "a", board[1].UserID)
	assert.Equal(t, "c", board[2].UserID)
}
