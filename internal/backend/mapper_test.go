package backend

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawReservation {
	return RawReservation{
		ID:         "ext-1",
		Pitch:      RawPitch{ID: "p1", Name: "Camp Nou 5", City: "Barcelona"},
		Date:       "2026-05-02T00:00:00Z",
		StartTime:  "2026-05-02T18:00:00Z",
		EndTime:    "2026-05-02T19:30:00Z",
		MaxPlayers: 10,
		Price:      7.5,
		CurrentPlayers: []RawUser{
			{ID: "u1", Name: "Ana"},
			{ID: "u2abcdefg", PlayerName: ""},
		},
		WaitList: []UserRef{"u3"},
	}
}

func TestMapReservation(t *testing.T) {
	r, err := MapReservation(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "ext-1", r.ExternalID)
	assert.Zero(t, r.ID)
	assert.Equal(t, "2026-05-02", r.Date)
	assert.Equal(t, "18:00", r.StartTime)
	assert.Equal(t, "19:30", r.EndTime)
	assert.Equal(t, 90, r.Duration)
	assert.Equal(t, "Camp Nou 5", r.Title, "title falls back to the pitch name")
	assert.Equal(t, reservation.StatusUpcoming, r.Status)
	assert.Equal(t, reservation.PitchRef{ID: "p1", Name: "Camp Nou 5", City: "Barcelona"}, r.Pitch)
	require.Len(t, r.Lineup, 2)
	assert.Equal(t, "Ana", r.Lineup[0].Name)
	assert.Equal(t, reservation.PlayerJoined, r.Lineup[0].Status)
	assert.Equal(t, "Player u2abcd", r.Lineup[1].Name)
	assert.Equal(t, 2, r.PlayersJoined)
	assert.Equal(t, []string{"u3"}, r.WaitList)
}

func TestMapReservation_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *RawReservation)
	}{
		{"missing id", func(r *RawReservation) { r.ID = "" }},
		{"bad start", func(r *RawReservation) { r.StartTime = "18:00" }},
		{"bad end", func(r *RawReservation) { r.EndTime = "tomorrow" }},
		{"end before start", func(r *RawReservation) { r.EndTime = "2026-05-02T17:00:00Z" }},
		{"bad date", func(r *RawReservation) { r.Date = "02/05/2026" }},
		{"no capacity", func(r *RawReservation) { r.MaxPlayers = 0 }},
		{"unknown status", func(r *RawReservation) { r.Status = "postponed" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.modify(&raw)
			_, err := MapReservation(raw)
			assert.ErrorIs(t, err, ErrInvalidReservation)
		})
	}
}

func TestMapReservation_Status(t *testing.T) {
	raw := validRaw()
	raw.Status = "canceled"
	r, err := MapReservation(raw)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, r.Status)
}

func TestRawReservation_DecodesMixedShapes(t *testing.T) {
	payload := `{
		"_id": "ext-9",
		"pitch": {"_id": "p9", "name": "Riverside"},
		"date": "2026-06-01",
		"startTime": "2026-06-01T09:00:00+02:00",
		"endTime": "2026-06-01T10:00:00+02:00",
		"maxPlayers": 12,
		"createdBy": {"_id": "u1", "name": "Ana"},
		"currentPlayers": [{"_id": "u1", "name": "Ana", "joinedAt": "2026-05-20T10:00:00Z"}],
		"waitList": ["u2", {"_id": "u3"}, {"id": "u4"}],
		"status": "completed",
		"summary": "Great game",
		"highlights": [{"type": "goal", "playerId": "u1", "minute": 12}]
	}`
	var raw RawReservation
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	r, err := MapReservation(raw)
	require.NoError(t, err)

	assert.Equal(t, "u1", r.CreatedBy)
	assert.Equal(t, []string{"u2", "u3", "u4"}, r.WaitList)
	assert.Equal(t, "09:00", r.StartTime)
	assert.Equal(t, 60, r.Duration)
	assert.Equal(t, reservation.StatusCompleted, r.Status)
	require.NotNil(t, r.Summary)
	assert.Equal(t, "Great game", r.Summary.Text)
	assert.Len(t, r.Highlights, 1)
	assert.False(t, r.Lineup[0].JoinedAt.IsZero())
}

func TestUserRef_RejectsNumbers(t *testing.T) {
	var ref UserRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}

func TestMapPitch(t *testing.T) {
	raw := RawPitch{ID: "p1", Name: "Riverside", Services: json.RawMessage(`{"type":"indoor","parking":true}`)}

	p, err := MapPitch(raw)

	require.NoError(t, err)
	assert.Equal(t, "indoor", p.Services.Type)
	assert.True(t, p.Services.Facilities["parking"])

	_, err = MapPitch(RawPitch{Name: "No id"})
	assert.Error(t, err)
}
