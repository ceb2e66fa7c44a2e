package pitch_test

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePitch() pitch.Pitch {
	return pitch.Pitch{
		Name:           "Riverside 5s",
		Location:       "Havnegade 1",
		City:           "Copenhagen",
		PlayersPerSide: 5,
		Services: pitch.Services{
			Type:       "outdoor",
			Facilities: map[string]bool{"parking": true, "showers": false},
		},
	}
}

func TestAddPitch_GeneratesID(t *testing.T) {
	c := pitch.New()

	p := c.AddPitch(samplePitch())
	assert.NotEmpty(t, p.ID)

	explicit := samplePitch()
	explicit.ID = "pitch-7"
	assert.Equal(t, "pitch-7", c.AddPitch(explicit).ID)
	assert.Len(t, c.GetPitches(), 2)
}

func TestUpdatePitch(t *testing.T) {
	c := pitch.New()
	p := c.AddPitch(samplePitch())

	name := "Riverside 7s"
	side := 7
	got, ok := c.UpdatePitch(p.ID, pitch.PitchUpdate{Name: &name, PlayersPerSide: &side})
	require.True(t, ok)
	assert.Equal(t, "Riverside 7s", got.Name)
	assert.Equal(t, 7, got.PlayersPerSide)
	assert.Equal(t, "Copenhagen", got.City)

	_, ok = c.UpdatePitch("missing", pitch.PitchUpdate{Name: &name})
	assert.False(t, ok)
}

func TestDeletePitch_ByStringID(t *testing.T) {
	c := pitch.New()
	keep := c.AddPitch(samplePitch())
	drop := c.AddPitch(samplePitch())

	assert.True(t, c.DeletePitch(drop.ID))
	assert.False(t, c.DeletePitch(drop.ID))

	all := c.GetPitches()
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestGetPitch_ReturnsCopy(t *testing.T) {
	c := pitch.New()
	p := c.AddPitch(samplePitch())

	got, ok := c.GetPitch(p.ID)
	require.True(t, ok)
	got.Services.Facilities["parking"] = false

	again, _ := c.GetPitch(p.ID)
	assert.True(t, again.Services.Facilities["parking"])
}

func TestReplaceAll(t *testing.T) {
	c := pitch.New()
	c.AddPitch(samplePitch())

	c.ReplaceAll([]pitch.Pitch{{ID: "a"}, {ID: "b"}})

	all := c.GetPitches()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
}

func TestServicesJSON(t *testing.T) {
	in := `{"type":"indoor","parking":true,"lights":false}`
	var s pitch.Services
	require.NoError(t, json.Unmarshal([]byte(in), &s))

	assert.Equal(t, "indoor", s.Type)
	assert.Equal(t, map[string]bool{"parking": true, "lights": false}, s.Facilities)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"parking":"yes"}`), &s))
}
