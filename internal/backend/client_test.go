package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGetReservations_SkipsInvalidRows(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/reservations": `{"data":{"reservations":[
			{"_id":"a","date":"2026-05-02","startTime":"2026-05-02T18:00:00Z","endTime":"2026-05-02T19:00:00Z","maxPlayers":10},
			{"date":"2026-05-02","startTime":"2026-05-02T18:00:00Z","endTime":"2026-05-02T19:00:00Z","maxPlayers":10},
			{"_id":"c","date":"2026-05-02","startTime":"nope","endTime":"2026-05-02T19:00:00Z","maxPlayers":10}
		]}}`,
	})
	client := NewClient(server.URL+"/", "secret")

	reservations, err := client.GetReservations(context.Background())

	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "a", reservations[0].ExternalID)
}

func TestGetPitches(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/pitches": `{"data":{"pitches":[{"_id":"p1","name":"Riverside","services":{"type":"outdoor","lights":true}}]}}`,
	})
	client := NewClient(server.URL, "secret")

	pitches, err := client.GetPitches(context.Background())

	require.NoError(t, err)
	require.Len(t, pitches, 1)
	assert.Equal(t, "p1", pitches[0].ID)
	assert.Equal(t, "outdoor", pitches[0].Services.Type)
}

func TestGetUser(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/users/u1": `{"data":{"user":{"_id":"u1","playerName":"Ana","email":"ana@example.com"}}}`,
		"/users/u2": `{"data":{}}`,
	})
	client := NewClient(server.URL, "secret")

	user, err := client.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, User{ID: "u1", Name: "Ana", Email: "ana@example.com"}, user)

	_, err = client.GetUser(context.Background(), "u2")
	assert.Error(t, err)
}

func TestGet_NonOKStatus(t *testing.T) {
	server := newTestServer(t, map[string]string{})
	client := NewClient(server.URL, "secret")

	_, err := client.GetReservations(context.Background())

	assert.ErrorContains(t, err, "404")
}

func TestGet_BadJSON(t *testing.T) {
	server := newTestServer(t, map[string]string{"/pitches": `{"data":`})
	client := NewClient(server.URL, "secret")

	_, err := client.GetPitches(context.Background())

	assert.ErrorContains(t, err, "decode")
}
