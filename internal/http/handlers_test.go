package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/booking"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/mauv0809/pitchside/internal/database"
	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/notifier"
	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/pubsub"
	"github.com/mauv0809/pitchside/internal/reservation"
	"github.com/mauv0809/pitchside/internal/stats"
	"github.com/mauv0809/pitchside/internal/storage"
	"github.com/mauv0809/pitchside/internal/waitlist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testEnv struct {
	server   *Server
	notifier *notifier.Mock
	bus      *pubsub.MockPubSubClient
	backend  *backend.MockClient
}

// setupTestServer initializes a new server over an in-memory database and mock clients.
func setupTestServer(t *testing.T) testEnv {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	store := storage.New(db)
	bus := pubsub.NewMock()
	client := backend.NewMockClient()
	notif := notifier.NewMock()

	service := booking.New(reservation.New(store, "reservations", metricsSvc), pitch.New(), waitlist.New(store), client, bus, metricsSvc)
	events := booking.NewEventHandler(service, notif, bus, false)
	server := NewServer(service, events, notif, metricsHandler, config.Config{})

	return testEnv{server: server, notifier: notif, bus: bus, backend: client}
}

func (e testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			payload.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&payload).Encode(v))
		}
	}
	req := httptest.NewRequest(method, target, &payload)
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (e testEnv) createGame(t *testing.T, maxPlayers int) reservation.Reservation {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/reservations", map[string]any{
		"title":      "Friday 5s",
		"date":       "2026-05-02",
		"startTime":  "18:00",
		"maxPlayers": maxPlayers,
		"pitch":      map[string]string{"id": "p1", "name": "Riverside"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[reservation.Reservation](t, rr)
}

func TestHealthCheckHandler(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t)
	env.createGame(t, 10)

	rr := env.do(t, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pitchside_reservations_created_total 1")
}

func TestReservationCRUD(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGame(t, 10)
	assert.NotZero(t, created.ID)
	assert.Equal(t, reservation.StatusUpcoming, created.Status)

	path := fmt.Sprintf("/reservations/%d", created.ID)

	rr := env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Friday 5s", decode[reservation.Reservation](t, rr).Title)

	rr = env.do(t, http.MethodPatch, path, map[string]any{"title": "Saturday 7s", "price": 6.5})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[reservation.Reservation](t, rr)
	assert.Equal(t, "Saturday 7s", updated.Title)
	assert.Equal(t, 6.5, updated.Price)
	assert.Equal(t, "2026-05-02", updated.Date)

	rr = env.do(t, http.MethodGet, "/reservations", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]reservation.Reservation](t, rr), 1)

	rr = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = env.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestReservationValidation(t *testing.T) {
	env := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/reservations", "{nope").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/reservations", map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/reservations/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, "/reservations/12345", map[string]any{"title": "x"}).Code)

	created := env.createGame(t, 10)
	rr := env.do(t, http.MethodPatch, fmt.Sprintf("/reservations/%d", created.ID), map[string]any{"status": "postponed"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatusEndpoints(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGame(t, 10)
	base := fmt.Sprintf("/reservations/%d", created.ID)

	rr := env.do(t, http.MethodPost, base+"/transition", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, reservation.StatusCompleted, decode[reservation.Reservation](t, rr).Status)

	rr = env.do(t, http.MethodPost, base+"/transition", map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodPut, base+"/status", map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rr.Code, "the explicit status set is not guarded")
	assert.Equal(t, reservation.StatusCancelled, decode[reservation.Reservation](t, rr).Status)

	rr = env.do(t, http.MethodPut, base+"/status", map[string]string{"status": "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayerEndpoints(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGame(t, 1)
	base := fmt.Sprintf("/reservations/%d", created.ID)

	rr := env.do(t, http.MethodPost, base+"/players", map[string]string{"userId": "u1", "playerName": "Ana"})
	require.Equal(t, http.StatusOK, rr.Code)
	joined := decode[reservation.Reservation](t, rr)
	assert.Equal(t, 1, joined.PlayersJoined)
	assert.Equal(t, "Ana", joined.Lineup[0].Name)

	rr = env.do(t, http.MethodPost, base+"/players", map[string]string{"userId": "u2"})
	assert.Equal(t, http.StatusConflict, rr.Code, "full")
	rr = env.do(t, http.MethodPost, base+"/players", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, base+"/players/u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]bool{"joined": true}, decode[map[string]bool](t, rr))

	rr = env.do(t, http.MethodPost, base+"/waitlist", map[string]string{"userId": "u2"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"u2"}, decode[reservation.Reservation](t, rr).WaitList)

	rr = env.do(t, http.MethodGet, "/users/u2/waitlist", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, waitlist.Membership{fmt.Sprint(created.ID): true}, decode[waitlist.Membership](t, rr))

	env.bus.Reset()
	rr = env.do(t, http.MethodDelete, base+"/players/u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []pubsub.EventType{pubsub.EventPlayerLeft, pubsub.EventSlotOpened}, env.bus.Topics())

	env.bus.Reset()
	rr = env.do(t, http.MethodDelete, base+"/players/u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[reservation.Reservation](t, rr).Lineup)
	assert.Empty(t, env.bus.Topics())

	rr = env.do(t, http.MethodDelete, base+"/waitlist/u2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[reservation.Reservation](t, rr).WaitList)
}

func TestPitchEndpoints(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, http.MethodPost, "/pitches", map[string]any{
		"name":     "Riverside",
		"city":     "Leeds",
		"services": map[string]any{"type": "outdoor", "parking": true},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[pitch.Pitch](t, rr)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Services.Facilities["parking"])

	rr = env.do(t, http.MethodPatch, "/pitches/"+created.ID, map[string]any{"city": "York"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "York", decode[pitch.Pitch](t, rr).City)

	rr = env.do(t, http.MethodGet, "/pitches", nil)
	assert.Len(t, decode[[]pitch.Pitch](t, rr), 1)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/pitches", map[string]any{}).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/pitches/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/pitches/"+created.ID, nil).Code)
}

func TestStatsAndLeaderboard(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGame(t, 10)
	base := fmt.Sprintf("/reservations/%d", created.ID)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/players", map[string]string{"userId": "u1", "playerName": "Ana"}).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPatch, base, map[string]any{
		"highlights": []map[string]string{{"type": "goal", "playerId": "u1"}},
	}).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, base+"/transition", map[string]string{"status": "completed"}).Code)

	rr := env.do(t, http.MethodGet, "/users/u1/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	s := decode[stats.UserStats](t, rr)
	assert.Equal(t, 1, s.Goals)
	assert.Equal(t, 1, s.Matches)

	rr = env.do(t, http.MethodGet, "/users/nobody/stats", nil)
	assert.Equal(t, stats.UserStats{UserID: "nobody"}, decode[stats.UserStats](t, rr))

	rr = env.do(t, http.MethodGet, "/leaderboard?post=true&dry_run=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]stats.UserStats](t, rr), 1)
	require.Len(t, env.notifier.SendLeaderboardCalls, 1)
	assert.Equal(t, []bool{true}, env.notifier.DryRuns)
}

func TestSyncEndpoint(t *testing.T) {
	env := setupTestServer(t)
	env.backend.GetReservationsFunc = func() ([]reservation.Reservation, error) {
		return []reservation.Reservation{{ExternalID: "ext-1", Title: "From backend", MaxPlayers: 10}}, nil
	}

	rr := env.do(t, http.MethodPost, "/sync", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	result := decode[booking.SyncResult](t, rr)
	assert.Equal(t, 1, result.Reservations.Added)

	env.backend.GetReservationsFunc = func() ([]reservation.Reservation, error) {
		return nil, fmt.Errorf("backend unreachable")
	}
	assert.Equal(t, http.StatusBadGateway, env.do(t, http.MethodPost, "/sync", nil).Code)
}

func TestSessionAndDetails(t *testing.T) {
	env := setupTestServer(t)
	created := env.createGame(t, 10)
	env.bus.Reset()

	assert.Equal(t, http.StatusAccepted, env.do(t, http.MethodPost, "/users/u1/session", map[string]bool{"loggedIn": true}).Code)
	assert.Equal(t, http.StatusAccepted, env.do(t, http.MethodPost, fmt.Sprintf("/reservations/%d/details", created.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/reservations/999/details", nil).Code)

	assert.Equal(t, []pubsub.EventType{pubsub.EventLoginStatus, pubsub.EventShowGameDetails}, env.bus.Topics())
}

func pushBody(t *testing.T, v any) string {
	t.Helper()
	data, err := msgpack.Marshal(v)
	require.NoError(t, err)
	return fmt.Sprintf(`{"subscription":"projects/p/subscriptions/s","message":{"data":%q}}`, base64.StdEncoding.EncodeToString(data))
}

func TestPushHandler(t *testing.T) {
	env := setupTestServer(t)

	body := pushBody(t, pubsub.SlotOpenedEvent{ReservationID: 1, Title: "Friday 5s", OpenSlots: 1, WaitList: []string{"u2"}})
	rr := env.do(t, http.MethodPost, "/pubsub/slot-opened", body)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, env.notifier.SendSlotOpenedCalls, 1)
	assert.Equal(t, "Friday 5s", env.notifier.SendSlotOpenedCalls[0].Title)
	assert.Equal(t, []bool{false}, env.notifier.DryRuns)

	t.Run("dry run", func(t *testing.T) {
		env.notifier.Reset()
		rr := env.do(t, http.MethodPost, "/pubsub/slot-opened?dry_run=true", body)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []bool{true}, env.notifier.DryRuns)
	})

	t.Run("bad wrapper", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/pubsub/slot-opened", "{").Code)
	})
	t.Run("bad base64", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/pubsub/slot-opened", `{"message":{"data":"!!"}}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("undecodable payload is acked", func(t *testing.T) {
		raw := base64.StdEncoding.EncodeToString([]byte{0xc1})
		rr := env.do(t, http.MethodPost, "/pubsub/reservation-status-changed", strings.Replace(`{"message":{"data":"X"}}`, "X", raw, 1))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
