// Package backend reads reservations, pitches and users from the booking
// backend and maps them into local types.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// NewClient creates a client for the backend at baseURL. token is sent as a
// bearer token when not empty.
func NewClient(baseURL, token string) BackendClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Ensure APIClient implements the BackendClient interface.
var _ BackendClient = (*APIClient)(nil)

// GetReservations fetches all reservations. Rows that fail validation are
// skipped and logged.
func (c *APIClient) GetReservations(ctx context.Context) ([]reservation.Reservation, error) {
	var resp envelope[reservationsData]
	if err := c.get(ctx, "/reservations", &resp); err != nil {
		return nil, err
	}
	reservations := make([]reservation.Reservation, 0, len(resp.Data.Reservations))
	for _, raw := range resp.Data.Reservations {
		r, err := MapReservation(raw)
		if err != nil {
			log.Warn("Skipping backend reservation", "externalID", raw.ID, "error", err)
			continue
		}
		reservations = append(reservations, r)
	}
	log.Info("Fetched reservations from backend", "count", len(reservations), "skipped", len(resp.Data.Reservations)-len(reservations))
	return reservations, nil
}

// GetPitches fetches the pitch catalog.
func (c *APIClient) GetPitches(ctx context.Context) ([]pitch.Pitch, error) {
	var resp envelope[pitchesData]
	if err := c.get(ctx, "/pitches", &resp); err != nil {
		return nil, err
	}
	pitches := make([]pitch.Pitch, 0, len(resp.Data.Pitches))
	for _, raw := range resp.Data.Pitches {
		p, err := MapPitch(raw)
		if err != nil {
			log.Warn("Skipping backend pitch", "pitchID", raw.ID, "error", err)
			continue
		}
		pitches = append(pitches, p)
	}
	log.Info("Fetched pitches from backend", "count", len(pitches))
	return pitches, nil
}

// GetUser fetches a single user profile.
func (c *APIClient) GetUser(ctx context.Context, userID string) (User, error) {
	var resp envelope[userData]
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &resp); err != nil {
		return User{}, err
	}
	if resp.Data.User.ID == "" {
		return User{}, fmt.Errorf("user %s not found in backend response", userID)
	}
	return mapUser(resp.Data.User), nil
}

func (c *APIClient) get(ctx context.Context, path string, v any) error {
	endpoint := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PitchsideGoClient/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("Requesting backend", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from backend", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
