package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauv0809/pitchside/internal/pitch"
	"github.com/mauv0809/pitchside/internal/reservation"
)

// ErrInvalidReservation wraps every validation failure of MapReservation.
var ErrInvalidReservation = errors.New("invalid backend reservation")

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// MapReservation validates a backend reservation and converts it to the
// local shape. The local id is left zero; the book assigns it.
func MapReservation(raw RawReservation) (reservation.Reservation, error) {
	if raw.ID == "" {
		return reservation.Reservation{}, fmt.Errorf("%w: missing _id", ErrInvalidReservation)
	}
	start, err := time.Parse(time.RFC3339, raw.StartTime)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: bad startTime %q", ErrInvalidReservation, raw.ID, raw.StartTime)
	}
	end, err := time.Parse(time.RFC3339, raw.EndTime)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: bad endTime %q", ErrInvalidReservation, raw.ID, raw.EndTime)
	}
	if !end.After(start) {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: endTime is not after startTime", ErrInvalidReservation, raw.ID)
	}
	date, err := mapDate(raw.Date)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: bad date %q", ErrInvalidReservation, raw.ID, raw.Date)
	}
	if raw.MaxPlayers <= 0 {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: maxPlayers must be positive", ErrInvalidReservation, raw.ID)
	}
	status, err := mapStatus(raw.Status)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("%w: %s: %v", ErrInvalidReservation, raw.ID, err)
	}

	lineup := make([]reservation.Player, 0, len(raw.CurrentPlayers))
	for _, u := range raw.CurrentPlayers {
		if u.ID == "" {
			continue
		}
		lineup = append(lineup, mapPlayer(u))
	}
	waitList := make([]string, 0, len(raw.WaitList))
	for _, ref := range raw.WaitList {
		if ref != "" {
			waitList = append(waitList, string(ref))
		}
	}

	title := raw.Title
	if title == "" {
		title = raw.Pitch.Name
	}

	return reservation.Reservation{
		ExternalID: raw.ID,
		Pitch: reservation.PitchRef{
			ID:       raw.Pitch.ID,
			Name:     raw.Pitch.Name,
			Location: raw.Pitch.Location,
			City:     raw.Pitch.City,
		},
		Date:          date,
		StartTime:     start.Format(hourLayout),
		EndTime:       end.Format(hourLayout),
		Duration:      int(end.Sub(start).Minutes()),
		Title:         title,
		MaxPlayers:    raw.MaxPlayers,
		Price:         raw.Price,
		Status:        status,
		CreatedBy:     string(raw.CreatedBy),
		Summary:       raw.Summary,
		Highlights:    raw.Highlights,
		Lineup:        lineup,
		WaitList:      waitList,
		PlayersJoined: len(lineup),
	}, nil
}

// MapPitch converts a backend pitch. Unknown services payloads are dropped.
func MapPitch(raw RawPitch) (pitch.Pitch, error) {
	if raw.ID == "" {
		return pitch.Pitch{}, errors.New("pitch is missing _id")
	}
	p := pitch.Pitch{
		ID:              raw.ID,
		Name:            raw.Name,
		Location:        raw.Location,
		City:            raw.City,
		BackgroundImage: raw.BackgroundImage,
		Gallery:         raw.Gallery,
		PlayersPerSide:  raw.PlayersPerSide,
		Description:     raw.Description,
	}
	if len(raw.Services) > 0 && string(raw.Services) != "null" {
		if err := json.Unmarshal(raw.Services, &p.Services); err != nil {
			return pitch.Pitch{}, fmt.Errorf("pitch %s: %w", raw.ID, err)
		}
	}
	return p, nil
}

func mapUser(raw RawUser) User {
	name := raw.Name
	if name == "" {
		name = raw.PlayerName
	}
	return User{ID: raw.ID, Name: name, Email: raw.Email, Avatar: raw.Avatar, Role: raw.Role}
}

func mapPlayer(raw RawUser) reservation.Player {
	p := reservation.Player{
		UserID: raw.ID,
		Name:   mapUser(raw).Name,
		Status: reservation.PlayerStatus(raw.Status),
		Avatar: raw.Avatar,
	}
	if p.Name == "" {
		p.Name = reservation.FallbackName(raw.ID)
	}
	switch p.Status {
	case reservation.PlayerJoined, reservation.PlayerPending, reservation.PlayerCancelled:
	default:
		p.Status = reservation.PlayerJoined
	}
	if joined, err := time.Parse(time.RFC3339, raw.JoinedAt); err == nil {
		p.JoinedAt = joined.UTC()
	}
	return p
}

// mapDate accepts a plain calendar date or a full timestamp.
func mapDate(s string) (string, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d.Format(dateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

func mapStatus(s string) (reservation.Status, error) {
	switch strings.ToLower(s) {
	case "", string(reservation.StatusUpcoming):
		return reservation.StatusUpcoming, nil
	case string(reservation.StatusCompleted):
		return reservation.StatusCompleted, nil
	case string(reservation.StatusCancelled), "canceled":
		return reservation.StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
