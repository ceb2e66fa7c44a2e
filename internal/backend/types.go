package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mauv0809/pitchside/internal/reservation"
)

// APIClient talks to the booking backend over REST.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	token      string
}

// User is the profile returned by the backend.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type reservationsData struct {
	Reservations []RawReservation `json:"reservations"`
}

type pitchesData struct {
	Pitches []RawPitch `json:"pitches"`
}

type userData struct {
	User RawUser `json:"user"`
}

// RawReservation is the reservation shape the backend sends.
type RawReservation struct {
	ID             string                  `json:"_id"`
	Pitch          RawPitch                `json:"pitch"`
	Date           string                  `json:"date"`
	StartTime      string                  `json:"startTime"`
	EndTime        string                  `json:"endTime"`
	Title          string                  `json:"title"`
	MaxPlayers     int                     `json:"maxPlayers"`
	Price          float64                 `json:"price"`
	Status         string                  `json:"status"`
	CreatedBy      UserRef                 `json:"createdBy"`
	CurrentPlayers []RawUser               `json:"currentPlayers"`
	WaitList       []UserRef               `json:"waitList"`
	Summary        *reservation.Summary    `json:"summary"`
	Highlights     []reservation.Highlight `json:"highlights"`
}

// RawPitch is the pitch shape the backend sends, nested or standalone.
type RawPitch struct {
	ID              string          `json:"_id"`
	Name            string          `json:"name"`
	Location        string          `json:"location"`
	City            string          `json:"city"`
	BackgroundImage string          `json:"backgroundImage"`
	Gallery         []string        `json:"gallery"`
	PlayersPerSide  int             `json:"playersPerSide"`
	Description     string          `json:"description"`
	Services        json.RawMessage `json:"services"`
}

// RawUser is a user object as embedded in reservations.
type RawUser struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	PlayerName string `json:"playerName"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	JoinedAt   string `json:"joinedAt"`
}

// UserRef is a user reference that the backend sends either as a bare id
// string or as a user object.
type UserRef string

func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*u = UserRef(id)
		return nil
	}
	var obj struct {
		ID  string `json:"_id"`
		Alt string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("user reference must be an id or an object: %w", err)
	}
	if obj.ID == "" {
		obj.ID = obj.Alt
	}
	*u = UserRef(obj.ID)
	return nil
}
