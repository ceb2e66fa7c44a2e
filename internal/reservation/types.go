package reservation

import (
	"sync"
	"time"

	"github.com/mauv0809/pitchside/internal/metrics"
	"github.com/mauv0809/pitchside/internal/storage"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PlayerStatus is the state of a single lineup entry.
type PlayerStatus string

const (
	PlayerJoined    PlayerStatus = "joined"
	PlayerPending   PlayerStatus = "pending"
	PlayerCancelled PlayerStatus = "cancelled"
)

// HighlightType classifies an in-game event.
type HighlightType string

const (
	HighlightGoal       HighlightType = "goal"
	HighlightAssist     HighlightType = "assist"
	HighlightMVP        HighlightType = "mvp"
	HighlightCleanSheet HighlightType = "clean_sheet"
)

// Team is the side a player was on in a finished game.
type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

// PitchRef is the denormalized pitch a reservation points at.
type PitchRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	City     string `json:"city,omitempty"`
}

// Player is one lineup entry. It is owned by its reservation.
type Player struct {
	UserID   string
	Name     string
	Status   PlayerStatus
	JoinedAt time.Time
	Avatar   string
}

// Highlight is a discrete event attributed to a player.
type Highlight struct {
	Type     HighlightType `json:"type"`
	PlayerID string        `json:"playerId"`
	Minute   int           `json:"minute,omitempty"`
}

type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// SummaryPlayer is the per-player line of a structured game summary.
type SummaryPlayer struct {
	PlayerID   string `json:"playerId"`
	Team       Team   `json:"team,omitempty"`
	Goals      int    `json:"goals,omitempty"`
	Assists    int    `json:"assists,omitempty"`
	MVP        bool   `json:"mvp,omitempty"`
	CleanSheet bool   `json:"cleanSheet,omitempty"`
}

// Summary is either free text or a structured score. On the wire a text-only
// summary is a plain JSON string.
type Summary struct {
	Text    string
	Score   *Score
	Players []SummaryPlayer
}

// Reservation is one bookable game instance.
type Reservation struct {
	ID            int64       `json:"id"`
	ExternalID    string      `json:"externalId,omitempty"`
	Pitch         PitchRef    `json:"pitch"`
	Date          string      `json:"date"`
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	Duration      int         `json:"duration"`
	Title         string      `json:"title"`
	MaxPlayers    int         `json:"maxPlayers"`
	Price         float64     `json:"price"`
	Status        Status      `json:"status"`
	CreatedBy     string      `json:"createdBy,omitempty"`
	Summary       *Summary    `json:"summary,omitempty"`
	Highlights    []Highlight `json:"highlights,omitempty"`
	Lineup        []Player    `json:"lineup"`
	WaitList      []string    `json:"waitList"`
	PlayersJoined int         `json:"playersJoined"`
}

// ReservationUpdate is a shallow patch. Nil fields are left untouched. The
// lineup and waiting list are only changed through the roster operations.
type ReservationUpdate struct {
	Pitch      *PitchRef    `json:"pitch,omitempty"`
	Date       *string      `json:"date,omitempty"`
	StartTime  *string      `json:"startTime,omitempty"`
	EndTime    *string      `json:"endTime,omitempty"`
	Duration   *int         `json:"duration,omitempty"`
	Title      *string      `json:"title,omitempty"`
	MaxPlayers *int         `json:"maxPlayers,omitempty"`
	Price      *float64     `json:"price,omitempty"`
	Status     *Status      `json:"status,omitempty"`
	Summary    *Summary     `json:"summary,omitempty"`
	Highlights *[]Highlight `json:"highlights,omitempty"`
}

// MergeResult reports what a server snapshot changed locally.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

// book is the in-memory reservation collection mirrored to storage.
type book struct {
	store   storage.Store
	key     string
	metrics metrics.Metrics
	now     func() time.Time

	mu           sync.RWMutex
	reservations []Reservation
	lastID       int64
}
