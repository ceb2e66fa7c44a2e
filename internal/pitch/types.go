package pitch

import "sync"

// Services describes the facilities of a pitch. On the wire it is a flat
// object: "type" holds indoor/outdoor and every other key is a flag.
type Services struct {
	Type       string
	Facilities map[string]bool
}

// Pitch is a bookable venue.
type Pitch struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
	Gallery         []string `json:"gallery,omitempty"`
	PlayersPerSide  int      `json:"playersPerSide"`
	Description     string   `json:"description,omitempty"`
	Services        Services `json:"services"`
}

// PitchUpdate is a shallow patch; nil fields are left untouched.
type PitchUpdate struct {
	Name            *string   `json:"name,omitempty"`
	Location        *string   `json:"location,omitempty"`
	City            *string   `json:"city,omitempty"`
	BackgroundImage *string   `json:"backgroundImage,omitempty"`
	Gallery         *[]string `json:"gallery,omitempty"`
	PlayersPerSide  *int      `json:"playersPerSide,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Services        *Services `json:"services,omitempty"`
}

// catalog holds pitches in memory only.
type catalog struct {
	mu      sync.RWMutex
	pitches []Pitch
}
