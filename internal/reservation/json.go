package reservation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// playerJSON is the wire shape of a lineup entry. Older clients read the
// display name from playerName, so both names are written.
type playerJSON struct {
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	PlayerName string       `json:"playerName"`
	Status     PlayerStatus `json:"status"`
	JoinedAt   time.Time    `json:"joinedAt"`
	Avatar     string       `json:"avatar,omitempty"`
}

func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerJSON{
		UserID:     p.UserID,
		Name:       p.Name,
		PlayerName: p.Name,
		Status:     p.Status,
		JoinedAt:   p.JoinedAt,
		Avatar:     p.Avatar,
	})
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var raw playerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	name := raw.Name
	if name == "" {
		name = raw.PlayerName
	}
	*p = Player{
		UserID:   raw.UserID,
		Name:     name,
		Status:   raw.Status,
		JoinedAt: raw.JoinedAt,
		Avatar:   raw.Avatar,
	}
	return nil
}

type summaryJSON struct {
	Text    string          `json:"text,omitempty"`
	Score   *Score          `json:"score,omitempty"`
	Players []SummaryPlayer `json:"players,omitempty"`
}

// IsStructured reports whether the summary carries a score or player lines.
func (s Summary) IsStructured() bool {
	return s.Score != nil || len(s.Players) > 0
}

func (s Summary) MarshalJSON() ([]byte, error) {
	if !s.IsStructured() {
		return json.Marshal(s.Text)
	}
	return json.Marshal(summaryJSON(s))
}

func (s *Summary) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Summary{}
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Summary{Text: text}
		return nil
	case '{':
		var raw summaryJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = Summary(raw)
		return nil
	default:
		return fmt.Errorf("summary must be a string or an object, got %q", string(data[:1]))
	}
}
