package stats

// UserStats is derived from the reservation collection on every call.
type UserStats struct {
	UserID        string  `json:"userId"`
	PlayerName    string  `json:"playerName,omitempty"`
	Wins          int     `json:"wins"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	Matches       int     `json:"matches"`
	CleanSheets   int     `json:"cleanSheets"`
	MVPs          int     `json:"mvps"`
	WinPercentage float64 `json:"winPercentage"`
}
