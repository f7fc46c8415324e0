package domain

import "time"

// HistoryEntry is one past interaction as returned by the backend.
type HistoryEntry struct {
	Question string  `json:"question"`
	Model    string  `json:"model"`
	Quality  float64 `json:"quality"`
	Cost     float64 `json:"cost"`
	Date     string  `json:"date"`
}

// ParsedDate interprets Date as an ISO timestamp; ok is false when it cannot.
func (h HistoryEntry) ParsedDate() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, h.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HistoryView is what the history toggle exposes to the view layer.
type HistoryView struct {
	Visible bool
	Entries []HistoryEntry
}
