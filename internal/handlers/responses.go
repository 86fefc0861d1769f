package handlers

import "github.com/dartbrigade/dartrank/internal/models"

// SessionResponse reports whether the request carries a valid admin session
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// ScoringSettingsResponse pairs a league with its resolved rule set
type ScoringSettingsResponse struct {
	League   models.LeagueID        `json:"league"`
	Settings models.ScoringSettings `json:"settings"`
}

// BackgroundResponse carries the public site background image URL
type BackgroundResponse struct {
	URL string `json:"url"`
}
