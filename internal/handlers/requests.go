package handlers

import "github.com/dartbrigade/dartrank/internal/models"

// LoginRequest is the admin login payload
type LoginRequest struct {
	Password string `json:"password"`
}

// ImportRequest asks for a batch of tournaments to be scraped and stored.
// IDs is free text: pasted URLs, comma lists, whatever contains digit runs.
type ImportRequest struct {
	IDs    string          `json:"ids"`
	League models.LeagueID `json:"league"`
}

// LeaguesUpdateRequest replaces league metadata
type LeaguesUpdateRequest struct {
	Leagues []models.League `json:"leagues"`
}

// BaseURLRequest sets the externally reachable base URL
type BaseURLRequest struct {
	BaseURL string `json:"base_url"`
}

// BackgroundRequest sets the public site background image URL
type BackgroundRequest struct {
	URL string `json:"url"`
}

// AvatarRequest replaces a player's avatar image URL
type AvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// SponsorClickRequest records a click on a player's sponsor link
type SponsorClickRequest struct {
	PlayerID    string `json:"player_id"`
	SponsorName string `json:"sponsor_name"`
}
