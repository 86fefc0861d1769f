package repository

import (
	"context"
	"time"

	"github.com/dartbrigade/dartrank/internal/models"
)

// PlayerRepository defines player profile data operations
type PlayerRepository interface {
	ListPlayers(ctx context.Context) ([]models.PlayerProfile, error)
	GetPlayer(ctx context.Context, id string) (*models.PlayerProfile, error)
	UpsertPlayers(ctx context.Context, players []models.PlayerProfile) error
	DeletePlayer(ctx context.Context, id string) error
	ClearPlayers(ctx context.Context) error
}

// TournamentRepository defines tournament document operations
type TournamentRepository interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	UpsertTournaments(ctx context.Context, tournaments []models.Tournament) error
	DeleteTournament(ctx context.Context, id string) error
	ClearTournaments(ctx context.Context) error
}

// ConfigRepository defines scoring/league override and key-value settings
// operations
type ConfigRepository interface {
	GetScoringOverride(ctx context.Context, league models.LeagueID) ([]byte, error)
	SetScoringOverride(ctx context.Context, league models.LeagueID, data []byte) error
	ListScoringOverrides(ctx context.Context) (map[models.LeagueID][]byte, error)

	ListLeagueOverrides(ctx context.Context) (map[models.LeagueID]models.League, error)
	SetLeagueOverride(ctx context.Context, league models.League) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// PartnerRepository defines partner data operations
type PartnerRepository interface {
	ListPartners(ctx context.Context) ([]models.Partner, error)
	GetPartner(ctx context.Context, id string) (*models.Partner, error)
	UpsertPartner(ctx context.Context, partner models.Partner) error
	DeletePartner(ctx context.Context, id string) error
}

// AnalyticsRepository defines visit and sponsor-click counters
type AnalyticsRepository interface {
	LogVisit(ctx context.Context) error
	CountVisitsSince(ctx context.Context, since time.Time) (int, error)
	CountVisits(ctx context.Context) (int, error)
	LogSponsorClick(ctx context.Context, playerID, playerName, sponsorName string) error
	ListSponsorClickCounts(ctx context.Context) ([]SponsorClickCount, error)
}

// SponsorClickCount is one aggregated sponsor-click row
type SponsorClickCount struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	SponsorName string `json:"sponsor_name"`
	Clicks      int    `json:"clicks"`
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	PlayerRepository
	TournamentRepository
	ConfigRepository
	PartnerRepository
	AnalyticsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
