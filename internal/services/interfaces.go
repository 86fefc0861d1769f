package services

import (
	"context"

	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
)

// RankingServicer defines the interface for ranking operations
type RankingServicer interface {
	GetRankings(ctx context.Context, league models.LeagueID) ([]models.Player, error)
	GetPlayerRanking(ctx context.Context, league models.LeagueID, playerID string) (*models.Player, error)
	ExportCSV(ctx context.Context) (string, error)
	InvalidateAll()
	SetBroadcaster(b Broadcaster)
}

// SettingsServicer defines the interface for configuration operations
type SettingsServicer interface {
	GetScoringSettings(ctx context.Context, league models.LeagueID) (models.ScoringSettings, error)
	GetAllScoringSettings(ctx context.Context) (map[models.LeagueID]models.ScoringSettings, error)
	UpdateScoringSettings(ctx context.Context, league models.LeagueID, settings models.ScoringSettings) error
	GetLeagueSettings(ctx context.Context) (map[models.LeagueID]models.League, error)
	GetEnabledLeagues(ctx context.Context) ([]models.League, error)
	UpdateLeagueSettings(ctx context.Context, leagues []models.League) error
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetBackgroundURL(ctx context.Context) (string, error)
	SetBackgroundURL(ctx context.Context, url string) error
	GetSponsorshipSettings(ctx context.Context) (models.SponsorshipSettings, error)
	UpdateSponsorshipSettings(ctx context.Context, settings models.SponsorshipSettings) error
}

// TournamentServicer defines the interface for tournament operations
type TournamentServicer interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ImportTournaments(ctx context.Context, rawIDs string, league models.LeagueID) (*ImportResult, error)
	DeleteTournament(ctx context.Context, id string) error
	ClearTournaments(ctx context.Context) error
	PlayerHistory(ctx context.Context, playerID string) ([]models.PlayerTournamentHistory, error)
}

// PlayerServicer defines the interface for player profile operations
type PlayerServicer interface {
	ListPlayers(ctx context.Context) ([]models.PlayerProfile, error)
	GetPlayer(ctx context.Context, id string) (*models.PlayerProfile, error)
	UpdatePlayer(ctx context.Context, player models.PlayerProfile) error
	UpdateAvatar(ctx context.Context, playerID, avatarURL string) error
	DeletePlayer(ctx context.Context, id string) error
	ClearAllData(ctx context.Context) error
	PlayerCardQR(ctx context.Context, playerID string) ([]byte, error)
}

// PartnerServicer defines the interface for partner operations
type PartnerServicer interface {
	ListPartners(ctx context.Context) ([]models.Partner, error)
	GetPartner(ctx context.Context, id string) (*models.Partner, error)
	SavePartner(ctx context.Context, partner models.Partner) error
	DeletePartner(ctx context.Context, id string) error
}

// AnalyticsServicer defines the interface for analytics operations
type AnalyticsServicer interface {
	LogVisit(ctx context.Context, userAgent string) error
	LogSponsorClick(ctx context.Context, playerID, sponsorName string) error
	GetStats(ctx context.Context) (*VisitStats, error)
}

// VisitStats aggregates visit counters and sponsor-click totals
type VisitStats struct {
	Day           int                            `json:"day"`
	Week          int                            `json:"week"`
	Year          int                            `json:"year"`
	Total         int                            `json:"total"`
	SponsorClicks []repository.SponsorClickCount `json:"sponsor_clicks"`
}

// Broadcaster defines the interface for pushing updates to connected clients
type Broadcaster interface {
	BroadcastRankingsInvalidated()
}

// Invalidator is the cache-invalidation hook handed to mutating services.
// Every persistence mutation must invalidate before reporting success.
type Invalidator interface {
	InvalidateAll()
}

// Ensure concrete types implement interfaces
var (
	_ RankingServicer    = (*RankingService)(nil)
	_ SettingsServicer   = (*SettingsService)(nil)
	_ TournamentServicer = (*TournamentService)(nil)
	_ PlayerServicer     = (*PlayerService)(nil)
	_ PartnerServicer    = (*PartnerService)(nil)
	_ AnalyticsServicer  = (*AnalyticsService)(nil)
)
