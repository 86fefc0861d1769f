package handlers

import (
	"github.com/dartbrigade/dartrank/internal/auth"
	"github.com/dartbrigade/dartrank/internal/services"
	"github.com/dartbrigade/dartrank/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Ranking    services.RankingServicer
	Settings   services.SettingsServicer
	Tournament services.TournamentServicer
	Player     services.PlayerServicer
	Partner    services.PartnerServicer
	Analytics  services.AnalyticsServicer
	Auth       *auth.Auth
	Hub        *websocket.Hub
	Log        HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	ranking services.RankingServicer,
	settings services.SettingsServicer,
	tournament services.TournamentServicer,
	player services.PlayerServicer,
	partner services.PartnerServicer,
	analytics services.AnalyticsServicer,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
) *Handlers {
	return &Handlers{
		Ranking:    ranking,
		Settings:   settings,
		Tournament: tournament,
		Player:     player,
		Partner:    partner,
		Analytics:  analytics,
		Auth:       adminAuth,
		Hub:        hub,
		Log:        log,
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance with a known admin password and
// no websocket hub
func NewForTesting(
	ranking services.RankingServicer,
	settings services.SettingsServicer,
	tournament services.TournamentServicer,
	player services.PlayerServicer,
	partner services.PartnerServicer,
	analytics services.AnalyticsServicer,
) *Handlers {
	return &Handlers{
		Ranking:    ranking,
		Settings:   settings,
		Tournament: tournament,
		Player:     player,
		Partner:    partner,
		Analytics:  analytics,
		Auth:       auth.New("test-password"),
		Log:        NoopHTTPLogger{},
	}
}
