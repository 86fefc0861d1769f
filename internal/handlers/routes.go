package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Public API
	r.Get("/api/leagues", h.handleGetLeagues)
	r.Get("/api/rankings/{league}", h.handleGetRankings)
	r.Get("/api/rankings/{league}/players/{id}", h.handleGetPlayerRanking)

	r.Get("/api/players", h.handleGetPlayers)
	r.Get("/api/players/{id}", h.handleGetPlayer)
	r.Get("/api/players/{id}/history", h.handleGetPlayerHistory)
	r.Get("/api/players/{id}/qr", h.handleGetPlayerQR)

	r.Get("/api/tournaments", h.handleGetTournaments)
	r.Get("/api/tournaments/{id}", h.handleGetTournament)

	r.Get("/api/partners", h.handleGetPartners)
	r.Get("/api/sponsorship", h.handleGetSponsorship)
	r.Get("/api/background", h.handleGetBackground)

	r.Post("/api/visit", h.handleLogVisit)
	r.Post("/api/sponsor-click", h.handleSponsorClick)

	// Auth routes (public)
	r.Post("/api/admin/login", h.handleLogin)
	r.Post("/api/admin/logout", h.handleLogout)
	r.Get("/api/admin/session", h.handleSession)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Tournaments
		r.Post("/api/admin/tournaments/import", h.handleImportTournaments)
		r.Delete("/api/admin/tournaments/{id}", h.handleDeleteTournament)
		r.Delete("/api/admin/tournaments", h.handleClearTournaments)

		// Players
		r.Put("/api/admin/players/{id}", h.handleUpdatePlayer)
		r.Put("/api/admin/players/{id}/avatar", h.handleUpdateAvatar)
		r.Delete("/api/admin/players/{id}", h.handleDeletePlayer)

		// Scoring & leagues
		r.Get("/api/admin/scoring", h.handleGetAllScoringSettings)
		r.Get("/api/admin/scoring/{league}", h.handleGetScoringSettings)
		r.Put("/api/admin/scoring/{league}", h.handleUpdateScoringSettings)
		r.Get("/api/admin/leagues", h.handleGetAllLeagues)
		r.Put("/api/admin/leagues", h.handleUpdateLeagues)

		// Site settings
		r.Get("/api/admin/base-url", h.handleGetBaseURL)
		r.Put("/api/admin/base-url", h.handleSetBaseURL)
		r.Put("/api/admin/background", h.handleSetBackground)
		r.Get("/api/admin/sponsorship", h.handleGetSponsorship)
		r.Put("/api/admin/sponsorship", h.handleUpdateSponsorship)

		// Partners
		r.Post("/api/admin/partners", h.handleSavePartner)
		r.Put("/api/admin/partners/{id}", h.handleSavePartner)
		r.Delete("/api/admin/partners/{id}", h.handleDeletePartner)

		// Stats & export
		r.Get("/api/admin/stats", h.handleGetStats)
		r.Get("/api/admin/export/csv", h.handleExportCSV)

		// Database management
		r.Post("/api/admin/clear-data", h.handleClearAllData)
	})

	return r
}
