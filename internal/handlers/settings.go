package handlers

import (
	"net/http"

	"github.com/dartbrigade/dartrank/internal/models"
)

func (h *Handlers) handleGetAllScoringSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.Settings.GetAllScoringSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	// Stable order for the admin UI.
	out := make([]ScoringSettingsResponse, 0, len(all))
	for _, id := range models.AllLeagueIDs {
		out = append(out, ScoringSettingsResponse{League: id, Settings: all[id]})
	}
	respondOK(w, out)
}

func (h *Handlers) handleGetScoringSettings(w http.ResponseWriter, r *http.Request) {
	league, err := leagueParam(r)
	if err != nil {
		respondError(w, err)
		return
	}
	settings, err := h.Settings.GetScoringSettings(r.Context(), league)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ScoringSettingsResponse{League: league, Settings: settings})
}

func (h *Handlers) handleUpdateScoringSettings(w http.ResponseWriter, r *http.Request) {
	league, err := leagueParam(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var settings models.ScoringSettings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Settings.UpdateScoringSettings(r.Context(), league, settings); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ScoringSettingsResponse{League: league, Settings: settings})
}

func (h *Handlers) handleGetAllLeagues(w http.ResponseWriter, r *http.Request) {
	all, err := h.Settings.GetLeagueSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]models.League, 0, len(all))
	for _, id := range models.AllLeagueIDs {
		out = append(out, all[id])
	}
	respondOK(w, out)
}

func (h *Handlers) handleUpdateLeagues(w http.ResponseWriter, r *http.Request) {
	var req LeaguesUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Settings.UpdateLeagueSettings(r.Context(), req.Leagues); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, req.Leagues)
}

func (h *Handlers) handleGetBaseURL(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, BaseURLRequest{BaseURL: baseURL})
}

func (h *Handlers) handleSetBaseURL(w http.ResponseWriter, r *http.Request) {
	var req BaseURLRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Base URL updated")
}

func (h *Handlers) handleGetBackground(w http.ResponseWriter, r *http.Request) {
	url, err := h.Settings.GetBackgroundURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, BackgroundResponse{URL: url})
}

func (h *Handlers) handleSetBackground(w http.ResponseWriter, r *http.Request) {
	var req BackgroundRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Settings.SetBackgroundURL(r.Context(), req.URL); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, BackgroundResponse{URL: req.URL})
}

func (h *Handlers) handleGetSponsorship(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.GetSponsorshipSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleUpdateSponsorship(w http.ResponseWriter, r *http.Request) {
	var settings models.SponsorshipSettings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Settings.UpdateSponsorshipSettings(r.Context(), settings); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}
