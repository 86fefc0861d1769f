package handlers

import "net/http"

func (h *Handlers) handleLogVisit(w http.ResponseWriter, r *http.Request) {
	if err := h.Analytics.LogVisit(r.Context(), r.UserAgent()); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "ok")
}

func (h *Handlers) handleSponsorClick(w http.ResponseWriter, r *http.Request) {
	var req SponsorClickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.PlayerID == "" {
		respondError(w, BadRequest("Missing player_id"))
		return
	}
	if err := h.Analytics.LogSponsorClick(r.Context(), req.PlayerID, req.SponsorName); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "ok")
}

func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}
