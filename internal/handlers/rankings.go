package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleGetLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.Settings.GetEnabledLeagues(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, leagues)
}

func (h *Handlers) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	league, err := leagueParam(r)
	if err != nil {
		respondError(w, err)
		return
	}
	players, err := h.Ranking.GetRankings(r.Context(), league)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, players)
}

func (h *Handlers) handleGetPlayerRanking(w http.ResponseWriter, r *http.Request) {
	league, err := leagueParam(r)
	if err != nil {
		respondError(w, err)
		return
	}
	player, err := h.Ranking.GetPlayerRanking(r.Context(), league, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, player)
}

func (h *Handlers) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	csvData, err := h.Ranking.ExportCSV(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="rankings.csv"`)
	w.Write([]byte(csvData))
}
