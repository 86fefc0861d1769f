package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleGetTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.Tournament.ListTournaments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tournaments)
}

func (h *Handlers) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.Tournament.GetTournament(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tournament)
}

func (h *Handlers) handleImportTournaments(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if strings.TrimSpace(req.IDs) == "" {
		respondError(w, BadRequest("No tournament ids provided"))
		return
	}

	result, err := h.Tournament.ImportTournaments(r.Context(), req.IDs, req.League)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

func (h *Handlers) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := h.Tournament.DeleteTournament(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleClearTournaments(w http.ResponseWriter, r *http.Request) {
	if err := h.Tournament.ClearTournaments(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "All tournaments cleared")
}
