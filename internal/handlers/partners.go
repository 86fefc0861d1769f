package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dartbrigade/dartrank/internal/models"
)

func (h *Handlers) handleGetPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.Partner.ListPartners(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, partners)
}

// handleSavePartner serves both create and update; the id in the URL, when
// present, wins over the one in the body.
func (h *Handlers) handleSavePartner(w http.ResponseWriter, r *http.Request) {
	var partner models.Partner
	if err := decodeJSON(r, &partner); err != nil {
		respondError(w, err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		partner.ID = id
	}

	if err := h.Partner.SavePartner(r.Context(), partner); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, partner)
}

func (h *Handlers) handleDeletePartner(w http.ResponseWriter, r *http.Request) {
	if err := h.Partner.DeletePartner(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}
