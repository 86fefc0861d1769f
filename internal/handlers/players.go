package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dartbrigade/dartrank/internal/models"
)

func (h *Handlers) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Player.ListPlayers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, players)
}

func (h *Handlers) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.Player.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, player)
}

func (h *Handlers) handleGetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Tournament.PlayerHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, history)
}

// handleGetPlayerQR serves a QR code PNG linking to the player's card
func (h *Handlers) handleGetPlayerQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Player.PlayerCardQR(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handlers) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var player models.PlayerProfile
	if err := decodeJSON(r, &player); err != nil {
		respondError(w, err)
		return
	}
	// The URL is authoritative for identity.
	player.ID = chi.URLParam(r, "id")

	if err := h.Player.UpdatePlayer(r.Context(), player); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, player)
}

func (h *Handlers) handleUpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req AvatarRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Player.UpdateAvatar(r.Context(), chi.URLParam(r, "id"), req.AvatarURL); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Avatar updated")
}

func (h *Handlers) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.Player.DeletePlayer(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.Player.ClearAllData(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "All player and tournament data cleared")
}
