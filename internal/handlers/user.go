package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.List(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("listing users failed")
		sendError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		sendError(w, "user_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByID(r.Context(), userID.String())
	if err != nil {
		h.Log.WithError(err).Error("fetching user failed")
		sendError(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		sendError(w, "User not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Collect(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("collecting stats failed")
		sendError(w, "Failed to collect stats", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, stats)
}
