package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/classquiz/internal/api/middleware"
	"github.com/mcoot/classquiz/internal/api/request"
	"github.com/mcoot/classquiz/internal/api/response"
	"github.com/mcoot/classquiz/internal/services/roster"
)

// ProgressHandler handles per-student progress endpoints.
// Routes are expected to run behind middleware.LoadPlayer.
type ProgressHandler struct {
	roster *roster.Service
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(rosterService *roster.Service) *ProgressHandler {
	return &ProgressHandler{
		roster: rosterService,
	}
}

// Get handles GET /api/v1/students/{id}/progress
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.ProgressFromModel(player.ID, player.Progress()))
}

// Record handles POST /api/v1/students/{id}/progress
func (h *ProgressHandler) Record(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.RecordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Value == "" {
		WriteError(w, NewInvalidRequestError("value is required"))
		return
	}

	updated, err := h.roster.RecordProgress(r.Context(), player.ID, req.Kind, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressUpdate{Updated: updated})
}

// Reset handles POST /api/v1/students/{id}/reset
func (h *ProgressHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	updated, err := h.roster.ResetPlayer(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// ResetChapter handles POST /api/v1/students/{id}/reset-chapter
func (h *ProgressHandler) ResetChapter(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.ResetChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.LevelIDs == nil {
		WriteError(w, NewInvalidRequestError("level_ids is required"))
		return
	}

	updated, err := h.roster.ResetChapter(r.Context(), player.ID, req.LevelIDs)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}
