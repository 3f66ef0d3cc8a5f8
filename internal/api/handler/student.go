package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/classquiz/internal/api/request"
	"github.com/mcoot/classquiz/internal/api/response"
	"github.com/mcoot/classquiz/internal/services/roster"
)

// StudentHandler handles login and dashboard endpoints
type StudentHandler struct {
	roster *roster.Service
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(rosterService *roster.Service) *StudentHandler {
	return &StudentHandler{
		roster: rosterService,
	}
}

// Login handles POST /api/v1/students/login
func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.roster.Login(r.Context(), roster.LoginRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Classroom: req.Classroom,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// List handles GET /api/v1/students
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.roster.ListStudents(r.Context(), r.URL.Query().Get("classroom"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StudentList{
		Students: response.PlayersFromModel(players),
		Count:    len(players),
	})
}

// Stats handles GET /api/v1/students/stats
func (h *StudentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.roster.ClassStats(r.Context(), r.URL.Query().Get("classroom"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClassStats{
		Classroom:     stats.Classroom,
		TotalStudents: stats.TotalStudents,
		ActiveToday:   stats.ActiveToday,
	})
}

// ResetAll handles POST /api/v1/students/reset
func (h *StudentHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.roster.ResetAll(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResetAll{Reset: count})
}
