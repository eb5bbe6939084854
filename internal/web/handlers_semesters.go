package web

import (
	"net/http"

	"github.com/phamqv/studyhub/internal/database"
)

type yearRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type semesterRequest struct {
	YearID int64  `json:"year_id" validate:"required,min=1"`
	Name   string `json:"name" validate:"required,max=100"`
}

type renameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type setCurrentRequest struct {
	SemID int64 `json:"sem_id" validate:"required,min=1"`
}

// handleListYears returns the user's years with nested semesters.
func (s *Server) handleListYears(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	years, err := s.queries.ListYears(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, years)
}

// handleCreateYear adds an academic year.
func (s *Server) handleCreateYear(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req yearRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	id, err := s.queries.CreateYear(r.Context(), userID, req.Name)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"year_id": id})
}

// handleRenameYear changes a year's display name.
func (s *Server) handleRenameYear(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	yearID, err := parseID(r, "yearID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var req renameRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.RenameYear(r.Context(), yearID, userID, req.Name); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteYear removes a year and everything under it.
func (s *Server) handleDeleteYear(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	yearID, err := parseID(r, "yearID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteYear(r.Context(), yearID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleCreateSemester adds a semester under one of the user's years.
func (s *Server) handleCreateSemester(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req semesterRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	id, err := s.queries.CreateSemester(r.Context(), req.YearID, req.Name, userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"sem_id": id})
}

// handleRenameSemester changes a semester's display name.
func (s *Server) handleRenameSemester(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	semID, err := parseID(r, "semID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var req renameRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.RenameSemester(r.Context(), semID, userID, req.Name); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteSemester removes a semester and its schedules.
func (s *Server) handleDeleteSemester(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	semID, err := parseID(r, "semID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteSemester(r.Context(), semID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleSetCurrentSemester flags one semester as the user's current one.
// Clearing the old flag and setting the new one run in a single
// transaction so there is never a window with two current semesters.
func (s *Server) handleSetCurrentSemester(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req setCurrentRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	tx, err := s.pool.Begin(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	defer tx.Rollback(r.Context())

	qtx := s.queries.WithTx(tx)

	owned, err := qtx.SemesterBelongsToUser(r.Context(), req.SemID, userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !owned {
		s.respondError(w, r, database.ErrNotFound, http.StatusNotFound)
		return
	}

	if err := qtx.ClearCurrentSemesters(r.Context(), userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if err := qtx.MarkSemesterCurrent(r.Context(), req.SemID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
