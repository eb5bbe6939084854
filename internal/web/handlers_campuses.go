package web

import (
	"net/http"
)

type campusRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
}

// handleListCampuses returns the user's campuses.
func (s *Server) handleListCampuses(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	campuses, err := s.queries.ListCampuses(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, campuses)
}

// handleGetOrCreateCampus returns the named campus, creating it if absent.
// Posting an existing name is not an error; the existing row comes back
// with a 200 instead of a 201.
func (s *Server) handleGetOrCreateCampus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req campusRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	campus, created, err := s.queries.GetOrCreateCampus(r.Context(), userID, req.Name, optionalText(req.Address))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, campus)
}

// handleDeleteCampus removes one campus owned by the user.
func (s *Server) handleDeleteCampus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	camID, err := parseID(r, "camID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteCampus(r.Context(), camID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
