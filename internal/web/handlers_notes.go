package web

import (
	"net/http"

	"github.com/phamqv/studyhub/internal/database"
)

type noteRequest struct {
	SemID       int64  `json:"sem_id" validate:"required,min=1"`
	SubjectName string `json:"subject_name" validate:"max=200"`
	Title       string `json:"title" validate:"required,max=300"`
	Content     string `json:"content"`
}

type noteUpdateRequest struct {
	SubjectName string `json:"subject_name" validate:"max=200"`
	Title       string `json:"title" validate:"required,max=300"`
	Content     string `json:"content"`
}

// handleListNotes returns the user's notes for one semester.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	semID, err := parseID(r, "semID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	notes, err := s.queries.ListNotes(r.Context(), semID, userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// handleCreateNote adds a note.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	id, err := s.queries.CreateNote(r.Context(), database.CreateNoteParams{
		UserID:      userID,
		SemID:       req.SemID,
		SubjectName: optionalText(req.SubjectName),
		Title:       req.Title,
		Content:     optionalText(req.Content),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"note_id": id})
}

// handleUpdateNote rewrites one note owned by the user.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	noteID, err := parseID(r, "noteID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var req noteUpdateRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	err = s.queries.UpdateNote(r.Context(), database.UpdateNoteParams{
		NoteID:      noteID,
		UserID:      userID,
		SubjectName: optionalText(req.SubjectName),
		Title:       req.Title,
		Content:     optionalText(req.Content),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteNote removes one note owned by the user.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	noteID, err := parseID(r, "noteID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteNote(r.Context(), noteID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
