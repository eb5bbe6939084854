package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/phamqv/studyhub/internal/core"
	"github.com/phamqv/studyhub/internal/database"
)

// scheduleRequest is the JSON body for creating or updating one schedule
// entry by hand. Unlike the CSV import path, manual entries are validated
// up front: the API rejects out-of-range days instead of letting the
// database constraint do it.
type scheduleRequest struct {
	SemID         int64  `json:"sem_id" validate:"required,min=1"`
	SubjectName   string `json:"subject_name" validate:"required"`
	CampusName    string `json:"campus_name"`
	CampusAddress string `json:"campus_address"`
	DayOfWeek     int16  `json:"day_of_week" validate:"required,min=2,max=8"`
	StartTime     string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string `json:"end_time" validate:"required,datetime=15:04"`
	Room          string `json:"room"`
	SessionType   string `json:"type" validate:"omitempty,oneof=lt th"`
}

// toParams converts a validated request into store parameters.
func (req *scheduleRequest) toParams(userID int64) core.ScheduleParams {
	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = core.SessionTypeLecture
	}
	return core.ScheduleParams{
		UserID:        userID,
		SemID:         req.SemID,
		SubjectName:   strings.TrimSpace(req.SubjectName),
		CampusName:    optionalText(req.CampusName),
		CampusAddress: optionalText(req.CampusAddress),
		DayOfWeek:     pgtype.Int2{Int16: req.DayOfWeek, Valid: true},
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Room:          optionalText(req.Room),
		SessionType:   sessionType,
	}
}

// handleListSchedules returns the user's entries for one semester.
func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	semID, err := parseID(r, "semID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	entries, err := s.queries.ListSchedules(r.Context(), semID, userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleCreateSchedule adds a single entry.
func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	id, err := s.queries.CreateSchedule(r.Context(), req.toParams(userID))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"schedule_id": id})
}

// handleUpdateSchedule rewrites one entry owned by the user.
func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	scheduleID, err := parseID(r, "scheduleID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var req scheduleRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	err = s.queries.UpdateSchedule(r.Context(), database.UpdateScheduleParams{
		ScheduleID:     scheduleID,
		ScheduleParams: req.toParams(userID),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteSchedule removes one entry owned by the user.
func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	scheduleID, err := parseID(r, "scheduleID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteSchedule(r.Context(), scheduleID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// previewResponse wraps a preview result for JSON encoding.
type previewResponse struct {
	Success bool `json:"success"`
	*core.PreviewResult
}

// commitResponse wraps a commit result for JSON encoding.
type commitResponse struct {
	Success bool `json:"success"`
	*core.CommitResult
}

// handleImportSchedules accepts a multipart CSV upload and runs the
// two-phase import. Without confirm=true the file is only validated and a
// preview is returned; with confirm=true every valid row is persisted.
// Both phases re-read the uploaded file, so the client sends it twice.
func (s *Server) handleImportSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	// Multipart parsing may spill large files to disk; clean up on every
	// exit path.
	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	semID, err := importSemID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	confirm := r.FormValue("confirm")
	if confirm == "" {
		confirm = r.URL.Query().Get("confirm")
	}

	if confirm == "true" {
		result, err := s.importer.Commit(r.Context(), file, userID, semID)
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, commitResponse{Success: true, CommitResult: result})
		return
	}

	result, err := s.importer.Preview(r.Context(), file, userID, semID)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Success: true, PreviewResult: result})
}

// importSemID resolves the target semester from the form or query string.
func importSemID(r *http.Request) (int64, error) {
	raw := r.FormValue("sem_id")
	if raw == "" {
		raw = r.URL.Query().Get("sem_id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid sem_id %q", raw)
	}
	return id, nil
}
