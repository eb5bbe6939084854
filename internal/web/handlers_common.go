// Package web provides HTTP handlers for the schedule API.
// This file contains shared utilities used across handlers.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/phamqv/studyhub/internal/web/middleware"
)

// mustUserID reads the authenticated user id from the context. The auth
// middleware guarantees it is set on every /api route; a miss means the
// route was wired outside the auth group.
func (s *Server) mustUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		s.respondError(w, r, errors.New("missing authenticated user"), http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}

// parseID parses a chi URL parameter as a positive int64.
func parseID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into dst and runs struct
// validation. Unknown fields are rejected to catch client typos early.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// optionalText converts an optional request string to pgtype.Text,
// mapping empty (after trimming) to NULL.
func optionalText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
