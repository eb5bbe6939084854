package web

import (
	"net/http"

	"github.com/phamqv/studyhub/internal/database"
)

type transactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	TransDate   string  `json:"trans_date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"max=500"`
}

// handleListTransactions returns all of the user's transactions.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	transactions, err := s.queries.ListTransactions(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// handleCreateTransaction adds an income or expense entry.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	id, err := s.queries.CreateTransaction(r.Context(), database.CreateTransactionParams{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		TransDate:   req.TransDate,
		Description: optionalText(req.Description),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"trans_id": id})
}

// handleUpdateTransaction rewrites one transaction owned by the user.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	transID, err := parseID(r, "transID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	err = s.queries.UpdateTransaction(r.Context(), database.UpdateTransactionParams{
		TransID:     transID,
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		TransDate:   req.TransDate,
		Description: optionalText(req.Description),
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDeleteTransaction removes one transaction owned by the user.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	transID, err := parseID(r, "transID")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.queries.DeleteTransaction(r.Context(), transID, userID); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
