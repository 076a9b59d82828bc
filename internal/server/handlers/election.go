package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophvote/internal/api"
	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/server/auth"
	"github.com/dmitrijs2005/gophvote/internal/server/election"
)

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, common.CodeBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.StudentID) == "" {
		writeError(w, http.StatusBadRequest, common.CodeBadRequest, "Student ID is required")
		return
	}

	user, err := h.store.Login(req.StudentID)
	if err != nil {
		writeError(w, http.StatusNotFound, common.CodeUnknownStudent, "Student not registered")
		return
	}

	token, err := auth.GenerateToken(user, h.secretKey, h.tokenValidity)
	if err != nil {
		h.logger.Error(r.Context(), "signing token", "error", err)
		writeError(w, http.StatusInternalServerError, "", "Unable to login. Please try again.")
		return
	}

	h.logger.Info(r.Context(), "student logged in", "student", user.StudentID)
	writeJSON(w, http.StatusOK, api.LoginResponse{Token: token, User: &user})
}

// Candidates handles GET /api/candidates.
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Candidates())
}

// Vote handles POST /api/vote.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req api.VoteRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, common.CodeBadRequest, "Invalid JSON")
		return
	}

	studentID := studentFrom(r.Context())
	receipt, err := h.store.Vote(studentID, req.Position, req.CandidateID)
	switch {
	case err == nil:
	case errors.Is(err, election.ErrInvalidPosition):
		writeError(w, http.StatusBadRequest, common.CodeInvalidPosition, "Invalid position")
		return
	case errors.Is(err, election.ErrInvalidCandidate):
		writeError(w, http.StatusBadRequest, common.CodeInvalidCand, "Invalid candidate")
		return
	case errors.Is(err, election.ErrAlreadyVoted):
		writeError(w, http.StatusBadRequest, common.CodeAlreadyVoted, "You have already voted for this position")
		return
	default:
		h.logger.Error(r.Context(), "recording vote", "error", err)
		writeError(w, http.StatusInternalServerError, "", "Failed to record vote")
		return
	}

	h.logger.Info(r.Context(), "vote recorded", "student", studentID, "position", receipt.Position, "receipt", receipt.ID.String())
	writeJSON(w, http.StatusCreated, api.VoteResponse{
		Message:   "Vote recorded successfully",
		ReceiptID: receipt.ID.String(),
	})
}
