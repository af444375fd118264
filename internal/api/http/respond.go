package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeError maps domain error kinds to distinct statuses and machine
// readable codes; the client behaves differently per kind so none are
// collapsed into a generic failure.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCodeIncomplete):
		writeErrorCode(w, http.StatusBadRequest, "code_incomplete", "the invitation code is incomplete")
	case errors.Is(err, domain.ErrInviteNotFound):
		writeErrorCode(w, http.StatusNotFound, "invite_not_found", "no such invitation code; ask for a new one")
	case errors.Is(err, domain.ErrInviteUsed):
		writeErrorCode(w, http.StatusConflict, "invite_already_used", "this code was already used; ask for a new one")
	case errors.Is(err, domain.ErrInviteExpired):
		writeErrorCode(w, http.StatusGone, "invite_expired", "this code has expired; ask for a new one")
	case errors.Is(err, domain.ErrMembershipConflict):
		writeErrorCode(w, http.StatusConflict, "membership_conflict", "you already belong to a family")
	case errors.Is(err, domain.ErrIssuanceExhausted):
		writeErrorCode(w, http.StatusServiceUnavailable, "issuance_exhausted", "could not create an invitation; try again")
	case errors.Is(err, domain.ErrNotFamilyMember):
		writeErrorCode(w, http.StatusForbidden, "not_family_member", "you are not a member of this family")
	case errors.Is(err, domain.ErrUserNotFound):
		writeErrorCode(w, http.StatusNotFound, "user_not_found", "user not found")
	case errors.Is(err, domain.ErrFamilyNotFound):
		writeErrorCode(w, http.StatusNotFound, "family_not_found", "family not found")
	case errors.Is(err, domain.ErrItemNotFound):
		writeErrorCode(w, http.StatusNotFound, "item_not_found", "item not found")
	default:
		logger.Error("Request failed with storage error", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, "storage_failure", "something went wrong; retry or contact support")
	}
}
