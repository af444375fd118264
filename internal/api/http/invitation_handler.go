package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"homehub-backend/internal/invitecode"
	"homehub-backend/internal/service"
)

type InvitationHandler struct {
	invitations service.InvitationService
}

func NewInvitationHandler(invitations service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

type issueInvitationRequest struct {
	InviteeEmail string `json:"invitee_email,omitempty"`
	InviteeName  string `json:"invitee_name,omitempty"`
}

type invitationResponse struct {
	Code        string `json:"code"`
	DisplayCode string `json:"display_code"`
	FamilyID    int32  `json:"family_id"`
	ExpiresOn   string `json:"expires_on"`
}

// Issue creates a new single-use invitation for the family in the path.
func (h *InvitationHandler) Issue(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	familyID, err := pathID(r, "id")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid family id")
		return
	}

	var req issueInvitationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
			return
		}
	}

	inv, err := h.invitations.Issue(r.Context(), familyID, userID, req.InviteeEmail, req.InviteeName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, invitationResponse{
		Code:        inv.Code,
		DisplayCode: invitecode.Format(inv.Code),
		FamilyID:    inv.FamilyID,
		ExpiresOn:   inv.ExpiresOn.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Validate gives live feedback while the user types. Always 200: the
// result is advisory UI state, not an error.
func (h *InvitationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.invitations.Validate(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type redeemRequest struct {
	Code string `json:"code"`
}

// Redeem consumes the invitation and admits the caller into its family.
func (h *InvitationHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	family, err := h.invitations.Redeem(r.Context(), req.Code, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	return int32(id), err
}
