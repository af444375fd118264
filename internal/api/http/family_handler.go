package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/service"
)

type FamilyHandler struct {
	families service.FamilyService
}

func NewFamilyHandler(families service.FamilyService) *FamilyHandler {
	return &FamilyHandler{families: families}
}

type createFamilyRequest struct {
	Name string `json:"name"`
}

func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	var req createFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "family name is required")
		return
	}

	family, err := h.families.CreateFamily(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, family)
}

func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	family, err := h.families.GetFamily(r.Context(), userID, familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, family)
}

type memberResponse struct {
	User       domain.User       `json:"user"`
	Membership domain.Membership `json:"membership"`
}

func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
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

	users, memberships, err := h.families.ListMembers(r.Context(), userID, familyID)
	if err != nil {
		writeError(w, err)
		return
	}

	members := make([]memberResponse, 0, len(users))
	for i := range users {
		members = append(members, memberResponse{User: users[i], Membership: memberships[i]})
	}
	writeJSON(w, http.StatusOK, members)
}
