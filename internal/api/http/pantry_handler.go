package http

import (
	"encoding/json"
	"net/http"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/service"
)

type PantryHandler struct {
	pantry service.PantryService
}

func NewPantryHandler(pantry service.PantryService) *PantryHandler {
	return &PantryHandler{pantry: pantry}
}

func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.pantry.ListItems(r.Context(), userID, familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var item domain.PantryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	item.FamilyID = familyID

	if err := h.pantry.AddItem(r.Context(), userID, &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}

	var item domain.PantryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	item.ID = itemID

	if err := h.pantry.UpdateItem(r.Context(), userID, &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid item id")
		return
	}

	if err := h.pantry.DeleteItem(r.Context(), userID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
