package http

import (
	"encoding/json"
	"net/http"

	"homehub-backend/internal/domain"
	"homehub-backend/internal/service"
)

type ShoppingHandler struct {
	shopping service.ShoppingService
}

func NewShoppingHandler(shopping service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping}
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.shopping.ListItems(r.Context(), userID, familyID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var item domain.ShoppingItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	item.FamilyID = familyID

	if err := h.shopping.AddItem(r.Context(), userID, &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var item domain.ShoppingItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	item.ID = itemID

	if err := h.shopping.UpdateItem(r.Context(), userID, &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.shopping.DeleteItem(r.Context(), userID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type checkItemRequest struct {
	Checked bool `json:"checked"`
}

func (h *ShoppingHandler) Check(w http.ResponseWriter, r *http.Request) {
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

	req := checkItemRequest{Checked: true}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorCode(w, http.StatusBadRequest, "bad_request", "invalid request body")
			return
		}
	}

	if err := h.shopping.CheckItem(r.Context(), userID, itemID, req.Checked); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
