package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/models"
	"invoice-backend/internal/services"
	"invoice-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ItemHandler struct {
	Service *services.ItemService
}

func NewItemHandler(s *services.ItemService) *ItemHandler {
	return &ItemHandler{Service: s}
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateItemCaches(r.Context())
	utils.JSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.Service.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.ItemsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	items, err := h.Service.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.SetCached(r.Context(), cache.ItemsKey, data, 5*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateItemCaches(r.Context())
	utils.JSON(w, http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateItemCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
