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

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateCustomerCaches(r.Context())
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	customer, err := h.Service.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.CustomersKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := json.Marshal(customers)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.SetCached(r.Context(), cache.CustomersKey, data, 5*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateCustomerCaches(r.Context())
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	if err := h.Service.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateCustomerCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
