package handlers

import (
	"encoding/json"
	"net/http"

	"invoice-backend/internal/models"
	"invoice-backend/internal/repositories"
	"invoice-backend/pkg/utils"
)

// SellerHandler exposes the single seller record that gets snapshotted
// into every new invoice.
type SellerHandler struct {
	Repo *repositories.MetaRepository
}

func NewSellerHandler(repo *repositories.MetaRepository) *SellerHandler {
	return &SellerHandler{Repo: repo}
}

func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	seller, err := h.Repo.GetSeller(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, seller)
}

func (h *SellerHandler) UpdateSeller(w http.ResponseWriter, r *http.Request) {
	var seller models.Seller
	if err := json.NewDecoder(r.Body).Decode(&seller); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if seller.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Seller name is required")
		return
	}

	if err := h.Repo.SetSeller(r.Context(), &seller); err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, seller)
}
