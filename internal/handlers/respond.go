package handlers

import (
	"errors"
	"net/http"

	"invoice-backend/internal/models"
	"invoice-backend/pkg/utils"
)

// writeError maps domain errors onto HTTP status codes. Storage errors pass
// through as opaque 500s.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
