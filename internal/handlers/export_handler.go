package handlers

import (
	"fmt"
	"io"
	"net/http"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/metrics"
	"invoice-backend/internal/models"
	"invoice-backend/internal/services"
	"invoice-backend/internal/timeutil"
	"invoice-backend/pkg/utils"
)

// maxImportBytes caps import payloads at 10 MB.
const maxImportBytes = 10 << 20

type ExportHandler struct {
	Service *services.InvoiceService
}

func NewExportHandler(s *services.InvoiceService) *ExportHandler {
	return &ExportHandler{Service: s}
}

// ExportJSON streams every stored invoice as a JSON envelope download.
// The same query filters as the invoice listing apply.
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.listFiltered(r)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.DocumentsRenderedTotal.WithLabelValues("json").Inc()
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=invoices-%s.json", timeutil.Today()))
	utils.JSON(w, http.StatusOK, services.BuildExportEnvelope(invoices))
}

// ExportCSV streams the all-invoices spreadsheet report.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.listFiltered(r)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.DocumentsRenderedTotal.WithLabelValues("csv").Inc()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=invoices-%s.csv", timeutil.Today()))
	w.Write(services.ExportInvoicesCSV(invoices))
}

// ImportJSON accepts an export envelope or a bare invoice array and
// inserts each record as a fresh invoice with a newly assigned number.
func (h *ExportHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	drafts, err := services.ParseImportJSON(data)
	if err != nil {
		writeError(w, err)
		return
	}

	inserted, err := h.Service.ImportInvoices(r.Context(), drafts)
	if err != nil {
		cache.InvalidateInvoiceCaches(r.Context())
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	cache.InvalidateInvoiceCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"imported": inserted,
	})
}

// ImportCSV accepts a single-invoice CSV in the export layout (tagged or
// legacy) and inserts it as a fresh invoice.
func (h *ExportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	draft, err := services.ParseImportCSV(data)
	if err != nil {
		writeError(w, err)
		return
	}

	inserted, err := h.Service.ImportInvoices(r.Context(), []*models.Invoice{draft})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	cache.InvalidateInvoiceCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"imported": inserted,
	})
}

func (h *ExportHandler) listFiltered(r *http.Request) ([]*models.Invoice, error) {
	query := r.URL.Query()
	return h.Service.ListInvoices(r.Context(), models.InvoiceFilter{
		CustomerQuery: query.Get("customer"),
		NumberQuery:   query.Get("number"),
		From:          query.Get("from"),
		To:            query.Get("to"),
	})
}
