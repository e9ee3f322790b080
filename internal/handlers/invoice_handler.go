package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"invoice-backend/internal/cache"
	"invoice-backend/internal/metrics"
	"invoice-backend/internal/models"
	"invoice-backend/internal/services"
	"invoice-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
	Printer *services.PrinterService
}

func NewInvoiceHandler(s *services.InvoiceService, printer *services.PrinterService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Printer: printer}
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.Service.CreateInvoice(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.InvoicesCreatedTotal.Inc()
	cache.InvalidateInvoiceCaches(r.Context())
	utils.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	inv, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	inv, err := h.Service.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, inv)
}

// ListInvoices supports ?customer=, ?number=, ?from= and ?to= query
// filters. The unfiltered listing is served from cache when available.
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.InvoiceFilter{
		CustomerQuery: query.Get("customer"),
		NumberQuery:   query.Get("number"),
		From:          query.Get("from"),
		To:            query.Get("to"),
	}
	unfiltered := filter == (models.InvoiceFilter{})

	if unfiltered {
		if data, ok := cache.GetCached(r.Context(), cache.InvoicesKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	invoices, err := h.Service.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := json.Marshal(invoices)
	if err != nil {
		writeError(w, err)
		return
	}
	if unfiltered {
		cache.SetCached(r.Context(), cache.InvoicesKey, data, 5*time.Minute)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inv, err := h.Service.UpdateInvoice(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateInvoiceCaches(r.Context())
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if err := h.Service.DeleteInvoice(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateInvoiceCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DownloadPDF renders the invoice as a PDF attachment named after the
// invoice number.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}

	pdfData, err := services.GenerateInvoicePDF(inv)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.DocumentsRenderedTotal.WithLabelValues("pdf").Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	w.Write(pdfData)
}

// DownloadCSV renders a single invoice in the spreadsheet layout.
func (h *InvoiceHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}

	metrics.DocumentsRenderedTotal.WithLabelValues("csv").Inc()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.csv", inv.InvoiceNumber))
	w.Write(services.ExportInvoiceCSV(inv))
}

// PrintInvoice renders the invoice and forwards it to the printer agent.
// Copies defaults to 1; ?copies= overrides.
func (h *InvoiceHandler) PrintInvoice(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.loadInvoice(w, r)
	if !ok {
		return
	}

	copies := 1
	if v := r.URL.Query().Get("copies"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.Error(w, http.StatusBadRequest, "Invalid copies value")
			return
		}
		copies = n
	}

	pdfData, err := services.GenerateInvoicePDF(inv)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	if err := h.Printer.PrintInvoice(filename, pdfData, copies); err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	metrics.DocumentsRenderedTotal.WithLabelValues("print").Inc()
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "printed",
		"copies": copies,
	})
}

func (h *InvoiceHandler) loadInvoice(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return nil, false
	}

	inv, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return inv, true
}
