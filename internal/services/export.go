package services

import (
	"context"
	"encoding/json"
	"fmt"

	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"
)

const exportFormatVersion = "1.0"

// ExportInfo describes an export batch.
type ExportInfo struct {
	ExportedAt    string  `json:"exportedAt"`
	TotalInvoices int     `json:"totalInvoices"`
	TotalRevenue  float64 `json:"totalRevenue"`
	Version       string  `json:"version"`
	Format        string  `json:"format"`
}

// ExportedItem is one flattened invoice line in the export envelope.
type ExportedItem struct {
	SrNo        int     `json:"srNo"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// ExportSummary carries the invoice totals block.
type ExportSummary struct {
	TotalQty    float64 `json:"totalQty"`
	TotalAmount float64 `json:"totalAmount"`
	Subtotal    float64 `json:"subtotal"`
	GrandTotal  float64 `json:"grandTotal"`
}

// ExportedInvoice is one invoice entry in the export envelope.
type ExportedInvoice struct {
	InvoiceNumber string                  `json:"invoiceNumber"`
	Date          string                  `json:"date"`
	Customer      models.CustomerSnapshot `json:"customer"`
	Seller        models.Seller           `json:"seller"`
	Items         []ExportedItem          `json:"items"`
	Summary       ExportSummary           `json:"summary"`
	PaymentTerms  string                  `json:"paymentTerms"`
	Currency      string                  `json:"currency"`
	ShowPanNo     bool                    `json:"showPanNo"`
}

// ExportEnvelope is the JSON export format.
type ExportEnvelope struct {
	ExportInfo ExportInfo        `json:"exportInfo"`
	Invoices   []ExportedInvoice `json:"invoices"`
}

// BuildExportEnvelope flattens stored invoices into the export envelope.
func BuildExportEnvelope(invoices []*models.Invoice) *ExportEnvelope {
	env := &ExportEnvelope{
		Invoices: make([]ExportedInvoice, 0, len(invoices)),
	}

	var revenue float64
	for _, inv := range invoices {
		revenue += inv.Total
		env.Invoices = append(env.Invoices, exportInvoice(inv))
	}

	env.ExportInfo = ExportInfo{
		ExportedAt:    timeutil.Now().Format("2006-01-02 15:04:05"),
		TotalInvoices: len(invoices),
		TotalRevenue:  revenue,
		Version:       exportFormatVersion,
		Format:        "json",
	}
	return env
}

func exportInvoice(inv *models.Invoice) ExportedInvoice {
	items := make([]ExportedItem, 0, len(inv.Lines))
	var totalQty float64
	for i, line := range inv.Lines {
		totalQty += line.Qty
		items = append(items, ExportedItem{
			SrNo:        i + 1,
			Description: line.Description,
			Qty:         line.Qty,
			Price:       line.Price,
			Total:       line.Total,
		})
	}

	return ExportedInvoice{
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		Customer:      inv.Customer,
		Seller:        inv.Seller,
		Items:         items,
		Summary: ExportSummary{
			TotalQty:    totalQty,
			TotalAmount: inv.Total,
			Subtotal:    inv.Subtotal,
			GrandTotal:  inv.Total,
		},
		PaymentTerms: inv.PaymentTerms,
		Currency:     inv.Currency,
		ShowPanNo:    inv.ShowPanNo,
	}
}

// importRecord accepts both stored-invoice-shaped and envelope-shaped
// entries; only the fields the importer understands are declared.
type importRecord struct {
	InvoiceNumber string                  `json:"invoiceNumber"`
	Date          string                  `json:"date"`
	Customer      models.CustomerSnapshot `json:"customer"`
	Seller        models.Seller           `json:"seller"`
	Lines         []models.Line           `json:"lines"`
	Items         []ExportedItem          `json:"items"`
	Total         *float64                `json:"total"`
	Summary       *ExportSummary          `json:"summary"`
	PaymentTerms  string                  `json:"paymentTerms"`
	Currency      string                  `json:"currency"`
	ShowPanNo     bool                    `json:"showPanNo"`
}

// ParseImportJSON accepts either the export envelope or a bare array of
// invoice-like records and normalizes them into invoice drafts. Missing
// fields are defaulted: date to today, lines from either "lines" or
// "items", the declared total from total, then summary.grandTotal, then
// summary.totalAmount.
func ParseImportJSON(data []byte) ([]*models.Invoice, error) {
	var records []importRecord

	var envelope struct {
		Invoices []importRecord `json:"invoices"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Invoices != nil {
		records = envelope.Invoices
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: import format not recognized", models.ErrValidation)
	}

	drafts := make([]*models.Invoice, 0, len(records))
	for _, record := range records {
		drafts = append(drafts, normalizeRecord(record))
	}
	return drafts, nil
}

func normalizeRecord(record importRecord) *models.Invoice {
	lines := record.Lines
	if len(lines) == 0 {
		for _, item := range record.Items {
			lines = append(lines, models.Line{
				Description: item.Description,
				Qty:         item.Qty,
				Price:       item.Price,
				Total:       item.Total,
			})
		}
	}
	lines = ConsolidateLines(lines)

	total := SumLines(lines)
	if len(lines) == 0 {
		switch {
		case record.Total != nil:
			total = *record.Total
		case record.Summary != nil && record.Summary.GrandTotal != 0:
			total = record.Summary.GrandTotal
		case record.Summary != nil:
			total = record.Summary.TotalAmount
		}
	}

	date := record.Date
	if date == "" {
		date = timeutil.Today()
	}

	return &models.Invoice{
		Date:         date,
		Customer:     record.Customer,
		Seller:       record.Seller,
		Lines:        lines,
		Subtotal:     total,
		Total:        total,
		PaymentTerms: record.PaymentTerms,
		Currency:     record.Currency,
		ShowPanNo:    record.ShowPanNo,
	}
}

// ImportInvoices persists the drafts one by one via the store, which assigns
// fresh ids and numbers. There is no batch rollback: on the first failure
// the records already inserted stay, and the count plus the error are
// returned for a single user-facing message.
func (s *InvoiceService) ImportInvoices(ctx context.Context, drafts []*models.Invoice) (int, error) {
	inserted := 0
	for _, draft := range drafts {
		if draft.Seller == (models.Seller{}) {
			seller, err := s.Sellers.GetSeller(ctx)
			if err == nil && seller != nil {
				draft.Seller = *seller
			}
		}
		if err := s.Store.Create(ctx, draft); err != nil {
			return inserted, fmt.Errorf("import stopped after %d record(s): %w", inserted, err)
		}
		inserted++
	}
	return inserted, nil
}
