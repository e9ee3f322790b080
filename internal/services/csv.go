package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"
)

// The CSV document layout is a stable external contract: a header block, a
// line table introduced by the literal "Sr. No"/"Description" row, a totals
// block opened by "Total Qty:", and a bank block ending with "Pan No". The
// leading Format-Version row tags the schema so the importer does not have
// to rely on the literal header text alone.
const csvFormatVersion = "1"

// ExportInvoiceCSV renders a single invoice as a CSV document.
func ExportInvoiceCSV(inv *models.Invoice) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Format-Version", csvFormatVersion})
	w.Write([]string{"Invoice No", inv.InvoiceNumber})
	w.Write([]string{"Date", inv.Date})
	w.Write([]string{"Customer", inv.Customer.Name})
	w.Write([]string{"Contact", inv.Customer.Contact})
	w.Write([]string{"Address", inv.Customer.Address})
	w.Write([]string{"Payment Terms", inv.PaymentTerms})
	w.Write([]string{"Currency", inv.Currency})
	w.Write([]string{""})

	w.Write([]string{"Sr. No", "Description", "Qty", "Price", "Total"})
	var totalQty float64
	for i, line := range inv.Lines {
		totalQty += line.Qty
		w.Write([]string{
			strconv.Itoa(i + 1),
			line.Description,
			formatAmount(line.Qty),
			formatAmount(line.Price),
			formatAmount(line.Total),
		})
	}

	w.Write([]string{"Total Qty:", formatAmount(totalQty)})
	w.Write([]string{"Subtotal", formatAmount(inv.Subtotal)})
	w.Write([]string{"Grand Total", formatAmount(inv.Total)})
	w.Write([]string{""})

	w.Write([]string{"Bank Name", inv.Seller.BankName})
	w.Write([]string{"Bank Account", inv.Seller.BankAccount})
	w.Write([]string{"IFSC", inv.Seller.BankIFSC})
	w.Write([]string{"Branch", inv.Seller.BankBranch})
	if inv.ShowPanNo {
		w.Write([]string{"Pan No", inv.Seller.PanNo})
	}

	w.Flush()
	return buf.Bytes()
}

// ExportInvoicesCSV renders the all-invoices report.
func ExportInvoicesCSV(invoices []*models.Invoice) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Format-Version", csvFormatVersion})
	w.Write([]string{"Report", "All Invoices"})
	w.Write([]string{"Exported At", timeutil.Now().Format("2006-01-02 15:04:05")})
	w.Write([]string{""})

	w.Write([]string{"#", "Invoice No", "Date", "Customer", "Items", "Total Qty", "Subtotal", "Grand Total"})
	var revenue float64
	for i, inv := range invoices {
		var qty float64
		for _, line := range inv.Lines {
			qty += line.Qty
		}
		revenue += inv.Total
		w.Write([]string{
			strconv.Itoa(i + 1),
			inv.InvoiceNumber,
			inv.Date,
			inv.Customer.Name,
			strconv.Itoa(len(inv.Lines)),
			formatAmount(qty),
			formatAmount(inv.Subtotal),
			formatAmount(inv.Total),
		})
	}

	w.Write([]string{""})
	w.Write([]string{"Total Invoices", strconv.Itoa(len(invoices))})
	w.Write([]string{"Total Revenue", formatAmount(revenue)})

	w.Flush()
	return buf.Bytes()
}

// ParseImportCSV parses a single-invoice CSV document back into a draft.
// Documents carrying the Format-Version tag and legacy untagged exports are
// both accepted; in either case the line table is located via the "Sr. No"
// header row, closed by the "Total Qty:" marker, and parsing stops at the
// "Pan No" row. Rows that do not fit the expected shape are skipped.
func ParseImportCSV(data []byte) (*models.Invoice, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: not a CSV document", models.ErrValidation)
	}

	draft := &models.Invoice{}
	var lines []models.Line
	inTable := false
	sawTable := false

scan:
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}

		if inTable {
			if row[0] == "Total Qty:" {
				inTable = false
				continue
			}
			if len(row) >= 4 {
				qty, qtyErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
				price, priceErr := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
				if qtyErr == nil && priceErr == nil {
					lines = append(lines, models.Line{
						Description: row[1],
						Qty:         qty,
						Price:       price,
						Total:       qty * price,
					})
				}
			}
			continue
		}

		switch row[0] {
		case "Format-Version":
			// Tagged schema; nothing else to do for version 1.
		case "Invoice No", "Invoice":
			if len(row) > 1 {
				draft.InvoiceNumber = row[1]
			}
		case "Date":
			if len(row) > 1 {
				draft.Date = row[1]
			}
		case "Customer":
			if len(row) > 1 {
				draft.Customer.Name = row[1]
			}
		case "Contact":
			if len(row) > 1 {
				draft.Customer.Contact = row[1]
			}
		case "Address":
			if len(row) > 1 {
				draft.Customer.Address = row[1]
			}
		case "Payment Terms":
			if len(row) > 1 {
				draft.PaymentTerms = row[1]
			}
		case "Currency":
			if len(row) > 1 {
				draft.Currency = row[1]
			}
		case "Sr. No":
			if len(row) > 1 && row[1] == "Description" {
				inTable = true
				sawTable = true
			}
		case "Pan No":
			draft.ShowPanNo = true
			break scan
		}
	}

	if !sawTable {
		return nil, fmt.Errorf("%w: invoice table header not found", models.ErrValidation)
	}

	draft.Lines = ConsolidateLines(lines)
	draft.Subtotal = SumLines(draft.Lines)
	draft.Total = draft.Subtotal
	if draft.Date == "" {
		draft.Date = timeutil.Today()
	}
	return draft, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
