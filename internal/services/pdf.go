package services

import (
	"bytes"
	"fmt"

	"invoice-backend/internal/models"
	"invoice-backend/pkg/utils"

	"github.com/jung-kurt/gofpdf/v2"
)

// minTableRows pads short invoices so the printed table always has the same
// height.
const minTableRows = 10

// GenerateInvoicePDF renders a finalized invoice as a fixed-layout A4
// document. It reads the invoice and its embedded seller snapshot only;
// nothing stored is touched.
func GenerateInvoicePDF(inv *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Seller header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 10, inv.Seller.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, inv.Seller.Address, "", 1, "C", false, 0, "")
	contact := inv.Seller.Phone
	if inv.Seller.Email != "" {
		contact = contact + "  |  " + inv.Seller.Email
	}
	pdf.CellFormat(190, 5, contact, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 9, "INVOICE", "1", 1, "C", true, 0, "")
	pdf.Ln(3)

	// Invoice meta and customer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 6, "Invoice No: "+inv.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+inv.Date, "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 5, inv.Customer.Name, "", 1, "L", false, 0, "")
	if inv.Customer.Address != "" {
		pdf.CellFormat(190, 5, inv.Customer.Address, "", 1, "L", false, 0, "")
	}
	if inv.Customer.Contact != "" {
		pdf.CellFormat(190, 5, inv.Customer.Contact, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Line table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(15, 7, "Sr. No", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, line := range inv.Lines {
		desc := line.Description
		if len(desc) > 55 {
			desc = desc[:52] + "..."
		}
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, formatAmount(line.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, formatAmount(line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, formatAmount(line.Total), "1", 1, "R", false, 0, "")
	}
	for i := len(inv.Lines); i < minTableRows; i++ {
		pdf.CellFormat(15, 6, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "", "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "", "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(130, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Subtotal", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, currencyAmount(inv.Currency, inv.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "", "", 0, "L", false, 0, "")
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(30, 7, "Grand Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, currencyAmount(inv.Currency, inv.Total), "1", 1, "R", true, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "Amount in words: "+utils.AmountInWords(inv.Total, inv.Currency), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Payment terms and bank details
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 6, "Payment Terms: "+inv.PaymentTerms, "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 7, "Bank Details", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, "Bank: "+inv.Seller.BankName, "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 5, "Account: "+inv.Seller.BankAccount, "LR", 1, "L", false, 0, "")
	pdf.CellFormat(190, 5, "IFSC: "+inv.Seller.BankIFSC+"    Branch: "+inv.Seller.BankBranch, "LRB", 1, "L", false, 0, "")

	if inv.ShowPanNo {
		pdf.Ln(1)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(190, 5, "Pan No: "+inv.Seller.PanNo, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, "For "+inv.Seller.Name, "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(190, 5, "Authorised Signatory", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func currencyAmount(currency string, v float64) string {
	symbol := currency
	if currency == "INR" || currency == "" {
		symbol = "Rs."
	}
	return fmt.Sprintf("%s %s", symbol, formatAmount(v))
}
