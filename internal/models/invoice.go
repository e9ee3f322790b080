package models

import "time"

// Line represents one row of an invoice. ItemID is a weak reference to the
// item catalog: deleting the item later does not touch stored lines, which
// keep their own description and price snapshot.
type Line struct {
	ItemID      *int    `json:"item_id,omitempty"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Seller is the business identity embedded into every invoice at creation
// time. Later changes to the configured seller never alter stored invoices.
type Seller struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	PanNo       string `json:"pan_no"`
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	BankIFSC    string `json:"bank_ifsc"`
	BankBranch  string `json:"bank_branch"`
}

// CustomerSnapshot is the customer block frozen into an invoice.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// Invoice is a stored invoice. InvoiceNumber is assigned exactly once at
// first save and never changes on edits. Subtotal and Total always equal the
// sum of line totals.
type Invoice struct {
	ID            int              `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Customer      CustomerSnapshot `json:"customer"`
	Seller        Seller           `json:"seller"`
	Lines         []Line           `json:"lines"`
	Subtotal      float64          `json:"subtotal"`
	Total         float64          `json:"total"`
	PaymentTerms  string           `json:"payment_terms"`
	Currency      string           `json:"currency"`
	ShowPanNo     bool             `json:"show_pan_no"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreateInvoiceRequest is an invoice draft as submitted by the client.
// Totals and the invoice number in a draft are never trusted; the service
// recomputes totals and the store assigns the number.
type CreateInvoiceRequest struct {
	Date         string           `json:"date"`
	CustomerID   *int             `json:"customer_id,omitempty"`
	Customer     CustomerSnapshot `json:"customer"`
	Lines        []Line           `json:"lines"`
	PaymentTerms string           `json:"payment_terms"`
	Currency     string           `json:"currency"`
	ShowPanNo    bool             `json:"show_pan_no"`
}

// InvoiceFilter narrows a listing. All set fields must match (AND); empty
// fields impose no constraint. From/To are inclusive YYYY-MM-DD bounds
// compared as calendar dates, not strings.
type InvoiceFilter struct {
	CustomerQuery string `json:"customer_query"`
	NumberQuery   string `json:"number_query"`
	From          string `json:"from"`
	To            string `json:"to"`
}
