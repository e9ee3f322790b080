package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"
)

// InvoiceStore is the persistence surface the invoice service works
// against. *repositories.InvoiceRepository implements it; tests use an
// in-memory fake.
type InvoiceStore interface {
	Create(ctx context.Context, inv *models.Invoice) error
	Get(ctx context.Context, id int) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id int) error
}

// SellerStore loads the configured seller record embedded into new invoices.
type SellerStore interface {
	GetSeller(ctx context.Context) (*models.Seller, error)
}

// CustomerSource resolves a customer id into a record to snapshot.
type CustomerSource interface {
	Get(ctx context.Context, id int) (*models.Customer, error)
}

type InvoiceService struct {
	Store     InvoiceStore
	Sellers   SellerStore
	Customers CustomerSource

	DefaultCurrency     string
	DefaultPaymentTerms string
}

func NewInvoiceService(store InvoiceStore, sellers SellerStore, customers CustomerSource) *InvoiceService {
	return &InvoiceService{
		Store:     store,
		Sellers:   sellers,
		Customers: customers,
	}
}

// CreateInvoice consolidates the draft's lines, recomputes totals, embeds
// the customer and seller snapshots and persists the invoice. The store
// assigns the id and the invoice number and bumps the counter exactly once.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	inv, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	seller, err := s.Sellers.GetSeller(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if seller != nil {
		inv.Seller = *seller
	}

	if err := s.Store.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInvoice overwrites an existing invoice. The stored invoice number,
// seller snapshot and creation time are preserved no matter what the draft
// carries. Returns ErrNotFound when no invoice matches id.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id int, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	inv.ID = existing.ID
	inv.InvoiceNumber = existing.InvoiceNumber
	inv.Seller = existing.Seller
	inv.CreatedAt = existing.CreatedAt

	if err := s.Store.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	return s.Store.Get(ctx, id)
}

func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return s.Store.GetByNumber(ctx, number)
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id int) error {
	return s.Store.Delete(ctx, id)
}

// ListInvoices returns all invoices newest first, narrowed by the filter.
func (s *InvoiceService) ListInvoices(ctx context.Context, filter models.InvoiceFilter) ([]*models.Invoice, error) {
	invoices, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterInvoices(invoices, filter), nil
}

// buildInvoice turns a draft into a storable invoice: consolidated lines,
// recomputed totals, resolved customer snapshot, defaulted date/currency.
func (s *InvoiceService) buildInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	for _, line := range req.Lines {
		if line.Qty < 0 {
			return nil, fmt.Errorf("%w: line qty must be non-negative", models.ErrValidation)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("%w: line price must be non-negative", models.ErrValidation)
		}
	}

	lines := ConsolidateLines(req.Lines)
	subtotal := SumLines(lines)

	customer := req.Customer
	if req.CustomerID != nil && customer.Name == "" {
		record, err := s.Customers.Get(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve customer: %w", err)
		}
		customer = models.CustomerSnapshot{
			Name:    record.Name,
			Contact: record.Contact,
			Address: record.Address,
		}
	}

	date := req.Date
	if date == "" {
		date = timeutil.Today()
	}

	currency := req.Currency
	if currency == "" {
		currency = s.DefaultCurrency
	}
	terms := req.PaymentTerms
	if terms == "" {
		terms = s.DefaultPaymentTerms
	}

	return &models.Invoice{
		Date:         date,
		Customer:     customer,
		Lines:        lines,
		Subtotal:     subtotal,
		Total:        subtotal,
		PaymentTerms: terms,
		Currency:     currency,
		ShowPanNo:    req.ShowPanNo,
	}, nil
}

// FilterInvoices applies the filter's constraints conjunctively. Empty
// fields impose no constraint; malformed date bounds are ignored. The input
// order (date descending) is preserved.
func FilterInvoices(invoices []*models.Invoice, filter models.InvoiceFilter) []*models.Invoice {
	customerQuery := strings.ToLower(strings.TrimSpace(filter.CustomerQuery))
	numberQuery := strings.TrimSpace(filter.NumberQuery)

	from, fromErr := timeutil.ParseDate(filter.From)
	to, toErr := timeutil.ParseDate(filter.To)
	hasFrom := filter.From != "" && fromErr == nil
	hasTo := filter.To != "" && toErr == nil

	out := make([]*models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if customerQuery != "" &&
			!strings.Contains(strings.ToLower(inv.Customer.Name), customerQuery) {
			continue
		}
		if numberQuery != "" && !strings.Contains(inv.InvoiceNumber, numberQuery) {
			continue
		}
		if hasFrom || hasTo {
			date, err := timeutil.ParseDate(inv.Date)
			if err != nil {
				continue
			}
			if hasFrom && !timeutil.SameOrAfter(date, from) {
				continue
			}
			if hasTo && !timeutil.SameOrBefore(date, to) {
				continue
			}
		}
		out = append(out, inv)
	}
	return out
}
