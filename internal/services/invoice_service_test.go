package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceStore mimics the repository's contract in memory: it assigns
// ids and sequential invoice numbers on Create and reports ErrNotFound for
// unknown ids.
type fakeInvoiceStore struct {
	counter  int
	seq      int
	invoices map[int]*models.Invoice
	order    []int
	failNext error
}

func newFakeInvoiceStore() *fakeInvoiceStore {
	return &fakeInvoiceStore{counter: 1, invoices: make(map[int]*models.Invoice)}
}

func (f *fakeInvoiceStore) Create(ctx context.Context, inv *models.Invoice) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	date := timeutil.DateOrToday(inv.Date)
	f.seq++
	inv.ID = f.seq
	inv.InvoiceNumber = fmt.Sprintf("YG-%s-%04d", date.Format("20060102"), f.counter)
	f.counter++

	stored := *inv
	f.invoices[inv.ID] = &stored
	f.order = append(f.order, inv.ID)
	return nil
}

func (f *fakeInvoiceStore) Get(ctx context.Context, id int) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoiceStore) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeInvoiceStore) List(ctx context.Context) ([]*models.Invoice, error) {
	out := make([]*models.Invoice, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		copied := *f.invoices[f.order[i]]
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeInvoiceStore) Update(ctx context.Context, inv *models.Invoice) error {
	if _, ok := f.invoices[inv.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *inv
	f.invoices[inv.ID] = &stored
	return nil
}

func (f *fakeInvoiceStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.invoices[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.invoices, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSellerStore struct {
	seller *models.Seller
}

func (f *fakeSellerStore) GetSeller(ctx context.Context) (*models.Seller, error) {
	if f.seller == nil {
		return nil, models.ErrNotFound
	}
	copied := *f.seller
	return &copied, nil
}

type fakeCustomerSource struct {
	customers map[int]*models.Customer
}

func (f *fakeCustomerSource) Get(ctx context.Context, id int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return c, nil
}

func newTestService() (*InvoiceService, *fakeInvoiceStore) {
	store := newFakeInvoiceStore()
	svc := NewInvoiceService(store,
		&fakeSellerStore{seller: &models.Seller{Name: "Acme Traders", PanNo: "ABCDE1234F"}},
		&fakeCustomerSource{customers: map[int]*models.Customer{
			3: {ID: 3, Name: "Ravi Kumar", Contact: "9876543210", Address: "Pune"},
		}})
	svc.DefaultCurrency = "INR"
	svc.DefaultPaymentTerms = "Due on receipt"
	return svc, store
}

func TestCreateInvoiceAssignsSequentialNumbers(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &models.CreateInvoiceRequest{
		Date:     "2025-12-13",
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 2, Price: 10}},
	}

	first, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)
	second, err := svc.CreateInvoice(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "YG-20251213-0001", first.InvoiceNumber)
	assert.Equal(t, "YG-20251213-0002", second.InvoiceNumber)
}

func TestCreateInvoiceCounterDoesNotResetAcrossDates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		Date:     "2025-12-13",
		Customer: models.CustomerSnapshot{Name: "A"},
		Lines:    []models.Line{{Description: "X", Qty: 1, Price: 1}},
	})
	require.NoError(t, err)

	next, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		Date:     "2026-01-05",
		Customer: models.CustomerSnapshot{Name: "B"},
		Lines:    []models.Line{{Description: "Y", Qty: 1, Price: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "YG-20260105-0002", next.InvoiceNumber)
}

func TestCreateInvoiceConsolidatesAndTotals(t *testing.T) {
	svc, _ := newTestService()

	inv, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Date:     "2025-12-13",
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines: []models.Line{
			{Description: "Widget", Qty: 2, Price: 10},
			{Description: "widget", Qty: 3, Price: 99},
			{Description: "Bolt", Qty: 4, Price: 2.5},
			{Description: "", Qty: 1, Price: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, 5.0, inv.Lines[0].Qty)
	assert.Equal(t, 50.0, inv.Lines[0].Total)
	assert.Equal(t, 60.0, inv.Subtotal)
	assert.Equal(t, inv.Subtotal, inv.Total)
}

func TestCreateInvoiceEmbedsSellerSnapshot(t *testing.T) {
	svc, _ := newTestService()

	inv, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Traders", inv.Seller.Name)
	assert.Equal(t, "ABCDE1234F", inv.Seller.PanNo)
}

func TestCreateInvoiceResolvesCustomerByID(t *testing.T) {
	svc, _ := newTestService()
	customerID := 3

	inv, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		CustomerID: &customerID,
		Lines:      []models.Line{{Description: "Widget", Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", inv.Customer.Name)
	assert.Equal(t, "Pune", inv.Customer.Address)
}

func TestCreateInvoiceDefaultsDateAndCurrency(t *testing.T) {
	svc, _ := newTestService()

	inv, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, timeutil.Today(), inv.Date)
	assert.Equal(t, "INR", inv.Currency)
	assert.Equal(t, "Due on receipt", inv.PaymentTerms)
}

func TestCreateInvoiceRejectsNegativeLines(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: -1, Price: 10}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.CreateInvoice(context.Background(), &models.CreateInvoiceRequest{
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 1, Price: -10}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestUpdateInvoicePreservesNumberAndSeller(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		Date:     "2025-12-13",
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 2, Price: 10}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateInvoice(ctx, created.ID, &models.CreateInvoiceRequest{
		Date:     "2025-12-20",
		Customer: models.CustomerSnapshot{Name: "Someone Else"},
		Lines:    []models.Line{{Description: "Bolt", Qty: 10, Price: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, created.Seller, updated.Seller)
	assert.Equal(t, "Someone Else", updated.Customer.Name)
	assert.Equal(t, 10.0, updated.Total)
}

func TestUpdateInvoiceMissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateInvoice(context.Background(), 999, &models.CreateInvoiceRequest{
		Customer: models.CustomerSnapshot{Name: "X"},
		Lines:    []models.Line{{Description: "Widget", Qty: 1, Price: 1}},
	})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDeleteInvoiceMissingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()
	err := svc.DeleteInvoice(context.Background(), 42)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetInvoiceByNumber(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		Date:     "2025-12-13",
		Customer: models.CustomerSnapshot{Name: "Ravi Kumar"},
		Lines:    []models.Line{{Description: "Widget", Qty: 1, Price: 10}},
	})
	require.NoError(t, err)

	got, err := svc.GetInvoiceByNumber(ctx, created.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetInvoiceByNumber(ctx, "YG-19990101-0001")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestFilterInvoices(t *testing.T) {
	invoices := []*models.Invoice{
		{InvoiceNumber: "YG-20251213-0003", Date: "2025-12-13",
			Customer: models.CustomerSnapshot{Name: "Ravi Kumar"}},
		{InvoiceNumber: "YG-20251201-0002", Date: "2025-12-01",
			Customer: models.CustomerSnapshot{Name: "Meera Traders"}},
		{InvoiceNumber: "YG-20251115-0001", Date: "2025-11-15",
			Customer: models.CustomerSnapshot{Name: "Ravi Exports"}},
	}

	tests := []struct {
		name   string
		filter models.InvoiceFilter
		want   []string
	}{
		{
			name:   "no filter returns all",
			filter: models.InvoiceFilter{},
			want:   []string{"YG-20251213-0003", "YG-20251201-0002", "YG-20251115-0001"},
		},
		{
			name:   "customer match is case-insensitive substring",
			filter: models.InvoiceFilter{CustomerQuery: "ravi"},
			want:   []string{"YG-20251213-0003", "YG-20251115-0001"},
		},
		{
			name:   "number substring",
			filter: models.InvoiceFilter{NumberQuery: "1201"},
			want:   []string{"YG-20251201-0002"},
		},
		{
			name:   "date bounds are inclusive",
			filter: models.InvoiceFilter{From: "2025-12-01", To: "2025-12-13"},
			want:   []string{"YG-20251213-0003", "YG-20251201-0002"},
		},
		{
			name:   "filters combine conjunctively",
			filter: models.InvoiceFilter{CustomerQuery: "ravi", From: "2025-12-01"},
			want:   []string{"YG-20251213-0003"},
		},
		{
			name:   "malformed date bound is ignored",
			filter: models.InvoiceFilter{From: "13-12-2025"},
			want:   []string{"YG-20251213-0003", "YG-20251201-0002", "YG-20251115-0001"},
		},
		{
			name:   "no match",
			filter: models.InvoiceFilter{CustomerQuery: "nobody"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterInvoices(invoices, tt.filter)
			numbers := make([]string, 0, len(got))
			for _, inv := range got {
				numbers = append(numbers, inv.InvoiceNumber)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestImportInvoicesAssignsFreshNumbers(t *testing.T) {
	svc, store := newTestService()

	drafts := []*models.Invoice{
		{Date: "2025-12-13", Customer: models.CustomerSnapshot{Name: "A"},
			Lines: []models.Line{{Description: "X", Qty: 1, Price: 5, Total: 5}}},
		{Date: "2025-12-14", Customer: models.CustomerSnapshot{Name: "B"},
			Lines: []models.Line{{Description: "Y", Qty: 2, Price: 3, Total: 6}}},
	}

	inserted, err := svc.ImportInvoices(context.Background(), drafts)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Len(t, store.invoices, 2)
	assert.Equal(t, "YG-20251213-0001", drafts[0].InvoiceNumber)
	assert.Equal(t, "YG-20251214-0002", drafts[1].InvoiceNumber)
}

func TestImportInvoicesFillsEmptySeller(t *testing.T) {
	svc, _ := newTestService()

	drafts := []*models.Invoice{
		{Date: "2025-12-13", Customer: models.CustomerSnapshot{Name: "A"}},
	}

	_, err := svc.ImportInvoices(context.Background(), drafts)
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", drafts[0].Seller.Name)
}

func TestImportInvoicesStopsOnFirstFailure(t *testing.T) {
	svc, store := newTestService()

	drafts := []*models.Invoice{
		{Date: "2025-12-13", Customer: models.CustomerSnapshot{Name: "A"}},
		{Date: "2025-12-14", Customer: models.CustomerSnapshot{Name: "B"}},
	}

	_, err := svc.ImportInvoices(context.Background(), drafts[:1])
	require.NoError(t, err)

	store.failNext = errors.New("connection reset")
	inserted, err := svc.ImportInvoices(context.Background(), drafts[1:])
	require.Error(t, err)
	assert.Equal(t, 0, inserted)
	assert.Contains(t, err.Error(), "import stopped after 0 record(s)")
}
