package services

import (
	"encoding/json"
	"errors"
	"testing"

	"invoice-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *models.Invoice {
	return &models.Invoice{
		ID:            1,
		InvoiceNumber: "YG-20251213-0001",
		Date:          "2025-12-13",
		Customer:      models.CustomerSnapshot{Name: "Ravi Kumar", Contact: "9876543210", Address: "Pune"},
		Seller:        models.Seller{Name: "Acme Traders", PanNo: "ABCDE1234F", BankName: "SBI"},
		Lines: []models.Line{
			{Description: "Widget", Qty: 2, Price: 10, Total: 20},
			{Description: "Bolt", Qty: 4, Price: 2.5, Total: 10},
		},
		Subtotal:     30,
		Total:        30,
		PaymentTerms: "Due on receipt",
		Currency:     "INR",
		ShowPanNo:    true,
	}
}

func TestBuildExportEnvelope(t *testing.T) {
	env := BuildExportEnvelope([]*models.Invoice{sampleInvoice(), sampleInvoice()})

	assert.Equal(t, 2, env.ExportInfo.TotalInvoices)
	assert.Equal(t, 60.0, env.ExportInfo.TotalRevenue)
	assert.Equal(t, "json", env.ExportInfo.Format)
	require.Len(t, env.Invoices, 2)

	first := env.Invoices[0]
	assert.Equal(t, "YG-20251213-0001", first.InvoiceNumber)
	require.Len(t, first.Items, 2)
	assert.Equal(t, 1, first.Items[0].SrNo)
	assert.Equal(t, 2, first.Items[1].SrNo)
	assert.Equal(t, 6.0, first.Summary.TotalQty)
	assert.Equal(t, 30.0, first.Summary.GrandTotal)
}

func TestParseImportJSONRoundTrip(t *testing.T) {
	env := BuildExportEnvelope([]*models.Invoice{sampleInvoice()})
	data, err := json.Marshal(env)
	require.NoError(t, err)

	drafts, err := ParseImportJSON(data)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	draft := drafts[0]
	assert.Equal(t, "2025-12-13", draft.Date)
	assert.Equal(t, "Ravi Kumar", draft.Customer.Name)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, "Widget", draft.Lines[0].Description)
	assert.Equal(t, 30.0, draft.Total)
	assert.Equal(t, draft.Subtotal, draft.Total)
	assert.True(t, draft.ShowPanNo)
}

func TestParseImportJSONBareArray(t *testing.T) {
	data := []byte(`[
		{"date": "2025-12-13",
		 "customer": {"name": "Ravi Kumar"},
		 "lines": [{"description": "Widget", "qty": 2, "price": 10, "total": 20}]}
	]`)

	drafts, err := ParseImportJSON(data)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, 20.0, drafts[0].Total)
}

func TestParseImportJSONTotalPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{
			name: "explicit total wins",
			body: `[{"total": 100, "summary": {"grandTotal": 50, "totalAmount": 25}}]`,
			want: 100,
		},
		{
			name: "grandTotal next",
			body: `[{"summary": {"grandTotal": 50, "totalAmount": 25}}]`,
			want: 50,
		},
		{
			name: "totalAmount last",
			body: `[{"summary": {"grandTotal": 0, "totalAmount": 25}}]`,
			want: 25,
		},
		{
			name: "lines override declared totals",
			body: `[{"total": 999, "lines": [{"description": "X", "qty": 2, "price": 5}]}]`,
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := ParseImportJSON([]byte(tt.body))
			require.NoError(t, err)
			require.Len(t, drafts, 1)
			assert.Equal(t, tt.want, drafts[0].Total)
		})
	}
}

func TestParseImportJSONConsolidatesItems(t *testing.T) {
	data := []byte(`[
		{"items": [
			{"srNo": 1, "description": "Widget", "qty": 2, "price": 10},
			{"srNo": 2, "description": "widget", "qty": 3, "price": 99}
		]}
	]`)

	drafts, err := ParseImportJSON(data)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Len(t, drafts[0].Lines, 1)
	assert.Equal(t, 5.0, drafts[0].Lines[0].Qty)
	assert.Equal(t, 50.0, drafts[0].Total)
}

func TestParseImportJSONDefaultsDate(t *testing.T) {
	drafts, err := ParseImportJSON([]byte(`[{"customer": {"name": "A"}}]`))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.NotEmpty(t, drafts[0].Date)
}

func TestParseImportJSONRejectsUnrecognized(t *testing.T) {
	_, err := ParseImportJSON([]byte(`"not an export"`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = ParseImportJSON([]byte(`{"something": "else"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}
