package services

import (
	"errors"
	"strings"
	"testing"

	"invoice-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportInvoiceCSVLayout(t *testing.T) {
	out := string(ExportInvoiceCSV(sampleInvoice()))

	assert.True(t, strings.HasPrefix(out, "Format-Version,1\n"))
	assert.Contains(t, out, "Invoice No,YG-20251213-0001")
	assert.Contains(t, out, "Sr. No,Description,Qty,Price,Total")
	assert.Contains(t, out, "1,Widget,2.00,10.00,20.00")
	assert.Contains(t, out, "Total Qty:,6.00")
	assert.Contains(t, out, "Grand Total,30.00")
	assert.Contains(t, out, "Pan No,ABCDE1234F")
}

func TestExportInvoiceCSVHidesPanWhenDisabled(t *testing.T) {
	inv := sampleInvoice()
	inv.ShowPanNo = false

	out := string(ExportInvoiceCSV(inv))
	assert.NotContains(t, out, "Pan No")
}

func TestParseImportCSVRoundTrip(t *testing.T) {
	data := ExportInvoiceCSV(sampleInvoice())

	draft, err := ParseImportCSV(data)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-13", draft.Date)
	assert.Equal(t, "Ravi Kumar", draft.Customer.Name)
	assert.Equal(t, "9876543210", draft.Customer.Contact)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, "Widget", draft.Lines[0].Description)
	assert.Equal(t, 2.0, draft.Lines[0].Qty)
	assert.Equal(t, 30.0, draft.Total)
	assert.True(t, draft.ShowPanNo)
}

func TestParseImportCSVLegacyUntagged(t *testing.T) {
	legacy := strings.Join([]string{
		"Invoice No,YG-20240101-0009",
		"Date,2024-01-01",
		"Customer,Old Customer",
		"",
		"Sr. No,Description,Qty,Price,Total",
		"1,Widget,2,10,20",
		"2,Bolt,4,2.5,10",
		"Total Qty:,6",
		"Grand Total,30",
	}, "\n")

	draft, err := ParseImportCSV([]byte(legacy))
	require.NoError(t, err)

	assert.Equal(t, "Old Customer", draft.Customer.Name)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, 30.0, draft.Total)
	assert.False(t, draft.ShowPanNo)
}

func TestParseImportCSVConsolidatesDuplicateRows(t *testing.T) {
	doc := strings.Join([]string{
		"Sr. No,Description,Qty,Price,Total",
		"1,Widget,2,10,20",
		"2,widget,3,10,30",
		"Total Qty:,5",
	}, "\n")

	draft, err := ParseImportCSV([]byte(doc))
	require.NoError(t, err)
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, 5.0, draft.Lines[0].Qty)
	assert.Equal(t, 50.0, draft.Total)
}

func TestParseImportCSVSkipsMalformedRows(t *testing.T) {
	doc := strings.Join([]string{
		"Sr. No,Description,Qty,Price,Total",
		"1,Widget,two,10,20",
		"2,Bolt,4,2.5,10",
		"Total Qty:,4",
	}, "\n")

	draft, err := ParseImportCSV([]byte(doc))
	require.NoError(t, err)
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, "Bolt", draft.Lines[0].Description)
}

func TestParseImportCSVRejectsMissingTable(t *testing.T) {
	doc := "Invoice No,YG-20251213-0001\nDate,2025-12-13\n"

	_, err := ParseImportCSV([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestParseImportCSVDefaultsDate(t *testing.T) {
	doc := strings.Join([]string{
		"Sr. No,Description,Qty,Price,Total",
		"1,Widget,1,10,10",
		"Total Qty:,1",
	}, "\n")

	draft, err := ParseImportCSV([]byte(doc))
	require.NoError(t, err)
	assert.NotEmpty(t, draft.Date)
}

func TestExportInvoicesCSVReport(t *testing.T) {
	out := string(ExportInvoicesCSV([]*models.Invoice{sampleInvoice(), sampleInvoice()}))

	assert.Contains(t, out, "Report,All Invoices")
	assert.Contains(t, out, "Total Invoices,2")
	assert.Contains(t, out, "Total Revenue,60.00")
}
