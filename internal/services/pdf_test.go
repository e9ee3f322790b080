package services

import (
	"bytes"
	"testing"

	"invoice-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoicePDF(t *testing.T) {
	data, err := GenerateInvoicePDF(sampleInvoice())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
}

func TestGenerateInvoicePDFEmptyInvoice(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "YG-20251213-0001",
		Date:          "2025-12-13",
		Currency:      "INR",
	}

	data, err := GenerateInvoicePDF(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
