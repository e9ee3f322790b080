package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNumber(t *testing.T) {
	date := time.Date(2025, 12, 13, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "YG-20251213-0001", FormatInvoiceNumber("YG", date, 1))
	assert.Equal(t, "YG-20251213-0042", FormatInvoiceNumber("YG", date, 42))
	assert.Equal(t, "YG-20251213-9999", FormatInvoiceNumber("YG", date, 9999))
}

func TestFormatInvoiceNumberCounterOverflowsPadding(t *testing.T) {
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	// Past four digits the counter widens instead of truncating.
	assert.Equal(t, "YG-20260102-10000", FormatInvoiceNumber("YG", date, 10000))
}

func TestFormatInvoiceNumberCustomPrefix(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-20250601-0007", FormatInvoiceNumber("INV", date, 7))
}
