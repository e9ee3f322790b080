package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWordsINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rupees Zero Only"},
		{1, "Rupees One Only"},
		{21, "Rupees Twenty One Only"},
		{100, "Rupees One Hundred Only"},
		{1234.50, "Rupees One Thousand Two Hundred Thirty Four and Fifty Paise Only"},
		{100000, "Rupees One Lakh Only"},
		{10000000, "Rupees One Crore Only"},
		{12345678, "Rupees One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Only"},
		{0.05, "Rupees Zero and Five Paise Only"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(tt.amount, "INR"))
	}
}

func TestAmountInWordsOtherCurrency(t *testing.T) {
	assert.Equal(t, "USD Twelve and Thirty Four Cents Only",
		AmountInWords(12.34, "USD"))
}

func TestAmountInWordsNegative(t *testing.T) {
	assert.Equal(t, "Minus Rupees Ten Only", AmountInWords(-10, "INR"))
}

func TestAmountInWordsRoundsFraction(t *testing.T) {
	// 99.999 rounds to 100.00, not 99 rupees 100 paise
	assert.Equal(t, "Rupees One Hundred Only", AmountInWords(99.999, "INR"))
}
