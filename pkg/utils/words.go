package utils

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords spells out a monetary amount using the Indian numbering
// system (crore/lakh/thousand). For INR the fraction is given in paise;
// other currencies get a generic "and NN/100" fraction.
func AmountInWords(amount float64, currency string) string {
	if amount < 0 {
		return "Minus " + AmountInWords(-amount, currency)
	}

	paise := int64(math.Round(amount * 100))
	whole := paise / 100
	fraction := paise % 100

	words := integerWords(whole)
	if words == "" {
		words = "Zero"
	}

	if currency == "INR" || currency == "" {
		out := "Rupees " + words
		if fraction > 0 {
			out += " and " + integerWords(fraction) + " Paise"
		}
		return out + " Only"
	}

	out := currency + " " + words
	if fraction > 0 {
		out += " and " + twoDigitWords(int(fraction)) + " Cents"
	}
	return out + " Only"
}

// integerWords converts n using Indian grouping: crore, lakh, thousand,
// hundred.
func integerWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if crore := n / 10000000; crore > 0 {
		parts = append(parts, integerWords(crore), "Crore")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigitWords(int(lakh)), "Lakh")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigitWords(int(thousand)), "Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, twoDigitWords(int(n)))
	}

	return strings.Join(parts, " ")
}

func twoDigitWords(n int) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
