package repositories

import (
	"fmt"
	"time"
)

// FormatInvoiceNumber derives an invoice number of the form
// "PREFIX-YYYYMMDD-NNNN" from the invoice date and the current counter
// value. The counter is a single global sequence; it is not derived from
// the date and never resets.
func FormatInvoiceNumber(prefix string, date time.Time, counter int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), counter)
}
