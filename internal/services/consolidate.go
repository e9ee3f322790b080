package services

import (
	"strings"

	"invoice-backend/internal/models"
)

// ConsolidateLines merges duplicate lines by description. The key is the
// trimmed, lowercased description; lines with a blank key are placeholders
// and are dropped. Quantities sum across a group, the first occurrence's
// price and item reference win, and the total is recomputed from the summed
// quantity. Output keeps first-seen order. The function is pure and
// idempotent.
func ConsolidateLines(lines []models.Line) []models.Line {
	index := make(map[string]int)
	out := make([]models.Line, 0, len(lines))

	for _, line := range lines {
		key := strings.ToLower(strings.TrimSpace(line.Description))
		if key == "" {
			continue
		}

		if i, ok := index[key]; ok {
			out[i].Qty += line.Qty
			out[i].Total = out[i].Qty * out[i].Price
			continue
		}

		merged := line
		merged.Total = merged.Qty * merged.Price
		index[key] = len(out)
		out = append(out, merged)
	}

	return out
}

// SumLines returns the sum of line totals.
func SumLines(lines []models.Line) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.Total
	}
	return sum
}
