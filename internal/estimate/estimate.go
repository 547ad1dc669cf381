// Package estimate normalizes the numeric fields of a decoded analysis and
// enforces the invariant that the displayed total equals the sum of the
// displayed line items.
package estimate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/onedaone/reco-ai-demo/pkg/models"
)

// Normalize recomputes every line item's subtotal from qty × unit price and
// accumulates the grand total. A confirmed unit_price wins over the model's
// suggested_unit_price; missing or unparseable values were already coerced
// to zero at the decode boundary. Subtotals and the total are always
// recomputed, never trusted from upstream, so applying Normalize to its own
// output changes nothing. No-op when the result carries no items.
func Normalize(res *models.AnalysisResult, currency string) {
	if res == nil || res.Items == nil {
		return
	}

	var total float64
	for i := range res.Items {
		it := &res.Items[i]

		price := float64(it.UnitPrice)
		if price == 0 {
			price = float64(it.SuggestedUnitPrice)
		}

		subtotal := math.Round(float64(it.Qty) * price)
		it.UnitPrice = models.Amount(price)
		it.Subtotal = models.Amount(subtotal)
		total += subtotal
	}

	if res.EstimatedTotal == "" {
		res.EstimatedTotal = models.Label(FormatTotal(total, currency))
	}
}

// FormatTotal renders a grand total with the configured currency label.
func FormatTotal(total float64, currency string) string {
	return fmt.Sprintf("%s %s", currency, strconv.FormatFloat(total, 'f', -1, 64))
}
