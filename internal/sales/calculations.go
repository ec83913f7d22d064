package sales

import "math"

// CalculateLineTotals applies a percentage discount to quantity*unitPrice and
// then a percentage tax to the discounted amount.
func CalculateLineTotals(quantity, unitPrice, discountPercent, taxPercent float64) (discountAmount, taxAmount, lineTotal float64) {
	grossAmount := quantity * unitPrice
	discountAmount = grossAmount * (discountPercent / 100)
	netAmount := grossAmount - discountAmount
	taxAmount = netAmount * (taxPercent / 100)
	lineTotal = netAmount + taxAmount
	return round2(discountAmount), round2(taxAmount), round2(lineTotal)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
