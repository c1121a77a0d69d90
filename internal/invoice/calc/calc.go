// Package calc holds the pure document math: line amounts, totals, the
// payment ledger sums and settlement status. Nothing here touches the
// database or rounds values; callers format for display.
package calc

import (
	"strconv"
	"strings"

	"github.com/smallbiznis/faktur/internal/invoice/domain"
)

// Num parses a free-form numeric field. Blank or unparsable input counts
// as zero so a half-filled row never poisons the document totals.
func Num(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// Amount computes quantity*unitPrice less the percentage discount.
func Amount(quantity, unitPrice, discountPercent string) float64 {
	q := Num(quantity)
	p := Num(unitPrice)
	d := Num(discountPercent)
	return q*p - (q*p*d)/100
}

/// AmountForFill is the catalog-autofill variant: a blank quantity defaults
// to one so picking a product yields a priced row immediately.
func AmountForFill(quantity, unitPrice, discountPercent string) float64 {
	q := quantity
	if strings.TrimSpace(q) == "" {
		q = "1"
	}
	return Amount(q, unitPrice, discountPercent)
}

type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Aggregate recomputes the document totals from the stored line amounts
// and the document-level tax rate percentage.
func Aggregate(items []domain.LineItem, taxRatePercent float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}
	tax := (taxRatePercent / 100) * subtotal
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// TotalReceived sums the payment ledger.
func TotalReceived(records []domain.PaymentRecord) float64 {
	var received float64
	for _, record := range records {
		received += record.AmountPaid
	}
	return received
}

// BalanceDue is total minus received. Overpayment drives it negative;
// the ledger has no void entry, so the balance carries the correction.
func BalanceDue(total, received float64) float64 {
	return total - received
}

// DeriveStatus settles the document. Receipts are always Paid. Draft is
// caller-set and never produced here.
func DeriveStatus(docType domain.DocumentType, total, received float64) domain.Status {
	if docType == domain.TypeReceipt {
		return domain.StatusPaid
	}
	if received >= total {
		return domain.StatusPaid
	}
	if received > 0 {
		return domain.StatusPartial
	}
	return domain.StatusUnpaid
}

// Renumber rewrites serial numbers 1..n in slice order, closing any gap
// left by a removed row.
func Renumber(items []domain.LineItem) {
	for i := range items {
		items[i].SrNo = i + 1
	}
}
