package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Line is one itemized row of a computed bill.
type Line struct {
	ItemID    int64
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Bill is an immutable snapshot of one completed transaction, produced by
// Compute and never mutated afterwards. All monetary fields are rounded to
// 2 decimal places and satisfy
//
//	GrandTotal = Subtotal + TaxAmount - DiscountAmount
//
// exactly, because GrandTotal is derived from the already-rounded parts.
type Bill struct {
	BillNumber      string
	Date            time.Time
	CustomerName    string
	OrderType       string
	PaymentType     string
	Lines           []Line
	Subtotal        decimal.Decimal
	GstPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	GrandTotal      decimal.Decimal
}

// BillNumber formats a per-day bill identifier, e.g. BILL-20260829-007.
// The sequence is 1-based and zero-padded to width 3; past 999 the width
// simply grows.
func BillNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("BILL-%s-%03d", day.Format("20060102"), seq)
}
