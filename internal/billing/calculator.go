package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annapurna-pos/api/internal/cart"
	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by Compute.
var (
	ErrEmptyOrder         = errors.New("empty_order")
	ErrMissingCustomer    = errors.New("missing_customer")
	ErrUnknownItem        = errors.New("item not in catalog")
	ErrInvalidOrderType   = errors.New("invalid order_type")
	ErrInvalidPaymentType = errors.New("invalid payment_type")
)

var percentMax = decimal.NewFromInt(100)

// Params are the order-level tax and discount rates. Both are percentages
// already clamped to [0,100] by the caller (see ClampPercent); Compute does
// not re-validate them.
//
// Tax policy: one flat rate applied to the order subtotal. The per-item gst
// stored with each catalog entry is deliberately not consulted here.
type Params struct {
	GstPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Metadata is the operator-entered bill header.
type Metadata struct {
	CustomerName string
	OrderType    string
	PaymentType  string
	Date         time.Time
}

// ClampPercent forces v into [0,100].
func ClampPercent(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(percentMax) {
		return percentMax
	}
	return v
}

// Compute turns a cart snapshot plus catalog into a fully itemized Bill.
// Pure function of its inputs: no side effects, the cart is not modified.
//
// All arithmetic runs at full decimal precision; each monetary output field
// is rounded exactly once (half-up, 2 dp) when the Bill is assembled, and
// the grand total is the sum of the rounded subtotal, tax and discount so
// the printed identity holds to the paisa.
func Compute(c *cart.Cart, items map[int64]catalog.Item, p Params, meta Metadata) (*Bill, error) {
	if c.Empty() {
		return nil, ErrEmptyOrder
	}
	if strings.TrimSpace(meta.CustomerName) == "" {
		return nil, ErrMissingCustomer
	}
	if !enum.ValidOrderType(meta.OrderType) {
		return nil, ErrInvalidOrderType
	}
	if !enum.ValidPaymentMethod(meta.PaymentType) {
		return nil, ErrInvalidPaymentType
	}

	subtotal := decimal.Zero
	cartLines := c.Lines()
	lines := make([]Line, 0, len(cartLines))
	for _, cl := range cartLines {
		item, ok := items[cl.ItemID]
		if !ok {
			return nil, fmt.Errorf("item %d: %w", cl.ItemID, ErrUnknownItem)
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt32(cl.Quantity))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, Line{
			ItemID:    cl.ItemID,
			Name:      item.Name,
			Quantity:  cl.Quantity,
			UnitPrice: item.Price.Round(2),
			LineTotal: lineTotal.Round(2),
		})
	}

	taxAmount := subtotal.Mul(p.GstPercent).Div(percentMax)
	discountAmount := subtotal.Mul(p.DiscountPercent).Div(percentMax)

	roundedSubtotal := subtotal.Round(2)
	roundedTax := taxAmount.Round(2)
	roundedDiscount := discountAmount.Round(2)

	return &Bill{
		Date:            meta.Date,
		CustomerName:    strings.TrimSpace(meta.CustomerName),
		OrderType:       meta.OrderType,
		PaymentType:     meta.PaymentType,
		Lines:           lines,
		Subtotal:        roundedSubtotal,
		GstPercent:      p.GstPercent,
		TaxAmount:       roundedTax,
		DiscountPercent: p.DiscountPercent,
		DiscountAmount:  roundedDiscount,
		GrandTotal:      roundedSubtotal.Add(roundedTax).Sub(roundedDiscount),
	}, nil
}
