package enum

// ── Persisted values (CHECK constrained in DB) ──
//
// These carry the human-readable labels rather than SCREAMING_SNAKE codes
// because they appear verbatim on printed bills and in every export format.

const (
	OrderTypeDineIn   = "Dine-in"
	OrderTypeTakeaway = "Takeaway"
	OrderTypeDelivery = "Delivery"
)

const (
	PaymentMethodCash = "Cash"
	PaymentMethodUPI  = "UPI"
	PaymentMethodCard = "Card"
)

const (
	ItemTypeVeg    = "Veg"
	ItemTypeNonVeg = "Non-Veg"
)

const (
	UserRoleOwner   = "OWNER"
	UserRoleCashier = "CASHIER"
)

func ValidOrderType(s string) bool {
	switch s {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard:
		return true
	}
	return false
}

func ValidItemType(s string) bool {
	switch s {
	case ItemTypeVeg, ItemTypeNonVeg:
		return true
	}
	return false
}
