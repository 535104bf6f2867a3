package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// MenuItem is one row of the immutable menu catalog. Rows are created by
// the first-run CSV import and never updated or deleted afterwards.
type MenuItem struct {
	ID       int64
	Name     string
	Category string
	Price    pgtype.Numeric
	Gst      pgtype.Numeric
	Calories int32
	ImageUrl string
	ItemType string
}

// Order is one persisted bill. Orders are append-only.
type Order struct {
	ID            int64
	BillNumber    string
	Date          time.Time
	CustomerName  string
	OrderType     string
	Total         pgtype.Numeric
	PaymentMethod string
	CreatedAt     time.Time
}

// OrderItem is one line of a persisted order.
type OrderItem struct {
	OrderID  int64
	ItemID   int64
	Quantity int32
}

// User is an operator account.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	FullName       string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
}
