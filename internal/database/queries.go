package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the same query
// methods work inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the hand-written query layer over the POS schema.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// --- Menu ---

const countMenuItemsSQL = `SELECT COUNT(*) FROM menu`

func (q *Queries) CountMenuItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countMenuItemsSQL).Scan(&count)
	return count, err
}

type CreateMenuItemParams struct {
	Name     string
	Category string
	Price    pgtype.Numeric
	Gst      pgtype.Numeric
	Calories int32
	ImageUrl string
	ItemType string
}

const createMenuItemSQL = `
	INSERT INTO menu (name, category, price, gst, calories, image_url, item_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, name, category, price, gst, calories, image_url, item_type`

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	var m MenuItem
	err := q.db.QueryRow(ctx, createMenuItemSQL,
		arg.Name, arg.Category, arg.Price, arg.Gst, arg.Calories, arg.ImageUrl, arg.ItemType,
	).Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Gst, &m.Calories, &m.ImageUrl, &m.ItemType)
	return m, err
}

const listMenuItemsSQL = `
	SELECT id, name, category, price, gst, calories, image_url, item_type
	FROM menu
	ORDER BY id`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, listMenuItemsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.Price, &m.Gst,
			&m.Calories, &m.ImageUrl, &m.ItemType); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const getMenuItemSQL = `
	SELECT id, name, category, price, gst, calories, image_url, item_type
	FROM menu
	WHERE id = $1`

func (q *Queries) GetMenuItem(ctx context.Context, id int64) (MenuItem, error) {
	var m MenuItem
	err := q.db.QueryRow(ctx, getMenuItemSQL, id).Scan(
		&m.ID, &m.Name, &m.Category, &m.Price, &m.Gst, &m.Calories, &m.ImageUrl, &m.ItemType)
	return m, err
}

// --- Bill numbering ---

// NextBillSequence allocates the next 1-based bill sequence for the given
// day. The upsert takes a row lock, so concurrent transactions are
// serialized and each sees a distinct value.
const nextBillSequenceSQL = `
	INSERT INTO bill_counters (day, seq)
	VALUES ($1, 1)
	ON CONFLICT (day) DO UPDATE SET seq = bill_counters.seq + 1
	RETURNING seq`

func (q *Queries) NextBillSequence(ctx context.Context, day time.Time) (int64, error) {
	var seq int64
	err := q.db.QueryRow(ctx, nextBillSequenceSQL, day).Scan(&seq)
	return seq, err
}

// --- Orders ---

type CreateOrderParams struct {
	BillNumber    string
	Date          time.Time
	CustomerName  string
	OrderType     string
	Total         pgtype.Numeric
	PaymentMethod string
}

const createOrderSQL = `
	INSERT INTO orders (bill_number, date, customer_name, order_type, total, payment_method)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, bill_number, date, customer_name, order_type, total, payment_method, created_at`

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, createOrderSQL,
		arg.BillNumber, arg.Date, arg.CustomerName, arg.OrderType, arg.Total, arg.PaymentMethod,
	).Scan(&o.ID, &o.BillNumber, &o.Date, &o.CustomerName, &o.OrderType, &o.Total,
		&o.PaymentMethod, &o.CreatedAt)
	return o, err
}

type CreateOrderItemParams struct {
	OrderID  int64
	ItemID   int64
	Quantity int32
}

const createOrderItemSQL = `
	INSERT INTO order_items (order_id, item_id, quantity)
	VALUES ($1, $2, $3)
	RETURNING order_id, item_id, quantity`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	var oi OrderItem
	err := q.db.QueryRow(ctx, createOrderItemSQL,
		arg.OrderID, arg.ItemID, arg.Quantity,
	).Scan(&oi.OrderID, &oi.ItemID, &oi.Quantity)
	return oi, err
}

const getOrderSQL = `
	SELECT id, bill_number, date, customer_name, order_type, total, payment_method, created_at
	FROM orders
	WHERE id = $1`

func (q *Queries) GetOrder(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, getOrderSQL, id).Scan(
		&o.ID, &o.BillNumber, &o.Date, &o.CustomerName, &o.OrderType, &o.Total,
		&o.PaymentMethod, &o.CreatedAt)
	return o, err
}

const listOrderItemsByOrderSQL = `
	SELECT order_id, item_id, quantity
	FROM order_items
	WHERE order_id = $1
	ORDER BY item_id`

func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItemsByOrderSQL, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var oi OrderItem
		if err := rows.Scan(&oi.OrderID, &oi.ItemID, &oi.Quantity); err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	return items, rows.Err()
}

// --- Reports ---

type DailyStats struct {
	OrdersCount int32
	Revenue     pgtype.Numeric
}

const getDailyStatsSQL = `
	SELECT COUNT(*)::int, COALESCE(SUM(total), 0)
	FROM orders
	WHERE date = $1`

func (q *Queries) GetDailyStats(ctx context.Context, day time.Time) (DailyStats, error) {
	var s DailyStats
	err := q.db.QueryRow(ctx, getDailyStatsSQL, day).Scan(&s.OrdersCount, &s.Revenue)
	return s, err
}

// --- Users ---

const getUserByEmailSQL = `
	SELECT id, email, hashed_password, full_name, role, is_active, created_at
	FROM users
	WHERE email = $1 AND is_active = TRUE`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, getUserByEmailSQL, email).Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt)
	return u, err
}

type CreateUserParams struct {
	Email          string
	HashedPassword string
	FullName       string
	Role           string
}

const createUserSQL = `
	INSERT INTO users (email, hashed_password, full_name, role, is_active)
	VALUES ($1, $2, $3, $4, TRUE)
	RETURNING id, email, hashed_password, full_name, role, is_active, created_at`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, createUserSQL,
		arg.Email, arg.HashedPassword, arg.FullName, arg.Role,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt)
	return u, err
}
