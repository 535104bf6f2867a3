package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annapurna-pos/api/internal/billing"
	"github.com/annapurna-pos/api/internal/cart"
	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxBillNumberRetries = 3

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to persist orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	NextBillSequence(ctx context.Context, day time.Time) (int64, error)
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderResult is the persisted bill and its order row id.
type CreateOrderResult struct {
	OrderID int64
	Bill    *billing.Bill
}

// OrderService computes bills and records them durably.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
	now      func() time.Time
}

func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore, now: time.Now}
}

// CreateOrder computes the bill for the given cart and persists it, one
// orders row plus one order_items row per line, in a single transaction.
// The bill number is allocated inside that same transaction from the
// per-day counter, so either the whole order lands with a unique number or
// nothing does. Validation errors surface before anything is written.
//
// On a bill_number unique violation (possible only when another process
// races the counter) the whole transaction is retried.
func (s *OrderService) CreateOrder(ctx context.Context, c *cart.Cart, items map[int64]catalog.Item,
	p billing.Params, meta billing.Metadata) (*CreateOrderResult, error) {

	meta.Date = s.now()
	bill, err := billing.Compute(c, items, p, meta)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxBillNumberRetries; attempt++ {
		result, err := s.createOrderTx(ctx, bill)
		if err == nil {
			return result, nil
		}
		if isBillNumberConflict(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// isBillNumberConflict checks for a unique constraint violation on
// orders.bill_number (pgconn error code 23505).
func isBillNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "orders_bill_number_key"
	}
	return false
}

// createOrderTx allocates the bill number and writes the order atomically.
func (s *OrderService) createOrderTx(ctx context.Context, bill *billing.Bill) (*CreateOrderResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	day := bill.Date
	seq, err := store.NextBillSequence(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("next bill sequence: %w", err)
	}
	bill.BillNumber = billing.BillNumber(day, seq)

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		BillNumber:    bill.BillNumber,
		Date:          day,
		CustomerName:  bill.CustomerName,
		OrderType:     bill.OrderType,
		Total:         database.DecimalToNumeric(bill.GrandTotal),
		PaymentMethod: bill.PaymentType,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, line := range bill.Lines {
		if _, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:  order.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CreateOrderResult{OrderID: order.ID, Bill: bill}, nil
}
