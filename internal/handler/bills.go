package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/annapurna-pos/api/internal/billing"
	"github.com/annapurna-pos/api/internal/cart"
	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/database"
	"github.com/annapurna-pos/api/internal/export"
	"github.com/annapurna-pos/api/internal/logger"
	"github.com/annapurna-pos/api/internal/middleware"
	"github.com/annapurna-pos/api/internal/service"
	"github.com/annapurna-pos/api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderServicer defines the service methods needed by bill handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, c *cart.Cart, items map[int64]catalog.Item,
		p billing.Params, meta billing.Metadata) (*service.CreateOrderResult, error)
}

// OrderReader defines the database methods needed to read stored orders.
// Satisfied by *database.Queries.
type OrderReader interface {
	GetOrder(ctx context.Context, id int64) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]database.OrderItem, error)
}

// BillHandler drives the bill cycle: generate from the session cart,
// export the result, read back stored orders.
type BillHandler struct {
	svc        OrderServicer
	store      OrderReader
	session    *session.Session
	items      map[int64]catalog.Item
	gstPercent decimal.Decimal
	log        *logger.Logger
}

// NewBillHandler clamps gstPercent to [0,100]: Compute trusts its Params,
// so a misconfigured rate must not reach it.
func NewBillHandler(svc OrderServicer, store OrderReader, sess *session.Session,
	items map[int64]catalog.Item, gstPercent decimal.Decimal, log *logger.Logger) *BillHandler {
	return &BillHandler{
		svc:        svc,
		store:      store,
		session:    sess,
		items:      items,
		gstPercent: billing.ClampPercent(gstPercent),
		log:        log,
	}
}

func (h *BillHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/last/export", h.ExportLast)
	r.Get("/{id}", h.Get)
}

type createBillRequest struct {
	CustomerName    string  `json:"customer_name"`
	OrderType       string  `json:"order_type"`
	PaymentType     string  `json:"payment_type"`
	DiscountPercent float64 `json:"discount_percent"`
}

type billResponse struct {
	OrderID int64 `json:"order_id"`
	export.BillJSON
}

// Create computes and persists a bill from the session cart. The cart is
// cleared only after the order is durably recorded; on any failure it is
// left untouched so the operator can correct and retry.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())

	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := billing.Params{
		GstPercent:      h.gstPercent,
		DiscountPercent: billing.ClampPercent(decimal.NewFromFloat(req.DiscountPercent)),
	}
	meta := billing.Metadata{
		CustomerName: req.CustomerName,
		OrderType:    req.OrderType,
		PaymentType:  req.PaymentType,
	}

	result, err := h.svc.CreateOrder(r.Context(), h.session.Snapshot(), h.items, params, meta)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.log.Error("order_persist_failed", requestID, "failed to record order", err)
		writeError(w, http.StatusBadGateway, "failed to record order; cart preserved, retry")
		return
	}

	h.session.Complete(result.Bill)
	h.log.Info("order_created", requestID,
		fmt.Sprintf("bill %s recorded as order %d", result.Bill.BillNumber, result.OrderID))

	writeJSON(w, http.StatusCreated, billResponse{
		OrderID:  result.OrderID,
		BillJSON: export.Build(result.Bill),
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, billing.ErrEmptyOrder) ||
		errors.Is(err, billing.ErrMissingCustomer) ||
		errors.Is(err, billing.ErrUnknownItem) ||
		errors.Is(err, billing.ErrInvalidOrderType) ||
		errors.Is(err, billing.ErrInvalidPaymentType)
}

// ExportLast renders the most recently generated bill in the requested
// format (?format=json|csv|pdf, default json) as a download.
func (h *BillHandler) ExportLast(w http.ResponseWriter, r *http.Request) {
	bill := h.session.LastBill()
	if bill == nil {
		writeError(w, http.StatusNotFound, "no bill generated yet")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatJSON
	}

	data, contentType, err := export.Render(bill, format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("bill_export_failed", middleware.RequestIDFromContext(r.Context()),
			"failed to render bill", err)
		writeError(w, http.StatusInternalServerError, "failed to render bill")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", bill.BillNumber+"."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type storedOrderResponse struct {
	ID            int64                     `json:"id"`
	BillNumber    string                    `json:"bill_number"`
	Date          string                    `json:"date"`
	CustomerName  string                    `json:"customer_name"`
	OrderType     string                    `json:"order_type"`
	Total         string                    `json:"total"`
	PaymentMethod string                    `json:"payment_method"`
	Items         []storedOrderItemResponse `json:"items"`
}

type storedOrderItemResponse struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
}

// Get reads one stored order and its line items.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	orderItems, err := h.store.ListOrderItemsByOrder(r.Context(), order.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	items := make([]storedOrderItemResponse, 0, len(orderItems))
	for _, oi := range orderItems {
		items = append(items, storedOrderItemResponse{
			ItemID:   oi.ItemID,
			Name:     h.items[oi.ItemID].Name,
			Quantity: oi.Quantity,
		})
	}

	writeJSON(w, http.StatusOK, storedOrderResponse{
		ID:            order.ID,
		BillNumber:    order.BillNumber,
		Date:          order.Date.Format("2006-01-02"),
		CustomerName:  order.CustomerName,
		OrderType:     order.OrderType,
		Total:         database.NumericToDecimal(order.Total).StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		Items:         items,
	})
}
