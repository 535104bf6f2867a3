package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/annapurna-pos/api/internal/cart"
	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/annapurna-pos/api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CartHandler exposes the session cart: set a line's quantity, inspect it,
// clear it.
type CartHandler struct {
	session *session.Session
	items   map[int64]catalog.Item
}

func NewCartHandler(sess *session.Session, items map[int64]catalog.Item) *CartHandler {
	return &CartHandler{session: sess, items: items}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/items/{itemID}", h.SetQuantity)
	r.Delete("/", h.Clear)
}

type setQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type cartLineResponse struct {
	ItemID    int64  `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type cartResponse struct {
	Lines    []cartLineResponse `json:"lines"`
	Subtotal string             `json:"subtotal"`
}

// SetQuantity inserts or replaces the cart line for the path item.
// Quantity zero removes the line; negative quantities are rejected.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}
	if _, ok := h.items[itemID]; !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.SetQuantity(itemID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrNegativeQuantity) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondCart(w)
}

// Get returns the current cart with line totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w)
}

// Clear empties the cart unconditionally.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.session.ClearCart()
	h.respondCart(w)
}

func (h *CartHandler) respondCart(w http.ResponseWriter) {
	subtotal := decimal.Zero
	lines := make([]cartLineResponse, 0)
	for _, line := range h.session.Lines() {
		item := h.items[line.ItemID]
		lineTotal := item.Price.Mul(decimal.NewFromInt32(line.Quantity))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, cartLineResponse{
			ItemID:    line.ItemID,
			Name:      item.Name,
			Quantity:  line.Quantity,
			UnitPrice: item.Price.StringFixed(2),
			LineTotal: lineTotal.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Lines:    lines,
		Subtotal: subtotal.StringFixed(2),
	})
}
