package handler

import (
	"net/http"

	"github.com/annapurna-pos/api/internal/catalog"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the menu browser. The catalog is immutable after the
// startup import, so the handler works from the loaded snapshot and never
// goes back to the store.
type MenuHandler struct {
	items []catalog.Item
}

func NewMenuHandler(items []catalog.Item) *MenuHandler {
	return &MenuHandler{items: items}
}

func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

type menuItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Gst      string `json:"gst"`
	Calories int32  `json:"calories"`
	ImageURL string `json:"image_url"`
	ItemType string `json:"item_type"`
}

type menuResponse struct {
	Items      []menuItemResponse `json:"items"`
	Categories []string           `json:"categories"`
}

// List returns the catalog, optionally narrowed by ?category=, ?type=
// (Veg / Non-Veg) and ?q= (case-insensitive name substring).
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filtered := catalog.Filter(h.items, q.Get("category"), q.Get("type"), q.Get("q"))

	items := make([]menuItemResponse, 0, len(filtered))
	for _, item := range filtered {
		items = append(items, menuItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price.StringFixed(2),
			Gst:      item.Gst.StringFixed(2),
			Calories: item.Calories,
			ImageURL: item.ImageURL,
			ItemType: item.ItemType,
		})
	}

	writeJSON(w, http.StatusOK, menuResponse{
		Items:      items,
		Categories: catalog.Categories(h.items),
	})
}
