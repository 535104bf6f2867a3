package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/annapurna-pos/api/internal/database"
	"github.com/jackc/pgx/v5"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store defines the DB methods needed to load the catalog.
// Satisfied by *database.Queries (and its WithTx variant).
type Store interface {
	CountMenuItems(ctx context.Context) (int64, error)
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
}

// NewStore creates a Store from a DBTX (pool or tx).
type NewStore func(db database.DBTX) Store

// Loader performs the idempotent first-run menu import: the CSV source is
// read only while the menu table is empty (checked by record count).
type Loader struct {
	pool     TxBeginner
	store    Store
	newStore NewStore
	csvPath  string
}

func NewLoader(pool TxBeginner, store Store, newStore NewStore, csvPath string) *Loader {
	return &Loader{pool: pool, store: store, newStore: newStore, csvPath: csvPath}
}

// Load returns the full catalog. On first run it parses the CSV source and
// persists every row in one transaction; afterwards the stored rows are
// authoritative and the CSV is never re-read. Safe to call repeatedly.
func (l *Loader) Load(ctx context.Context) ([]database.MenuItem, error) {
	count, err := l.store.CountMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("count menu items: %w", err)
	}
	if count > 0 {
		return l.store.ListMenuItems(ctx)
	}

	f, err := os.Open(l.csvPath)
	if err != nil {
		return nil, fmt.Errorf("open menu source: %w", err)
	}
	defer f.Close()

	parsed, err := ParseCSV(f)
	if err != nil {
		return nil, err
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := l.newStore(tx)
	items := make([]database.MenuItem, 0, len(parsed))
	for _, p := range parsed {
		item, err := store.CreateMenuItem(ctx, database.CreateMenuItemParams{
			Name:     p.Name,
			Category: p.Category,
			Price:    database.DecimalToNumeric(p.Price),
			Gst:      database.DecimalToNumeric(p.Gst),
			Calories: p.Calories,
			ImageUrl: p.ImageURL,
			ItemType: p.ItemType,
		})
		if err != nil {
			return nil, fmt.Errorf("insert menu item %q: %w", p.Name, err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return items, nil
}

// FromRow converts a stored menu row into a catalog Item.
func FromRow(m database.MenuItem) Item {
	return Item{
		ID:       m.ID,
		Name:     m.Name,
		Category: m.Category,
		Price:    database.NumericToDecimal(m.Price),
		Gst:      database.NumericToDecimal(m.Gst),
		Calories: m.Calories,
		ImageURL: m.ImageUrl,
		ItemType: m.ItemType,
	}
}

// Snapshot indexes stored menu rows by id for bill computation.
func Snapshot(rows []database.MenuItem) map[int64]Item {
	items := make(map[int64]Item, len(rows))
	for _, row := range rows {
		items[row.ID] = FromRow(row)
	}
	return items
}

// Filter applies the menu browser's category, dietary-type and substring
// filters. Empty (or "All") selectors match everything.
func Filter(items []Item, category, itemType, query string) []Item {
	query = strings.ToLower(query)
	var out []Item
	for _, item := range items {
		if category != "" && category != "All" && item.Category != category {
			continue
		}
		if itemType != "" && itemType != "All" && item.ItemType != itemType {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct categories of the catalog in first-seen
// order, for the browser's category selector.
func Categories(items []Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}
