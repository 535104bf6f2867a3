package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/annapurna-pos/api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitCalled   bool
	rollbackCalled bool
	commitErr      error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	m.commitCalled = true
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error {
	m.rollbackCalled = true
	return nil
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx *mockTx
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.tx, nil
}

// mockCatalogStore implements Store with configurable behavior.
type mockCatalogStore struct {
	countMenuItemsFn func(ctx context.Context) (int64, error)
	listMenuItemsFn  func(ctx context.Context) ([]database.MenuItem, error)
	createMenuItemFn func(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
}

func (m *mockCatalogStore) CountMenuItems(ctx context.Context) (int64, error) {
	return m.countMenuItemsFn(ctx)
}
func (m *mockCatalogStore) ListMenuItems(ctx context.Context) ([]database.MenuItem, error) {
	return m.listMenuItemsFn(ctx)
}
func (m *mockCatalogStore) CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error) {
	return m.createMenuItemFn(ctx, arg)
}

// --- Test helpers ---

func writeMenuFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "menu.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write menu file: %v", err)
	}
	return path
}

const menuFixture = `name,category,price,gst,calories,image_url,item_type
Paneer Tikka,Starters,180,5,280,,Veg
Naan,Breads,40,5,260,,Veg
`

func TestLoad_SkipsImportWhenMenuPopulated(t *testing.T) {
	stored := []database.MenuItem{{ID: 1, Name: "Paneer Tikka"}}
	store := &mockCatalogStore{
		countMenuItemsFn: func(ctx context.Context) (int64, error) { return 1, nil },
		listMenuItemsFn: func(ctx context.Context) ([]database.MenuItem, error) {
			return stored, nil
		},
		createMenuItemFn: func(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error) {
			t.Fatal("CreateMenuItem must not be called when the menu is populated")
			return database.MenuItem{}, nil
		},
	}

	// Nonexistent CSV path proves the file is never opened on this path.
	loader := NewLoader(&mockTxBeginner{tx: &mockTx{}}, store,
		func(db database.DBTX) Store { return store }, "/nonexistent/menu.csv")

	items, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Paneer Tikka" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestLoad_FirstRunImportsCSVInOneTx(t *testing.T) {
	var inserted []database.CreateMenuItemParams
	var nextID int64
	store := &mockCatalogStore{
		countMenuItemsFn: func(ctx context.Context) (int64, error) { return 0, nil },
		listMenuItemsFn: func(ctx context.Context) ([]database.MenuItem, error) {
			t.Fatal("ListMenuItems must not be called on first run")
			return nil, nil
		},
		createMenuItemFn: func(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error) {
			inserted = append(inserted, arg)
			nextID++
			return database.MenuItem{
				ID: nextID, Name: arg.Name, Category: arg.Category,
				Price: arg.Price, Gst: arg.Gst, Calories: arg.Calories,
				ImageUrl: arg.ImageUrl, ItemType: arg.ItemType,
			}, nil
		},
	}

	tx := &mockTx{}
	loader := NewLoader(&mockTxBeginner{tx: tx}, store,
		func(db database.DBTX) Store { return store }, writeMenuFile(t, menuFixture))

	items, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(inserted))
	}
	if inserted[0].Name != "Paneer Tikka" || inserted[1].Name != "Naan" {
		t.Errorf("rows inserted out of file order: %q, %q", inserted[0].Name, inserted[1].Name)
	}
	if !database.NumericToDecimal(inserted[0].Price).Equal(decimal.NewFromInt(180)) {
		t.Errorf("Price = %s, want 180", database.NumericToDecimal(inserted[0].Price).String())
	}
	if !tx.commitCalled {
		t.Error("expected transaction commit")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items back, got %d", len(items))
	}
}

func TestLoad_BadCSVAborts(t *testing.T) {
	store := &mockCatalogStore{
		countMenuItemsFn: func(ctx context.Context) (int64, error) { return 0, nil },
		createMenuItemFn: func(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error) {
			t.Fatal("CreateMenuItem must not be called for a malformed source")
			return database.MenuItem{}, nil
		},
	}

	tx := &mockTx{}
	badCSV := "name,category,gst,calories,image_url,item_type\nNaan,Breads,5,260,,Veg\n"
	loader := NewLoader(&mockTxBeginner{tx: tx}, store,
		func(db database.DBTX) Store { return store }, writeMenuFile(t, badCSV))

	_, err := loader.Load(context.Background())
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got: %v", err)
	}
	if tx.commitCalled {
		t.Error("no transaction should be committed for a malformed source")
	}
}

func TestLoad_InsertFailureRollsBack(t *testing.T) {
	insertErr := errors.New("insert failed")
	calls := 0
	store := &mockCatalogStore{
		countMenuItemsFn: func(ctx context.Context) (int64, error) { return 0, nil },
		createMenuItemFn: func(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error) {
			calls++
			if calls == 2 {
				return database.MenuItem{}, insertErr
			}
			return database.MenuItem{ID: int64(calls), Name: arg.Name}, nil
		},
	}

	tx := &mockTx{}
	loader := NewLoader(&mockTxBeginner{tx: tx}, store,
		func(db database.DBTX) Store { return store }, writeMenuFile(t, menuFixture))

	_, err := loader.Load(context.Background())
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got: %v", err)
	}
	if tx.commitCalled {
		t.Error("failed import must not commit")
	}
	if !tx.rollbackCalled {
		t.Error("failed import must roll back")
	}
}

func TestFilter(t *testing.T) {
	items := []Item{
		{ID: 1, Name: "Paneer Tikka", Category: "Starters", ItemType: "Veg"},
		{ID: 2, Name: "Chicken Tikka", Category: "Starters", ItemType: "Non-Veg"},
		{ID: 3, Name: "Naan", Category: "Breads", ItemType: "Veg"},
	}

	tests := []struct {
		name     string
		category string
		itemType string
		query    string
		wantIDs  []int64
	}{
		{"no filters", "", "", "", []int64{1, 2, 3}},
		{"all sentinel", "All", "All", "", []int64{1, 2, 3}},
		{"by category", "Starters", "", "", []int64{1, 2}},
		{"by type", "", "Veg", "", []int64{1, 3}},
		{"by query case-insensitive", "", "", "tIkKa", []int64{1, 2}},
		{"combined", "Starters", "Veg", "tikka", []int64{1}},
		{"no match", "Desserts", "", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(items, tc.category, tc.itemType, tc.query)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d items, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	items := []Item{
		{Category: "Starters"},
		{Category: "Breads"},
		{Category: "Starters"},
		{Category: "Beverages"},
	}
	got := Categories(items)
	want := []string{"Starters", "Breads", "Beverages"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	rows := []database.MenuItem{
		{ID: 1, Name: "Naan", Price: database.DecimalToNumeric(decimal.NewFromInt(40))},
		{ID: 2, Name: "Paneer Tikka", Price: database.DecimalToNumeric(decimal.NewFromInt(180))},
	}
	snap := Snapshot(rows)
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap[1].Name != "Naan" || !snap[1].Price.Equal(decimal.NewFromInt(40)) {
		t.Errorf("unexpected entry: %+v", snap[1])
	}
}
