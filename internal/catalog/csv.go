package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/annapurna-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// ErrFormat marks a malformed menu source. It is fatal at startup: a
// partial catalog is never usable, so the caller must abort.
var ErrFormat = errors.New("invalid menu format")

// Item is one purchasable menu entry, decoded from the CSV source or from
// a stored menu row. Immutable once loaded.
type Item struct {
	ID       int64
	Name     string
	Category string
	Price    decimal.Decimal
	Gst      decimal.Decimal
	Calories int32
	ImageURL string
	ItemType string
}

// requiredColumns is the canonical menu CSV schema.
var requiredColumns = []string{"name", "category", "price", "gst", "calories", "image_url", "item_type"}

var (
	percentMax = decimal.NewFromInt(100)
)

// ParseCSV reads the canonical menu CSV (header row required) and returns
// the items in file order. Any structural problem (missing columns,
// non-numeric price/gst/calories, out-of-range values, duplicate or empty
// names) fails the whole parse with an error wrapping ErrFormat.
func ParseCSV(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrFormat, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrFormat, name)
		}
	}

	var items []Item
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}

		item, err := parseRecord(record, col)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		if seen[item.Name] {
			return nil, fmt.Errorf("%w: line %d: duplicate item %q", ErrFormat, line, item.Name)
		}
		seen[item.Name] = true
		items = append(items, item)
	}

	return items, nil
}

func parseRecord(record []string, col map[string]int) (Item, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[col[name]])
	}

	name := field("name")
	if name == "" {
		return Item{}, fmt.Errorf("empty name")
	}

	price, err := decimal.NewFromString(field("price"))
	if err != nil {
		return Item{}, fmt.Errorf("invalid price %q", field("price"))
	}
	if price.IsNegative() {
		return Item{}, fmt.Errorf("negative price %q", field("price"))
	}

	gst, err := decimal.NewFromString(field("gst"))
	if err != nil {
		return Item{}, fmt.Errorf("invalid gst %q", field("gst"))
	}
	if gst.IsNegative() || gst.GreaterThan(percentMax) {
		return Item{}, fmt.Errorf("gst %q out of range [0,100]", field("gst"))
	}

	calories, err := strconv.ParseInt(field("calories"), 10, 32)
	if err != nil {
		return Item{}, fmt.Errorf("invalid calories %q", field("calories"))
	}
	if calories < 0 {
		return Item{}, fmt.Errorf("negative calories %q", field("calories"))
	}

	itemType := field("item_type")
	if !enum.ValidItemType(itemType) {
		return Item{}, fmt.Errorf("unknown item_type %q", itemType)
	}

	return Item{
		Name:     name,
		Category: field("category"),
		Price:    price,
		Gst:      gst,
		Calories: int32(calories),
		ImageURL: field("image_url"),
		ItemType: itemType,
	}, nil
}
