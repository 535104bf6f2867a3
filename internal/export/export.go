// Package export renders a computed bill into downloadable byte streams.
// All three formats are derived from the same Bill snapshot and carry the
// same rounded amounts; none of them recompute anything.
package export

import (
	"errors"
	"fmt"

	"github.com/annapurna-pos/api/internal/billing"
)

// ErrUnknownFormat is returned by Render for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// dateLayout matches the bill header's "date & time" display.
const dateLayout = "2006-01-02 15:04:05"

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Render dispatches to the named format and returns the bytes plus the
// matching Content-Type.
func Render(bill *billing.Bill, format string) ([]byte, string, error) {
	switch format {
	case FormatJSON:
		b, err := JSON(bill)
		return b, "application/json", err
	case FormatCSV:
		b, err := CSV(bill)
		return b, "text/csv", err
	case FormatPDF:
		b, err := PDF(bill)
		return b, "application/pdf", err
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
