package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/annapurna-pos/api/internal/billing"
)

// CSV renders the bill as an itemized table followed by a blank line and
// the totals block:
//
//	Item,Qty,Price,Total
//	Naan,3,40.00,120.00
//
//	Subtotal,,,480.00
//	GST (5%),,,24.00
//	Discount,,,48.00
//	Final Total,,,456.00
func CSV(bill *billing.Bill) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Item", "Qty", "Price", "Total"}}
	for _, line := range bill.Lines {
		records = append(records, []string{
			line.Name,
			strconv.FormatInt(int64(line.Quantity), 10),
			line.UnitPrice.StringFixed(2),
			line.LineTotal.StringFixed(2),
		})
	}
	records = append(records,
		[]string{""},
		[]string{"Subtotal", "", "", bill.Subtotal.StringFixed(2)},
		[]string{fmt.Sprintf("GST (%s%%)", bill.GstPercent.String()), "", "", bill.TaxAmount.StringFixed(2)},
		[]string{"Discount", "", "", bill.DiscountAmount.StringFixed(2)},
		[]string{"Final Total", "", "", bill.GrandTotal.StringFixed(2)},
	)

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
