package export

import (
	"bytes"
	"fmt"

	"github.com/annapurna-pos/api/internal/billing"
	"github.com/jung-kurt/gofpdf"
)

// PDF renders the printable bill: header block, itemized table, totals.
// Carries exactly the numbers of the JSON/CSV exports.
func PDF(bill *billing.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Restaurant Bill", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Bill No: %s", bill.BillNumber),
		fmt.Sprintf("Date: %s", bill.Date.Format(dateLayout)),
		fmt.Sprintf("Customer: %s", bill.CustomerName),
		fmt.Sprintf("Order Type: %s", bill.OrderType),
		fmt.Sprintf("Payment Type: %s", bill.PaymentType),
	}
	for _, line := range header {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	const (
		colItem  = 90.0
		colQty   = 20.0
		colPrice = 35.0
		colTotal = 35.0
	)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colItem, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range bill.Lines {
		pdf.CellFormat(colItem, 6, line.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, line.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, line.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", bill.Subtotal.StringFixed(2)},
		{fmt.Sprintf("GST (%s%%)", bill.GstPercent.String()), bill.TaxAmount.StringFixed(2)},
		{"Discount", bill.DiscountAmount.StringFixed(2)},
		{"Final Total", bill.GrandTotal.StringFixed(2)},
	}
	for i, row := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(colItem+colQty+colPrice, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colTotal, 6, row.value, "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
