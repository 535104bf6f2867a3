package export

import (
	"encoding/json"

	"github.com/annapurna-pos/api/internal/billing"
)

// BillJSON is the wire form of an exported bill. Amounts are fixed
// 2-decimal strings so a parse round-trip reproduces them exactly.
type BillJSON struct {
	BillNumber   string     `json:"bill_number"`
	Date         string     `json:"date"`
	CustomerName string     `json:"customer_name"`
	OrderType    string     `json:"order_type"`
	PaymentType  string     `json:"payment_type"`
	Items        []ItemJSON `json:"items"`
	Subtotal     string     `json:"subtotal"`
	Gst          string     `json:"gst"`
	Discount     string     `json:"discount"`
	FinalTotal   string     `json:"final_total"`
}

// ItemJSON is one itemized line of an exported bill.
type ItemJSON struct {
	Name  string `json:"name"`
	Qty   int32  `json:"qty"`
	Price string `json:"price"`
	Total string `json:"total"`
}

// JSON renders the bill as indented JSON.
func JSON(bill *billing.Bill) ([]byte, error) {
	return json.MarshalIndent(Build(bill), "", "    ")
}

// Build assembles the wire form of a bill. Shared by the JSON exporter and
// the bill-generation response so the two can never disagree.
func Build(bill *billing.Bill) BillJSON {
	items := make([]ItemJSON, 0, len(bill.Lines))
	for _, line := range bill.Lines {
		items = append(items, ItemJSON{
			Name:  line.Name,
			Qty:   line.Quantity,
			Price: line.UnitPrice.StringFixed(2),
			Total: line.LineTotal.StringFixed(2),
		})
	}

	return BillJSON{
		BillNumber:   bill.BillNumber,
		Date:         bill.Date.Format(dateLayout),
		CustomerName: bill.CustomerName,
		OrderType:    bill.OrderType,
		PaymentType:  bill.PaymentType,
		Items:        items,
		Subtotal:     bill.Subtotal.StringFixed(2),
		Gst:          bill.TaxAmount.StringFixed(2),
		Discount:     bill.DiscountAmount.StringFixed(2),
		FinalTotal:   bill.GrandTotal.StringFixed(2),
	}
}
