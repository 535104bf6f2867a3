package session

import (
	"testing"

	"github.com/annapurna-pos/api/internal/billing"
)

func TestSession_StartsEmpty(t *testing.T) {
	s := New()
	if len(s.Lines()) != 0 {
		t.Error("new session should have an empty cart")
	}
	if s.LastBill() != nil {
		t.Error("new session should have no last bill")
	}
}

func TestSnapshot_Detached(t *testing.T) {
	s := New()
	if err := s.SetQuantity(1, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	snap := s.Snapshot()
	if snap.Quantity(1) != 2 {
		t.Fatalf("snapshot missing line: %+v", snap.Lines())
	}

	// Mutating the snapshot must not touch the live cart, and vice versa.
	if err := snap.SetQuantity(1, 9); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if got := s.Lines(); len(got) != 1 || got[0].Quantity != 2 {
		t.Errorf("live cart changed by snapshot mutation: %+v", got)
	}
	if err := s.SetQuantity(2, 1); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if snap.Quantity(2) != 0 {
		t.Error("snapshot changed by live cart mutation")
	}
}

func TestComplete_StoresBillAndClearsCart(t *testing.T) {
	s := New()
	if err := s.SetQuantity(1, 2); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	bill := &billing.Bill{BillNumber: "BILL-20260829-001"}
	s.Complete(bill)

	if len(s.Lines()) != 0 {
		t.Error("cart should be empty after Complete")
	}
	if got := s.LastBill(); got == nil || got.BillNumber != "BILL-20260829-001" {
		t.Errorf("LastBill = %+v, want the completed bill", got)
	}
}

func TestClearCart_KeepsLastBill(t *testing.T) {
	s := New()
	s.Complete(&billing.Bill{BillNumber: "BILL-20260829-001"})
	if err := s.SetQuantity(1, 1); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	s.ClearCart()
	if len(s.Lines()) != 0 {
		t.Error("cart should be empty after ClearCart")
	}
	if s.LastBill() == nil {
		t.Error("ClearCart must not discard the last bill")
	}
}
