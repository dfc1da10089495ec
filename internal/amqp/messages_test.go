package amqp

import (
	"testing"

	"budget/internal/core"
)

func TestBudgetAlertMessageRoundTrip(t *testing.T) {
	msg := NewBudgetAlertMessage("u1", core.Period{Month: 6, Year: 2025}, "tx1",
		[]string{"monthly budget exceeded by 1915.50"})

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := BudgetAlertMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.UserID != "u1" || got.TransactionID != "tx1" {
		t.Fatalf("got %+v", got)
	}
	if got.Period() != (core.Period{Month: 6, Year: 2025}) {
		t.Fatalf("period = %+v", got.Period())
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != "monthly budget exceeded by 1915.50" {
		t.Fatalf("warnings = %v", got.Warnings)
	}
}

func TestBudgetAlertMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := BudgetAlertMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
