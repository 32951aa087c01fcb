package amqp

import (
	"testing"
	"time"
)

func TestLedgerRefreshedMessageRoundTrip(t *testing.T) {
	msg := NewLedgerRefreshedMessage(42)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := LedgerRefreshedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Transactions != 42 {
		t.Errorf("Transactions = %d, want 42", got.Transactions)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("Timestamp too old: %v", got.Timestamp)
	}
}

func TestLedgerRefreshedMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerRefreshedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed message")
	}
}
