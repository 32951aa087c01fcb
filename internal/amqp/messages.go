package amqp

import (
	"encoding/json"
	"time"
)

// LedgerRefreshedMessage announces that an ingestion run finished and the
// materialized artifact was fully replaced. Consumers drop caches and
// reload; the message carries no transaction data.
type LedgerRefreshedMessage struct {
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewLedgerRefreshedMessage(transactions int) *LedgerRefreshedMessage {
	return &LedgerRefreshedMessage{
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerRefreshedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerRefreshedMessageFromJSON creates a message from JSON bytes
func LedgerRefreshedMessageFromJSON(data []byte) (*LedgerRefreshedMessage, error) {
	var msg LedgerRefreshedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
