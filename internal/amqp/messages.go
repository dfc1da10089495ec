package amqp

import (
	"encoding/json"
	"time"

	"budget/internal/core"
)

// BudgetAlertMessage notifies the alerts worker that an admission produced
// warnings. It carries the transaction id and the warning strings; the
// worker fetches fresh period state from the database when it needs more.
type BudgetAlertMessage struct {
	UserID        string    `json:"user_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	TransactionID string    `json:"transaction_id"`
	Warnings      []string  `json:"warnings"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewBudgetAlertMessage(userID string, p core.Period, transactionID string, warnings []string) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		UserID:        userID,
		Month:         p.Month,
		Year:          p.Year,
		TransactionID: transactionID,
		Warnings:      warnings,
		Timestamp:     time.Now(),
	}
}

func (m *BudgetAlertMessage) Period() core.Period {
	return core.Period{Month: m.Month, Year: m.Year}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
