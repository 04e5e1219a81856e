package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	ActionSync   = "sync"
	ActionDelete = "delete"
)

// TransactionSyncMessage tells the worker that a transaction changed.
// It carries only identifiers; the worker fetches the current row from
// the database, so stale messages are harmless.
type TransactionSyncMessage struct {
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewTransactionSyncMessage(userID, transactionID, action string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

func (m *TransactionSyncMessage) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("missing userId")
	}
	if m.TransactionID == "" {
		return fmt.Errorf("missing transactionId")
	}
	if m.Action != ActionSync && m.Action != ActionDelete {
		return fmt.Errorf("unknown action %q", m.Action)
	}
	return nil
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
