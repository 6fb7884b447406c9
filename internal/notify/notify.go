// Package notify publishes transaction change events.
package notify

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionDeleted Action = "deleted"
)

// Event is the transaction.changed message body.
type Event struct {
	UserID        string    `json:"userId"`
	TransactionID uuid.UUID `json:"transactionId"`
	Action        Action    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewEvent(userID string, transactionID uuid.UUID, action Action) Event {
	return Event{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now().UTC(),
	}
}

type Notifier interface {
	TransactionChanged(ctx context.Context, event Event) error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) TransactionChanged(context.Context, Event) error {
	return nil
}
