package service

import (
	"github.com/carson-networks/budget-agent/internal/notify"
	"github.com/carson-networks/budget-agent/internal/operator"
	"github.com/carson-networks/budget-agent/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, notifier notify.Notifier) *Service {
	return &Service{
		Transaction: NewTransactionService(store, op, notifier),
	}
}
