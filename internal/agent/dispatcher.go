package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/service"
)

// Replies returned to the user. Model output is never echoed back.
const (
	MessageParseFailure      = "Sorry, I couldn't understand that request. Please rephrase it."
	MessageUnknownFunction   = "Sorry, I don't know how to perform the function '%s'."
	MessageLogSuccess        = "Transaction logged successfully."
	MessageLogFailure        = "Failed to log the transaction. Please try again."
	MessageNoTransactions    = "You have no transactions yet."
	MessageReadFailure       = "Failed to read your transactions. Please try again."
	defaultRecentTransaction = 10
)

// TransactionStore is the part of the transaction service the dispatcher calls.
//
//go:generate mockery --name TransactionStore --output mock_TransactionStore.go
type TransactionStore interface {
	LogTransaction(ctx context.Context, amount decimal.Decimal, categoryHint, description string, date time.Time, userID string) bool
	GetRecentTransactions(ctx context.Context, userID string, count int) ([]service.Transaction, error)
}

// Dispatcher executes intents against the store and renders the reply.
type Dispatcher struct {
	store       TransactionStore
	recentCount int
	now         func() time.Time
}

func NewDispatcher(store TransactionStore, recentCount int) *Dispatcher {
	if recentCount <= 0 {
		recentCount = defaultRecentTransaction
	}
	return &Dispatcher{
		store:       store,
		recentCount: recentCount,
		now:         time.Now,
	}
}

// Dispatch performs intent for userID and returns the user-facing reply.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, userID string) string {
	switch intent.Kind {
	case IntentLogTransaction:
		return d.logTransaction(ctx, intent.LogTransaction, userID)
	case IntentReadTransactions:
		return d.readTransactions(ctx, userID)
	case IntentUnknown:
		return fmt.Sprintf(MessageUnknownFunction, intent.Name)
	default:
		return MessageParseFailure
	}
}

func (d *Dispatcher) logTransaction(ctx context.Context, call *LogTransactionCall, userID string) string {
	if call == nil {
		call = &LogTransactionCall{}
	}

	amount := decimal.Zero
	if call.Amount != nil {
		amount = *call.Amount
	}

	date := d.today()
	if call.Date != nil {
		date = *call.Date
	}

	categoryHint := call.Category
	if categoryHint == "" {
		categoryHint = category.Uncategorized
	}

	if !d.store.LogTransaction(ctx, amount, categoryHint, call.Description, date, userID) {
		return MessageLogFailure
	}
	return MessageLogSuccess
}

func (d *Dispatcher) readTransactions(ctx context.Context, userID string) string {
	transactions, err := d.store.GetRecentTransactions(ctx, userID, d.recentCount)
	if err != nil {
		logrus.WithError(err).WithField("userId", userID).Error("Dispatcher.readTransactions.storeError")
		return MessageReadFailure
	}
	if len(transactions) == 0 {
		return MessageNoTransactions
	}

	lines := make([]string, len(transactions))
	for i, tx := range transactions {
		lines[i] = FormatTransaction(tx)
	}
	return strings.Join(lines, "\n")
}

// FormatTransaction renders one reply line: date, amount, category, description.
func FormatTransaction(tx service.Transaction) string {
	return fmt.Sprintf("%s, %s, %s, %s", tx.Date.Format(DateLayout), FormatAmount(tx.Amount), tx.CategoryName, tx.Description)
}

// FormatAmount renders at least two decimal places without rounding away precision.
func FormatAmount(amount decimal.Decimal) string {
	if amount.Exponent() < -2 {
		return amount.StringFixed(-amount.Exponent())
	}
	return amount.StringFixed(2)
}

func (d *Dispatcher) today() time.Time {
	y, m, day := d.now().UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
