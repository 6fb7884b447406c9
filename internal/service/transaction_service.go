package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/notify"
	"github.com/carson-networks/budget-agent/internal/operator"
	"github.com/carson-networks/budget-agent/internal/operator/actions"
	"github.com/carson-networks/budget-agent/internal/storage"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

const defaultRecentCount = 10

// ErrNotFound is returned when a transaction does not exist or belongs to another user.
var ErrNotFound = table.ErrNotFound

// TransactionService handles transaction business logic. Reads go straight to
// the tables; writes are serialized through the operator.
type TransactionService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
	notifier notify.Notifier
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op *operator.OperatorDelegator, notifier notify.Notifier) *TransactionService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &TransactionService{
		storage:  store,
		operator: op,
		notifier: notifier,
		now:      time.Now,
	}
}

// LogTransaction records an expense. A categoryHint outside the required set is
// replaced by classifying the description. It reports success instead of an error.
func (s *TransactionService) LogTransaction(ctx context.Context, amount decimal.Decimal, categoryHint, description string, date time.Time, userID string) bool {
	action := &actions.LogTransaction{
		UserID:       userID,
		Amount:       amount,
		CategoryName: category.Resolve(categoryHint, description),
		Description:  description,
		Date:         date,
		Kind:         category.KindExpense,
	}

	if err := s.operator.Process(ctx, action); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userId":   userID,
			"category": action.CategoryName,
		}).Error("TransactionService.LogTransaction.processError")
		return false
	}

	s.publish(ctx, userID, action.Transaction.ID, notify.ActionCreated)
	return true
}

// AddTransaction records a transaction of either kind. The category is kept
// when it is required or already stored, otherwise the description is classified.
func (s *TransactionService) AddTransaction(ctx context.Context, create NewTransaction) (*Transaction, error) {
	name, err := s.resolveCategory(ctx, create.CategoryName, create.Description)
	if err != nil {
		return nil, err
	}

	date := create.Date
	if date.IsZero() {
		date = s.now()
	}

	action := &actions.LogTransaction{
		UserID:       create.UserID,
		Amount:       create.Amount,
		CategoryName: name,
		Description:  create.Description,
		Date:         date,
		Kind:         create.Kind,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.publish(ctx, create.UserID, action.Transaction.ID, notify.ActionCreated)
	tx := tableTransactionToTransaction(action.Transaction)
	return &tx, nil
}

func (s *TransactionService) resolveCategory(ctx context.Context, name, description string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == category.Uncategorized {
		return category.Classify(description), nil
	}
	if category.IsRequired(name) {
		return name, nil
	}

	_, err := s.storage.Categories.FindByName(ctx, name)
	if err == nil {
		return name, nil
	}
	if errors.Is(err, table.ErrNotFound) {
		return category.Classify(description), nil
	}
	return "", err
}

// GetTransactions returns every transaction of the user, newest first.
func (s *TransactionService) GetTransactions(ctx context.Context, userID string) ([]Transaction, error) {
	return s.list(ctx, &table.TransactionFilter{UserID: userID})
}

// GetRecentTransactions returns the user's count most recent transactions,
// date descending. A non-positive count uses the default of 10.
func (s *TransactionService) GetRecentTransactions(ctx context.Context, userID string, count int) ([]Transaction, error) {
	if count <= 0 {
		count = defaultRecentCount
	}
	return s.list(ctx, &table.TransactionFilter{UserID: userID, Limit: count})
}

func (s *TransactionService) list(ctx context.Context, filter *table.TransactionFilter) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = tableTransactionToTransaction(row)
	}
	return convertedTransactions, nil
}

// GetTransaction returns one of the user's transactions.
func (s *TransactionService) GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		return nil, ErrNotFound
	}
	tx := tableTransactionToTransaction(row)
	return &tx, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.operator.Process(ctx, &actions.DeleteTransaction{ID: id, UserID: userID}); err != nil {
		return err
	}
	s.publish(ctx, userID, id, notify.ActionDeleted)
	return nil
}

// GetMonthlySummary totals the user's expenses per category for one month,
// largest total first. Nil month or year means the current one; an out of
// range month or year yields an empty summary.
func (s *TransactionService) GetMonthlySummary(ctx context.Context, userID string, month, year *int) ([]MonthlySummaryItem, error) {
	now := s.now().UTC()
	m, y := int(now.Month()), now.Year()
	if month != nil {
		m = *month
	}
	if year != nil {
		y = *year
	}
	if m < 1 || m > 12 || y < 1 || y > 9999 {
		return []MonthlySummaryItem{}, nil
	}

	from := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	kind := category.KindExpense
	totals, err := s.storage.Transactions.SumByCategory(ctx, &table.TransactionFilter{
		UserID: userID,
		Kind:   &kind,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, err
	}

	summary := make([]MonthlySummaryItem, len(totals))
	for i, total := range totals {
		summary[i] = MonthlySummaryItem{Category: total.CategoryName, Total: total.Total}
	}
	sort.SliceStable(summary, func(i, j int) bool {
		if c := summary[i].Total.Cmp(summary[j].Total); c != 0 {
			return c > 0
		}
		return summary[i].Category < summary[j].Category
	})
	return summary, nil
}

// GetCategories returns every stored category.
func (s *TransactionService) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]Category, len(rows))
	for i, row := range rows {
		result[i] = Category{ID: row.ID, Name: row.Name, Kind: row.Kind}
	}
	return result, nil
}

// SeedCategories inserts the seeded categories into an empty store and
// returns how many were inserted.
func (s *TransactionService) SeedCategories(ctx context.Context) (int, error) {
	action := &actions.SeedCategories{}
	if err := s.operator.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.Inserted, nil
}

func (s *TransactionService) publish(ctx context.Context, userID string, id uuid.UUID, action notify.Action) {
	err := s.notifier.TransactionChanged(context.WithoutCancel(ctx), notify.NewEvent(userID, id, action))
	if err != nil {
		logrus.WithError(err).WithField("transactionId", id.String()).Warn("TransactionService.publish.error")
	}
}
