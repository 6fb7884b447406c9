package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

// transactionDoc embeds the category name so reads need no lookup.
type transactionDoc struct {
	ID           string               `bson:"_id"`
	UserID       string               `bson:"userId"`
	CategoryID   string               `bson:"categoryId"`
	CategoryName string               `bson:"categoryName"`
	Amount       primitive.Decimal128 `bson:"amount"`
	Date         time.Time            `bson:"date"`
	Description  string               `bson:"description"`
	Kind         int32                `bson:"kind"`
	CreatedAt    time.Time            `bson:"createdAt"`
}

func (d transactionDoc) toTransaction() (*table.Transaction, error) {
	id, err := uuid.FromString(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q: %w", d.ID, err)
	}
	categoryID, err := uuid.FromString(d.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", d.CategoryID, err)
	}
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount for transaction %s: %w", d.ID, err)
	}
	return &table.Transaction{
		ID:           id,
		UserID:       d.UserID,
		CategoryID:   categoryID,
		CategoryName: d.CategoryName,
		Amount:       amount,
		Date:         table.DateOnly(d.Date),
		Description:  d.Description,
		Kind:         category.Kind(d.Kind),
		CreatedAt:    d.CreatedAt,
	}, nil
}

type categoryTotalDoc struct {
	CategoryName string               `bson:"_id"`
	Total        primitive.Decimal128 `bson:"total"`
}

var _ table.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	collection *mongo.Collection
}

func NewTransactionsTable(db *mongo.Database) *TransactionsTable {
	return &TransactionsTable{collection: db.Collection(TransactionsCollection)}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*table.Transaction, error) {
	var doc transactionDoc
	err := t.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, table.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return doc.toTransaction()
}

// Insert stores a new transaction and returns the persisted record.
func (t *TransactionsTable) Insert(ctx context.Context, create *table.TransactionCreate) (*table.Transaction, error) {
	amount, err := toDecimal128(create.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %s: %w", create.Amount, err)
	}
	doc := transactionDoc{
		ID:           uuid.Must(uuid.NewV4()).String(),
		UserID:       create.UserID,
		CategoryID:   create.Category.ID.String(),
		CategoryName: create.Category.Name,
		Amount:       amount,
		Date:         table.DateOnly(create.Date),
		Description:  create.Description,
		Kind:         int32(create.Kind),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := t.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return doc.toTransaction()
}

// List returns transactions matching the filter, newest first.
func (t *TransactionsTable) List(ctx context.Context, filter *table.TransactionFilter) ([]*table.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	if filter != nil && filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cursor, err := t.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	result := make([]*table.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := doc.toTransaction()
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, nil
}

// SumByCategory totals the matching transactions per category name.
func (t *TransactionsTable) SumByCategory(ctx context.Context, filter *table.TransactionFilter) ([]*table.CategoryTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$categoryName"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cursor, err := t.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	var docs []categoryTotalDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode totals: %w", err)
	}
	result := make([]*table.CategoryTotal, 0, len(docs))
	for _, doc := range docs {
		total, err := fromDecimal128(doc.Total)
		if err != nil {
			return nil, fmt.Errorf("invalid total for %s: %w", doc.CategoryName, err)
		}
		result = append(result, &table.CategoryTotal{CategoryName: doc.CategoryName, Total: total})
	}
	return result, nil
}

// Delete removes a transaction owned by userID.
func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	res, err := t.collection.DeleteOne(ctx, bson.M{"_id": id.String(), "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return table.ErrNotFound
	}
	return nil
}

func buildFilter(filter *table.TransactionFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Kind != nil {
		query["kind"] = int32(*filter.Kind)
	}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = table.DateOnly(*filter.From)
	}
	if filter.To != nil {
		dateRange["$lte"] = table.DateOnly(*filter.To)
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return query
}
