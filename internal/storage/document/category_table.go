package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carson-networks/budget-agent/internal/category"
	"github.com/carson-networks/budget-agent/internal/storage/table"
)

type categoryDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
	Kind int32  `bson:"kind"`
}

func (d categoryDoc) toCategory() (*table.Category, error) {
	id, err := uuid.FromString(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", d.ID, err)
	}
	return &table.Category{ID: id, Name: d.Name, Kind: category.Kind(d.Kind)}, nil
}

var _ table.ICategoryTable = (*CategoriesTable)(nil)

type CategoriesTable struct {
	collection *mongo.Collection
}

func NewCategoriesTable(db *mongo.Database) *CategoriesTable {
	return &CategoriesTable{collection: db.Collection(CategoriesCollection)}
}

// FindByName retrieves a category by exact name.
func (t *CategoriesTable) FindByName(ctx context.Context, name string) (*table.Category, error) {
	var doc categoryDoc
	err := t.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, table.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return doc.toCategory()
}

// Insert creates a category and returns the stored record. A duplicate name
// returns the existing document.
func (t *CategoriesTable) Insert(ctx context.Context, create *table.CategoryCreate) (*table.Category, error) {
	doc := categoryDoc{
		ID:   uuid.Must(uuid.NewV4()).String(),
		Name: create.Name,
		Kind: int32(create.Kind),
	}
	if _, err := t.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return t.FindByName(ctx, create.Name)
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return doc.toCategory()
}

// List returns every category ordered by name.
func (t *CategoriesTable) List(ctx context.Context) ([]*table.Category, error) {
	cursor, err := t.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	result := make([]*table.Category, 0, len(docs))
	for _, doc := range docs {
		c, err := doc.toCategory()
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

func (t *CategoriesTable) Count(ctx context.Context) (int64, error) {
	return t.collection.CountDocuments(ctx, bson.M{})
}
