package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

type CatalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Collection("catalog_items"),
	}
}

// ReplaceAll swaps an account's catalog for the supplied feed. Delete plus
// bulk insert; the feed is the source of truth, not this service.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, accountID string, items []domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"account_id": accountID}); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].AccountID = accountID
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		items[i].UpdatedAt = now
		docs[i] = items[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert catalog items: %w", err)
	}

	return nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, accountID, id string) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item domain.MenuItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "account_id": accountID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("catalog item %s: %w", id, repo.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return &item, nil
}

func (r *CatalogRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog items: %w", err)
	}

	return items, nil
}
