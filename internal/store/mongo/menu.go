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

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		collection: db.Collection("menus"),
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if menu.ID == "" {
		menu.ID = uuid.NewString()
	}
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, menu)
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}

	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "account_id": accountID}).Decode(&menu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu %s: %w", id, repo.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return &menu, nil
}

func (r *MenuRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer cursor.Close(ctx)

	var menus []domain.Menu
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, fmt.Errorf("failed to decode menus: %w", err)
	}

	return menus, nil
}

func (r *MenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	menu.UpdatedAt = time.Now()

	filter := bson.M{"_id": menu.ID, "account_id": menu.AccountID}
	result, err := r.collection.ReplaceOne(ctx, filter, menu)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("menu %s: %w", menu.ID, repo.ErrNotFound)
	}

	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, accountID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "account_id": accountID})
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu %s: %w", id, repo.ErrNotFound)
	}

	return nil
}
