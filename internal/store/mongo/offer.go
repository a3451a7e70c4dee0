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

type OfferRepository struct {
	collection *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{
		collection: db.Collection("offers"),
	}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, offer)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var offer domain.Offer
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "account_id": accountID}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("offer %s: %w", id, repo.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return &offer, nil
}

func (r *OfferRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []domain.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}

	return offers, nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	offer.UpdatedAt = time.Now()

	filter := bson.M{"_id": offer.ID, "account_id": offer.AccountID}
	result, err := r.collection.ReplaceOne(ctx, filter, offer)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("offer %s: %w", offer.ID, repo.ErrNotFound)
	}

	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, accountID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "account_id": accountID})
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("offer %s: %w", id, repo.ErrNotFound)
	}

	return nil
}
