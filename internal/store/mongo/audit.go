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
)

type BuilderAuditRepository struct {
	collection *mongo.Collection
}

func NewBuilderAuditRepository(db *mongo.Database) *BuilderAuditRepository {
	return &BuilderAuditRepository{
		collection: db.Collection("builder_audit"),
	}
}

func (r *BuilderAuditRepository) Create(ctx context.Context, audit *domain.BuilderAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID == "" {
		audit.ID = uuid.NewString()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create builder audit: %w", err)
	}

	return nil
}

func (r *BuilderAuditRepository) GetByAggregateID(ctx context.Context, aggregateID string, limit int) ([]domain.BuilderAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"aggregate_id": aggregateID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get builder audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.BuilderAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode builder audits: %w", err)
	}

	return audits, nil
}
