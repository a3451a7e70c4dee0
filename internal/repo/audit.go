package repo

import (
	"context"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type BuilderAuditRepository interface {
	Create(ctx context.Context, audit *domain.BuilderAudit) error
	GetByAggregateID(ctx context.Context, aggregateID string, limit int) ([]domain.BuilderAudit, error)
}
