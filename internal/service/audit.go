package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

type AuditService struct {
	auditRepo repo.BuilderAuditRepository
	logger    *zap.SugaredLogger
}

func NewAuditService(auditRepo repo.BuilderAuditRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ProcessChangeEvent turns a consumed change event into a trail record.
func (s *AuditService) ProcessChangeEvent(ctx context.Context, event domain.BuilderChangeEvent) error {
	audit := &domain.BuilderAudit{
		AccountID:     event.AccountID,
		AggregateKind: event.AggregateKind,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Summary:       event.Summary,
		UserID:        event.UserID,
		Timestamp:     event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "aggregate_id", event.AggregateID, "error", err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("audit record created", "aggregate_id", event.AggregateID, "event_type", event.EventType)

	return nil
}

func (s *AuditService) GetTrail(ctx context.Context, aggregateID string, limit int) ([]domain.BuilderAudit, error) {
	audits, err := s.auditRepo.GetByAggregateID(ctx, aggregateID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %w", err)
	}

	return audits, nil
}
