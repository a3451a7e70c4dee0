package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

type CatalogService struct {
	catalogRepo repo.CatalogRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewCatalogService(catalogRepo repo.CatalogRepository, broker queue.Broker, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		broker:      broker,
		logger:      logger,
	}
}

// Replace swaps the account's catalog for the pushed feed.
func (s *CatalogService) Replace(ctx context.Context, accountID string, items []domain.MenuItem, userID string) ([]domain.MenuItem, error) {
	for i := range items {
		if items[i].Status == "" {
			items[i].Status = domain.ItemStatusAvailable
		}
	}

	if err := s.catalogRepo.ReplaceAll(ctx, accountID, items); err != nil {
		return nil, fmt.Errorf("failed to replace catalog: %w", err)
	}

	s.logger.Infow("catalog replaced", "account_id", accountID, "items", len(items))

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventCatalogReplaced,
		AccountID:     accountID,
		AggregateKind: "catalog",
		AggregateID:   accountID,
		Summary:       fmt.Sprintf("%d items", len(items)),
		UserID:        userID,
	})

	return s.catalogRepo.ListByAccount(ctx, accountID)
}

func (s *CatalogService) List(ctx context.Context, accountID string) ([]domain.MenuItem, error) {
	return s.catalogRepo.ListByAccount(ctx, accountID)
}
