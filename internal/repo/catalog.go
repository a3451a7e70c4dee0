package repo

import (
	"context"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

// CatalogRepository holds the externally fed catalog. The feed replaces an
// account's item list wholesale; nothing in this service edits single items.
type CatalogRepository interface {
	ReplaceAll(ctx context.Context, accountID string, items []domain.MenuItem) error
	GetByID(ctx context.Context, accountID, id string) (*domain.MenuItem, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.MenuItem, error)
}
