package repo

import (
	"context"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Menu, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Menu, error)
	Update(ctx context.Context, menu *domain.Menu) error
	Delete(ctx context.Context, accountID, id string) error
}
