package repo

import (
	"context"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Offer, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Offer, error)
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, accountID, id string) error
}
