package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/builder"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

// OfferView is an offer plus its derived totals breakdown.
type OfferView struct {
	Offer          *domain.Offer    `json:"offer"`
	Totals         builder.Totals   `json:"totals"`
	BlockSubtotals map[string]int64 `json:"block_subtotals"`
}

type OfferService struct {
	offerRepo   repo.OfferRepository
	catalogRepo repo.CatalogRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewOfferService(
	offerRepo repo.OfferRepository,
	catalogRepo repo.CatalogRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		catalogRepo: catalogRepo,
		broker:      broker,
		logger:      logger,
	}
}

func (s *OfferService) Create(ctx context.Context, offer *domain.Offer, userID string) (*OfferView, error) {
	if offer.Status == "" {
		offer.Status = domain.StatusDraft
	}
	if offer.Strategy == "" {
		offer.Strategy = domain.StrategySumOfItems
	}
	offer.Blocks = builder.Renumber(offer.Blocks)
	for i := range offer.Blocks {
		if offer.Blocks[i].ID == "" {
			offer.Blocks[i].ID = uuid.NewString()
		}
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventOfferCreated,
		AccountID:     offer.AccountID,
		AggregateKind: domain.AggregateOffer,
		AggregateID:   offer.ID,
		Summary:       "offer created",
		UserID:        userID,
	})

	return s.view(ctx, offer)
}

func (s *OfferService) Get(ctx context.Context, accountID, id string) (*OfferView, error) {
	offer, err := s.offerRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, offer)
}

func (s *OfferService) List(ctx context.Context, accountID string) ([]domain.Offer, error) {
	return s.offerRepo.ListByAccount(ctx, accountID)
}

// Update is the explicit full-aggregate save, atomic like the menu one.
func (s *OfferService) Update(ctx context.Context, offer *domain.Offer, userID string) (*OfferView, error) {
	current, err := s.offerRepo.GetByID(ctx, offer.AccountID, offer.ID)
	if err != nil {
		return nil, err
	}
	offer.CreatedAt = current.CreatedAt
	offer.Blocks = builder.Renumber(offer.Blocks)

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventOfferUpdated,
		AccountID:     offer.AccountID,
		AggregateKind: domain.AggregateOffer,
		AggregateID:   offer.ID,
		Summary:       "offer saved",
		UserID:        userID,
	})

	return s.view(ctx, offer)
}

// Apply runs one builder event against the stored offer, same contract as
// the menu variant.
func (s *OfferService) Apply(ctx context.Context, accountID, id string, ev builder.Event, userID string) (*OfferView, builder.Notice, error) {
	offer, err := s.offerRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, builder.Notice{}, err
	}

	next, notice := builder.Reduce(builder.StateFromOffer(offer), ev)
	if !notice.IsZero() {
		view, err := s.view(ctx, offer)
		return view, notice, err
	}

	next.ApplyToOffer(offer)
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, builder.Notice{}, err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventOfferUpdated,
		AccountID:     accountID,
		AggregateKind: domain.AggregateOffer,
		AggregateID:   offer.ID,
		Summary:       ev.EventName(),
		UserID:        userID,
	})

	view, err := s.view(ctx, offer)
	return view, builder.Notice{}, err
}

// AddItem resolves the catalog item and applies an add-item event, same
// contract as the menu variant.
func (s *OfferService) AddItem(ctx context.Context, accountID, offerID, menuItemID, targetGroupID, userID string) (*OfferView, builder.Notice, error) {
	item, err := s.catalogRepo.GetByID(ctx, accountID, menuItemID)
	if err != nil {
		return nil, builder.Notice{}, err
	}

	return s.Apply(ctx, accountID, offerID, builder.AddItem{Item: *item, TargetGroupID: targetGroupID}, userID)
}

func (s *OfferService) Duplicate(ctx context.Context, accountID, id, userID string) (*OfferView, error) {
	offer, err := s.offerRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	dup := *offer
	dup.ID = uuid.NewString()
	dup.Title = offer.Title + " (copy)"
	dup.Status = domain.StatusDraft
	dup.Blocks = builder.Renumber(offer.Blocks)
	if offer.Discount != nil {
		d := *offer.Discount
		dup.Discount = &d
	}
	for i := range dup.Blocks {
		dup.Blocks[i].ID = uuid.NewString()
		for j := range dup.Blocks[i].Items {
			dup.Blocks[i].Items[j].ID = uuid.NewString()
		}
	}

	if err := s.offerRepo.Create(ctx, &dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate offer: %w", err)
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventOfferDuplicated,
		AccountID:     accountID,
		AggregateKind: domain.AggregateOffer,
		AggregateID:   dup.ID,
		Summary:       "duplicated from " + id,
		UserID:        userID,
	})

	return s.view(ctx, &dup)
}

func (s *OfferService) Delete(ctx context.Context, accountID, id, userID string) error {
	if err := s.offerRepo.Delete(ctx, accountID, id); err != nil {
		return err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventOfferDeleted,
		AccountID:     accountID,
		AggregateKind: domain.AggregateOffer,
		AggregateID:   id,
		Summary:       "offer deleted",
		UserID:        userID,
	})

	return nil
}

func (s *OfferService) view(ctx context.Context, offer *domain.Offer) (*OfferView, error) {
	items, err := s.catalogRepo.ListByAccount(ctx, offer.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	cat := builder.NewCatalog(items)
	state := builder.StateFromOffer(offer)

	subtotals := make(map[string]int64, len(offer.Blocks))
	for _, b := range offer.Blocks {
		subtotals[b.ID] = builder.GroupSubtotal(state, b.ID, cat)
	}

	return &OfferView{
		Offer:          offer,
		Totals:         builder.OfferTotals(state, cat),
		BlockSubtotals: subtotals,
	}, nil
}
