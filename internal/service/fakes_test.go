package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// fakeBroker records published messages so tests can assert on the change
// events a service emits.
type fakeBroker struct {
	published []publishedMessage
	err       error
}

type publishedMessage struct {
	queue string
	body  []byte
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, publishedMessage{queue: queueName, body: message})
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error { return nil }

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) lastEvent() (domain.BuilderChangeEvent, bool) {
	if len(b.published) == 0 {
		return domain.BuilderChangeEvent{}, false
	}
	var event domain.BuilderChangeEvent
	if err := json.Unmarshal(b.published[len(b.published)-1].body, &event); err != nil {
		return domain.BuilderChangeEvent{}, false
	}
	return event, true
}

// The in-memory repos mirror the Mongo ones: ids assigned on create,
// account-scoped lookups, repo.ErrNotFound on misses. Documents are stored
// and returned as deep copies so a caller mutating a returned aggregate
// cannot change the store behind the repo's back.

type memMenuRepo struct {
	menus map[string]*domain.Menu
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{menus: make(map[string]*domain.Menu)}
}

func memKey(accountID, id string) string {
	return accountID + "/" + id
}

func deepCopy[T any](in *T) *T {
	raw, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	return out
}

func (r *memMenuRepo) Create(_ context.Context, menu *domain.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.NewString()
	}
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = time.Now()
	r.menus[memKey(menu.AccountID, menu.ID)] = deepCopy(menu)
	return nil
}

func (r *memMenuRepo) GetByID(_ context.Context, accountID, id string) (*domain.Menu, error) {
	menu, ok := r.menus[memKey(accountID, id)]
	if !ok {
		return nil, fmt.Errorf("menu %s: %w", id, repo.ErrNotFound)
	}
	return deepCopy(menu), nil
}

func (r *memMenuRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Menu, error) {
	var menus []domain.Menu
	for _, m := range r.menus {
		if m.AccountID == accountID {
			menus = append(menus, *deepCopy(m))
		}
	}
	return menus, nil
}

func (r *memMenuRepo) Update(_ context.Context, menu *domain.Menu) error {
	key := memKey(menu.AccountID, menu.ID)
	if _, ok := r.menus[key]; !ok {
		return fmt.Errorf("menu %s: %w", menu.ID, repo.ErrNotFound)
	}
	menu.UpdatedAt = time.Now()
	r.menus[key] = deepCopy(menu)
	return nil
}

func (r *memMenuRepo) Delete(_ context.Context, accountID, id string) error {
	key := memKey(accountID, id)
	if _, ok := r.menus[key]; !ok {
		return fmt.Errorf("menu %s: %w", id, repo.ErrNotFound)
	}
	delete(r.menus, key)
	return nil
}

type memOfferRepo struct {
	offers map[string]*domain.Offer
}

func newMemOfferRepo() *memOfferRepo {
	return &memOfferRepo{offers: make(map[string]*domain.Offer)}
}

func (r *memOfferRepo) Create(_ context.Context, offer *domain.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()
	r.offers[memKey(offer.AccountID, offer.ID)] = deepCopy(offer)
	return nil
}

func (r *memOfferRepo) GetByID(_ context.Context, accountID, id string) (*domain.Offer, error) {
	offer, ok := r.offers[memKey(accountID, id)]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", id, repo.ErrNotFound)
	}
	return deepCopy(offer), nil
}

func (r *memOfferRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Offer, error) {
	var offers []domain.Offer
	for _, o := range r.offers {
		if o.AccountID == accountID {
			offers = append(offers, *deepCopy(o))
		}
	}
	return offers, nil
}

func (r *memOfferRepo) Update(_ context.Context, offer *domain.Offer) error {
	key := memKey(offer.AccountID, offer.ID)
	if _, ok := r.offers[key]; !ok {
		return fmt.Errorf("offer %s: %w", offer.ID, repo.ErrNotFound)
	}
	offer.UpdatedAt = time.Now()
	r.offers[key] = deepCopy(offer)
	return nil
}

func (r *memOfferRepo) Delete(_ context.Context, accountID, id string) error {
	key := memKey(accountID, id)
	if _, ok := r.offers[key]; !ok {
		return fmt.Errorf("offer %s: %w", id, repo.ErrNotFound)
	}
	delete(r.offers, key)
	return nil
}

type memCatalogRepo struct {
	items map[string][]domain.MenuItem
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{items: make(map[string][]domain.MenuItem)}
}

func (r *memCatalogRepo) ReplaceAll(_ context.Context, accountID string, items []domain.MenuItem) error {
	stored := make([]domain.MenuItem, len(items))
	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.AccountID = accountID
		stored[i] = item
	}
	r.items[accountID] = stored
	return nil
}

func (r *memCatalogRepo) GetByID(_ context.Context, accountID, id string) (*domain.MenuItem, error) {
	for _, item := range r.items[accountID] {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("catalog item %s: %w", id, repo.ErrNotFound)
}

func (r *memCatalogRepo) ListByAccount(_ context.Context, accountID string) ([]domain.MenuItem, error) {
	return append([]domain.MenuItem(nil), r.items[accountID]...), nil
}

type memAuditRepo struct {
	records []domain.BuilderAudit
}

func (r *memAuditRepo) Create(_ context.Context, audit *domain.BuilderAudit) error {
	if audit.ID == "" {
		audit.ID = uuid.NewString()
	}
	r.records = append(r.records, *audit)
	return nil
}

func (r *memAuditRepo) GetByAggregateID(_ context.Context, aggregateID string, limit int) ([]domain.BuilderAudit, error) {
	var out []domain.BuilderAudit
	for _, rec := range r.records {
		if rec.AggregateID == aggregateID {
			out = append(out, rec)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
