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

// MenuView is a menu plus its derived pricing, computed against the
// account's current catalog.
type MenuView struct {
	Menu            *domain.Menu     `json:"menu"`
	TotalCents      int64            `json:"total_cents"`
	CourseSubtotals map[string]int64 `json:"course_subtotals"`
}

type MenuService struct {
	menuRepo    repo.MenuRepository
	catalogRepo repo.CatalogRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
}

func NewMenuService(
	menuRepo repo.MenuRepository,
	catalogRepo repo.CatalogRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		menuRepo:    menuRepo,
		catalogRepo: catalogRepo,
		broker:      broker,
		logger:      logger,
	}
}

func (s *MenuService) Create(ctx context.Context, menu *domain.Menu, userID string) (*MenuView, error) {
	if menu.Status == "" {
		menu.Status = domain.StatusDraft
	}
	if menu.Strategy == "" {
		menu.Strategy = domain.StrategySumOfItems
	}
	menu.Courses = builder.Renumber(menu.Courses)
	for i := range menu.Courses {
		if menu.Courses[i].ID == "" {
			menu.Courses[i].ID = uuid.NewString()
		}
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventMenuCreated,
		AccountID:     menu.AccountID,
		AggregateKind: domain.AggregateMenu,
		AggregateID:   menu.ID,
		Summary:       "menu created",
		UserID:        userID,
	})

	return s.view(ctx, menu)
}

func (s *MenuService) Get(ctx context.Context, accountID, id string) (*MenuView, error) {
	menu, err := s.menuRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, menu)
}

func (s *MenuService) List(ctx context.Context, accountID string) ([]domain.Menu, error) {
	return s.menuRepo.ListByAccount(ctx, accountID)
}

// Update is the explicit full-aggregate save: the whole document is replaced
// or nothing changes.
func (s *MenuService) Update(ctx context.Context, menu *domain.Menu, userID string) (*MenuView, error) {
	current, err := s.menuRepo.GetByID(ctx, menu.AccountID, menu.ID)
	if err != nil {
		return nil, err
	}
	menu.CreatedAt = current.CreatedAt
	menu.Courses = builder.Renumber(menu.Courses)

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventMenuUpdated,
		AccountID:     menu.AccountID,
		AggregateKind: domain.AggregateMenu,
		AggregateID:   menu.ID,
		Summary:       "menu saved",
		UserID:        userID,
	})

	return s.view(ctx, menu)
}

// Apply runs one builder event against the stored aggregate. A rejected
// event comes back as a notice with nothing persisted; unknown ids inside
// the aggregate reduce to a no-op and the unchanged menu is returned.
func (s *MenuService) Apply(ctx context.Context, accountID, id string, ev builder.Event, userID string) (*MenuView, builder.Notice, error) {
	menu, err := s.menuRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, builder.Notice{}, err
	}

	next, notice := builder.Reduce(builder.StateFromMenu(menu), ev)
	if !notice.IsZero() {
		view, err := s.view(ctx, menu)
		return view, notice, err
	}

	next.ApplyToMenu(menu)
	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, builder.Notice{}, err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventMenuUpdated,
		AccountID:     accountID,
		AggregateKind: domain.AggregateMenu,
		AggregateID:   menu.ID,
		Summary:       ev.EventName(),
		UserID:        userID,
	})

	view, err := s.view(ctx, menu)
	return view, builder.Notice{}, err
}

// AddItem resolves the catalog item and applies an add-item event. The
// catalog lookup is account-scoped, so a foreign item id is a 404, not a
// silent zero-priced reference.
func (s *MenuService) AddItem(ctx context.Context, accountID, menuID, menuItemID, targetGroupID, userID string) (*MenuView, builder.Notice, error) {
	item, err := s.catalogRepo.GetByID(ctx, accountID, menuItemID)
	if err != nil {
		return nil, builder.Notice{}, err
	}

	return s.Apply(ctx, accountID, menuID, builder.AddItem{Item: *item, TargetGroupID: targetGroupID}, userID)
}

// Duplicate deep-copies a menu into a new draft with fresh identities.
func (s *MenuService) Duplicate(ctx context.Context, accountID, id, userID string) (*MenuView, error) {
	menu, err := s.menuRepo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	dup := *menu
	dup.ID = uuid.NewString()
	dup.Name = menu.Name + " (copy)"
	dup.Status = domain.StatusDraft
	dup.Courses = builder.Renumber(menu.Courses)
	for i := range dup.Courses {
		dup.Courses[i].ID = uuid.NewString()
		for j := range dup.Courses[i].Items {
			dup.Courses[i].Items[j].ID = uuid.NewString()
		}
	}

	if err := s.menuRepo.Create(ctx, &dup); err != nil {
		return nil, fmt.Errorf("failed to duplicate menu: %w", err)
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventMenuDuplicated,
		AccountID:     accountID,
		AggregateKind: domain.AggregateMenu,
		AggregateID:   dup.ID,
		Summary:       "duplicated from " + id,
		UserID:        userID,
	})

	return s.view(ctx, &dup)
}

func (s *MenuService) Delete(ctx context.Context, accountID, id, userID string) error {
	if err := s.menuRepo.Delete(ctx, accountID, id); err != nil {
		return err
	}

	publishChange(ctx, s.broker, s.logger, domain.BuilderChangeEvent{
		EventType:     domain.EventMenuDeleted,
		AccountID:     accountID,
		AggregateKind: domain.AggregateMenu,
		AggregateID:   id,
		Summary:       "menu deleted",
		UserID:        userID,
	})

	return nil
}

func (s *MenuService) view(ctx context.Context, menu *domain.Menu) (*MenuView, error) {
	items, err := s.catalogRepo.ListByAccount(ctx, menu.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	cat := builder.NewCatalog(items)
	state := builder.StateFromMenu(menu)

	subtotals := make(map[string]int64, len(menu.Courses))
	for _, c := range menu.Courses {
		subtotals[c.ID] = builder.GroupSubtotal(state, c.ID, cat)
	}

	return &MenuView{
		Menu:            menu,
		TotalCents:      builder.TotalPrice(state, cat),
		CourseSubtotals: subtotals,
	}, nil
}
