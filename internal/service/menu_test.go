package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/builder"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/repo"
)

const testAccount = "acc-1"

func newMenuFixture(t *testing.T) (*MenuService, *memMenuRepo, *memCatalogRepo, *fakeBroker) {
	t.Helper()

	menuRepo := newMemMenuRepo()
	catalogRepo := newMemCatalogRepo()
	broker := &fakeBroker{}

	return NewMenuService(menuRepo, catalogRepo, broker, testLogger()), menuRepo, catalogRepo, broker
}

func seedCatalog(t *testing.T, catalogRepo *memCatalogRepo, items ...domain.MenuItem) {
	t.Helper()
	require.NoError(t, catalogRepo.ReplaceAll(context.Background(), testAccount, items))
}

func TestMenuServiceCreateDefaults(t *testing.T) {
	svc, menuRepo, _, broker := newMenuFixture(t)

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Wedding Buffet",
		Courses: []domain.Group{
			{Name: "Starters"},
			{Name: "Mains"},
		},
	}, "user-1")
	require.NoError(t, err)

	menu := view.Menu
	assert.NotEmpty(t, menu.ID)
	assert.Equal(t, domain.StatusDraft, menu.Status)
	assert.Equal(t, domain.StrategySumOfItems, menu.Strategy)

	require.Len(t, menu.Courses, 2)
	for i, c := range menu.Courses {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, i, c.Position)
	}

	stored, err := menuRepo.GetByID(context.Background(), testAccount, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wedding Buffet", stored.Name)

	event, ok := broker.lastEvent()
	require.True(t, ok)
	assert.Equal(t, domain.EventMenuCreated, event.EventType)
	assert.Equal(t, domain.AggregateMenu, event.AggregateKind)
	assert.Equal(t, menu.ID, event.AggregateID)
	assert.Equal(t, "user-1", event.UserID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestMenuServiceAddItemPersistsAndPublishes(t *testing.T) {
	svc, menuRepo, catalogRepo, broker := newMenuFixture(t)
	seedCatalog(t, catalogRepo, domain.MenuItem{
		ID: "mi-soup", Name: "Pumpkin Soup", Category: domain.CategoryStarter, PriceCents: 650,
	})

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
		Courses:   []domain.Group{{Name: "Starters"}, {Name: "Mains"}},
	}, "user-1")
	require.NoError(t, err)
	menuID := view.Menu.ID

	view, notice, err := svc.AddItem(context.Background(), testAccount, menuID, "mi-soup", "", "user-1")
	require.NoError(t, err)
	assert.True(t, notice.IsZero())

	// routed to Starters by category
	starters := view.Menu.Courses[0]
	require.Len(t, starters.Items, 1)
	assert.Equal(t, "mi-soup", starters.Items[0].MenuItemID)
	assert.Equal(t, int64(650), view.CourseSubtotals[starters.ID])
	assert.Equal(t, int64(650), view.TotalCents)

	stored, err := menuRepo.GetByID(context.Background(), testAccount, menuID)
	require.NoError(t, err)
	require.Len(t, stored.Courses[0].Items, 1)

	event, ok := broker.lastEvent()
	require.True(t, ok)
	assert.Equal(t, domain.EventMenuUpdated, event.EventType)
	assert.Equal(t, "item.add", event.Summary)
}

func TestMenuServiceApplyNoticeDoesNotPersist(t *testing.T) {
	svc, menuRepo, catalogRepo, broker := newMenuFixture(t)
	seedCatalog(t, catalogRepo, domain.MenuItem{
		ID: "mi-soup", Name: "Pumpkin Soup", Category: domain.CategoryStarter, PriceCents: 650,
	})

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
		Courses:   []domain.Group{{Name: "Starters"}},
	}, "user-1")
	require.NoError(t, err)
	menuID := view.Menu.ID

	_, notice, err := svc.AddItem(context.Background(), testAccount, menuID, "mi-soup", "", "user-1")
	require.NoError(t, err)
	require.True(t, notice.IsZero())

	publishedBefore := len(broker.published)

	// second add of the same catalog item into the same course is rejected
	view, notice, err = svc.AddItem(context.Background(), testAccount, menuID, "mi-soup", "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, builder.NoticeDuplicateItem, notice.Code)

	// nothing persisted, nothing published, unchanged menu returned
	require.Len(t, view.Menu.Courses[0].Items, 1)
	stored, err := menuRepo.GetByID(context.Background(), testAccount, menuID)
	require.NoError(t, err)
	assert.Len(t, stored.Courses[0].Items, 1)
	assert.Len(t, broker.published, publishedBefore)
}

func TestMenuServiceAddItemUnknownCatalogItem(t *testing.T) {
	svc, _, _, _ := newMenuFixture(t)

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
		Courses:   []domain.Group{{Name: "Starters"}},
	}, "user-1")
	require.NoError(t, err)

	_, _, err = svc.AddItem(context.Background(), testAccount, view.Menu.ID, "mi-missing", "", "user-1")
	assert.True(t, errors.Is(err, repo.ErrNotFound))
}

func TestMenuServiceUpdatePreservesCreatedAt(t *testing.T) {
	svc, _, _, _ := newMenuFixture(t)

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
		Courses:   []domain.Group{{Name: "Starters"}},
	}, "user-1")
	require.NoError(t, err)
	created := view.Menu

	updated, err := svc.Update(context.Background(), &domain.Menu{
		ID:        created.ID,
		AccountID: testAccount,
		Name:      "Dinner",
		Status:    domain.StatusPublished,
		Strategy:  domain.StrategySumOfItems,
		Courses: []domain.Group{
			{ID: "g-a", Name: "Mains", Position: 7},
			{ID: "g-b", Name: "Desserts", Position: 3},
		},
	}, "user-1")
	require.NoError(t, err)

	// wall-clock comparison: the deep copy through JSON drops the monotonic
	// reading, so == would fail on otherwise identical times
	assert.True(t, created.CreatedAt.Equal(updated.Menu.CreatedAt))
	assert.Equal(t, "Dinner", updated.Menu.Name)
	for i, c := range updated.Menu.Courses {
		assert.Equal(t, i, c.Position)
	}
}

func TestMenuServiceDuplicate(t *testing.T) {
	svc, _, catalogRepo, broker := newMenuFixture(t)
	seedCatalog(t, catalogRepo, domain.MenuItem{
		ID: "mi-soup", Name: "Pumpkin Soup", Category: domain.CategoryStarter, PriceCents: 650,
	})

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
		Status:    domain.StatusPublished,
		Courses:   []domain.Group{{Name: "Starters"}},
	}, "user-1")
	require.NoError(t, err)

	_, notice, err := svc.AddItem(context.Background(), testAccount, view.Menu.ID, "mi-soup", "", "user-1")
	require.NoError(t, err)
	require.True(t, notice.IsZero())

	dup, err := svc.Duplicate(context.Background(), testAccount, view.Menu.ID, "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, view.Menu.ID, dup.Menu.ID)
	assert.Equal(t, "Lunch (copy)", dup.Menu.Name)
	assert.Equal(t, domain.StatusDraft, dup.Menu.Status)

	require.Len(t, dup.Menu.Courses, 1)
	assert.NotEqual(t, view.Menu.Courses[0].ID, dup.Menu.Courses[0].ID)
	require.Len(t, dup.Menu.Courses[0].Items, 1)
	assert.Equal(t, "mi-soup", dup.Menu.Courses[0].Items[0].MenuItemID)

	event, ok := broker.lastEvent()
	require.True(t, ok)
	assert.Equal(t, domain.EventMenuDuplicated, event.EventType)
	assert.Equal(t, dup.Menu.ID, event.AggregateID)
}

func TestMenuServiceDelete(t *testing.T) {
	svc, menuRepo, _, broker := newMenuFixture(t)

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
	}, "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), testAccount, view.Menu.ID, "user-1"))

	_, err = menuRepo.GetByID(context.Background(), testAccount, view.Menu.ID)
	assert.True(t, errors.Is(err, repo.ErrNotFound))

	event, ok := broker.lastEvent()
	require.True(t, ok)
	assert.Equal(t, domain.EventMenuDeleted, event.EventType)
}

func TestMenuServiceGetOtherAccountIsNotFound(t *testing.T) {
	svc, _, _, _ := newMenuFixture(t)

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID: testAccount,
		Name:      "Lunch",
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "acc-other", view.Menu.ID)
	assert.True(t, errors.Is(err, repo.ErrNotFound))
}

func TestMenuServiceFixedPriceTotal(t *testing.T) {
	svc, _, catalogRepo, _ := newMenuFixture(t)
	seedCatalog(t, catalogRepo, domain.MenuItem{
		ID: "mi-soup", Name: "Pumpkin Soup", Category: domain.CategoryStarter, PriceCents: 650,
	})

	view, err := svc.Create(context.Background(), &domain.Menu{
		AccountID:       testAccount,
		Name:            "Set Menu",
		Strategy:        domain.StrategyFixed,
		FixedPriceCents: 4500,
		Courses:         []domain.Group{{Name: "Starters"}},
	}, "user-1")
	require.NoError(t, err)

	view, notice, err := svc.AddItem(context.Background(), testAccount, view.Menu.ID, "mi-soup", "", "user-1")
	require.NoError(t, err)
	require.True(t, notice.IsZero())

	// fixed menus keep their price regardless of content; subtotals still
	// reflect the items
	assert.Equal(t, int64(4500), view.TotalCents)
	assert.Equal(t, int64(650), view.CourseSubtotals[view.Menu.Courses[0].ID])
}
