package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

func catalogItem(id, name, category string, priceCents int64) domain.MenuItem {
	return domain.MenuItem{
		ID:         id,
		Name:       name,
		Category:   category,
		PriceCents: priceCents,
		Currency:   "EUR",
		Status:     domain.ItemStatusAvailable,
	}
}

func testState() State {
	return State{
		Strategy: domain.StrategySumOfItems,
		Groups: []domain.Group{
			{ID: "g-starters", Name: "Starters", Position: 0, Items: []domain.ItemRef{}},
			{ID: "g-mains", Name: "Mains", Position: 1, Items: []domain.ItemRef{}},
			{ID: "g-desserts", Name: "Desserts", Position: 2, Items: []domain.ItemRef{}},
		},
	}
}

func requireContiguous(t *testing.T, s State) {
	t.Helper()
	for gi, g := range s.Groups {
		require.Equal(t, gi, g.Position, "group %s position", g.ID)
		seen := map[string]bool{}
		for i, it := range g.Items {
			require.Equal(t, i, it.Position, "group %s item %d position", g.ID, i)
			require.False(t, seen[it.ID], "duplicate ref id %s", it.ID)
			seen[it.ID] = true
		}
	}
}

func TestAddItemRoutesByCategory(t *testing.T) {
	s := testState()

	next, notice := Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef Bourguignon", domain.CategoryMain, 1200)})
	require.True(t, notice.IsZero())

	g := next.group("g-mains")
	require.Len(t, g.Items, 1)
	assert.Equal(t, "mi-1", g.Items[0].MenuItemID)
	assert.Equal(t, 0, g.Items[0].Position)
	assert.Equal(t, int64(1), g.Items[0].Quantity)
	assert.True(t, g.Items[0].Available)
	assert.Equal(t, "g-mains", next.LastTargetedGroupID)

	// input state untouched
	assert.Empty(t, s.group("g-mains").Items)
}

func TestAddItemExplicitTargetWins(t *testing.T) {
	s := testState()

	next, notice := Reduce(s, AddItem{
		Item:          catalogItem("mi-1", "Beef Bourguignon", domain.CategoryMain, 1200),
		TargetGroupID: "g-desserts",
	})
	require.True(t, notice.IsZero())
	assert.Len(t, next.group("g-desserts").Items, 1)
	assert.Empty(t, next.group("g-mains").Items)
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	s := testState()
	item := catalogItem("mi-1", "Beef Bourguignon", domain.CategoryMain, 1200)

	s, notice := Reduce(s, AddItem{Item: item})
	require.True(t, notice.IsZero())

	next, notice := Reduce(s, AddItem{Item: item})
	assert.Equal(t, NoticeDuplicateItem, notice.Code)
	assert.Len(t, next.group("g-mains").Items, 1, "second add must not grow the group")
	requireContiguous(t, next)
}

func TestAddItemNoGroups(t *testing.T) {
	s := State{Strategy: domain.StrategySumOfItems}

	next, notice := Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 1200)})
	assert.Equal(t, NoticeNoGroup, notice.Code)
	assert.Empty(t, next.Groups)
}

func TestRemoveItemRenumbers(t *testing.T) {
	s := testState()
	for _, id := range []string{"mi-1", "mi-2", "mi-3"} {
		var notice Notice
		s, notice = Reduce(s, AddItem{Item: catalogItem(id, id, domain.CategoryMain, 500), TargetGroupID: "g-mains"})
		require.True(t, notice.IsZero())
	}

	victim := s.group("g-mains").Items[1].ID
	next, notice := Reduce(s, RemoveItem{GroupID: "g-mains", ItemRefID: victim})
	require.True(t, notice.IsZero())

	g := next.group("g-mains")
	require.Len(t, g.Items, 2)
	assert.Equal(t, "mi-1", g.Items[0].MenuItemID)
	assert.Equal(t, "mi-3", g.Items[1].MenuItemID)
	requireContiguous(t, next)
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 500)})

	next, notice := Reduce(s, RemoveItem{GroupID: "g-mains", ItemRefID: "nope"})
	assert.True(t, notice.IsZero())
	assert.Equal(t, s, next)
}

func TestDuplicateItemSkipsDuplicateRule(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-a", "Item A", domain.CategoryMain, 500)})
	ref := s.group("g-mains").Items[0]

	next, notice := Reduce(s, DuplicateItem{GroupID: "g-mains", ItemRefID: ref.ID})
	require.True(t, notice.IsZero())

	g := next.group("g-mains")
	require.Len(t, g.Items, 2)
	assert.Equal(t, "mi-a", g.Items[0].MenuItemID)
	assert.Equal(t, "mi-a", g.Items[1].MenuItemID)
	assert.NotEqual(t, g.Items[0].ID, g.Items[1].ID, "copies keep distinct ref identity")
	assert.Equal(t, []int{0, 1}, []int{g.Items[0].Position, g.Items[1].Position})
}

func TestMoveItemBetweenGroups(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 500), TargetGroupID: "g-mains"})
	ref := s.group("g-mains").Items[0].ID

	next, notice := Reduce(s, MoveItem{FromGroupID: "g-mains", ToGroupID: "g-starters", ItemRefID: ref})
	require.True(t, notice.IsZero())
	assert.Empty(t, next.group("g-mains").Items)
	require.Len(t, next.group("g-starters").Items, 1)
	assert.Equal(t, 0, next.group("g-starters").Items[0].Position)
	requireContiguous(t, next)
}

func TestMoveItemSameGroupIsNoOp(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 500)})
	ref := s.group("g-mains").Items[0].ID

	next, notice := Reduce(s, MoveItem{FromGroupID: "g-mains", ToGroupID: "g-mains", ItemRefID: ref})
	assert.True(t, notice.IsZero())
	assert.Same(t, &s.Groups[0], &next.Groups[0], "no-op must return the state unchanged")
}

func TestMoveItemRejectsDuplicateInDestination(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 500), TargetGroupID: "g-mains"})
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-1", "Beef", domain.CategoryMain, 500), TargetGroupID: "g-starters"})
	ref := s.group("g-mains").Items[0].ID

	next, notice := Reduce(s, MoveItem{FromGroupID: "g-mains", ToGroupID: "g-starters", ItemRefID: ref})
	assert.Equal(t, NoticeDuplicateItem, notice.Code)
	assert.Len(t, next.group("g-mains").Items, 1, "source must stay untouched on rejection")
	assert.Len(t, next.group("g-starters").Items, 1)
}

func TestReorderItems(t *testing.T) {
	s := testState()
	for _, id := range []string{"mi-a", "mi-b", "mi-c"} {
		s, _ = Reduce(s, AddItem{Item: catalogItem(id, id, domain.CategoryMain, 500), TargetGroupID: "g-mains"})
	}

	// [A,B,C] with 0 -> 2 becomes [B,C,A]
	next, notice := Reduce(s, ReorderItems{GroupID: "g-mains", FromIndex: 0, ToIndex: 2})
	require.True(t, notice.IsZero())

	g := next.group("g-mains")
	ids := []string{g.Items[0].MenuItemID, g.Items[1].MenuItemID, g.Items[2].MenuItemID}
	assert.Equal(t, []string{"mi-b", "mi-c", "mi-a"}, ids)
	requireContiguous(t, next)
}

func TestReorderItemsOutOfRangeIsNoOp(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-a", "A", domain.CategoryMain, 500)})

	next, notice := Reduce(s, ReorderItems{GroupID: "g-mains", FromIndex: 0, ToIndex: 5})
	assert.True(t, notice.IsZero())
	assert.Equal(t, s, next)
}

func TestUpdateItemPriceOverridesLocally(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-a", "A", domain.CategoryMain, 500)})
	ref := s.group("g-mains").Items[0].ID

	next, notice := Reduce(s, UpdateItemPrice{GroupID: "g-mains", ItemRefID: ref, PriceCents: 750})
	require.True(t, notice.IsZero())
	require.NotNil(t, next.group("g-mains").Items[0].PriceOverrideCents)
	assert.Equal(t, int64(750), *next.group("g-mains").Items[0].PriceOverrideCents)
	assert.Nil(t, s.group("g-mains").Items[0].PriceOverrideCents, "input state untouched")
}

func TestGroupLifecycle(t *testing.T) {
	s := testState()

	s, notice := Reduce(s, AddGroup{Name: "Late Night", StartTime: "22:00", EndTime: "02:00"})
	require.True(t, notice.IsZero())
	require.Len(t, s.Groups, 4)
	assert.Equal(t, 3, s.Groups[3].Position)

	s, _ = Reduce(s, RenameGroup{GroupID: s.Groups[3].ID, Name: "Midnight"})
	assert.Equal(t, "Midnight", s.Groups[3].Name)

	s, _ = Reduce(s, ReorderGroups{FromIndex: 3, ToIndex: 0})
	assert.Equal(t, "Midnight", s.Groups[0].Name)
	requireContiguous(t, s)

	s, _ = Reduce(s, RemoveGroup{GroupID: s.Groups[0].ID})
	require.Len(t, s.Groups, 3)
	requireContiguous(t, s)
}

func TestRemoveGroupClearsLastTargeted(t *testing.T) {
	s := testState()
	s, _ = Reduce(s, AddItem{Item: catalogItem("mi-a", "A", domain.CategoryMain, 500)})
	require.Equal(t, "g-mains", s.LastTargetedGroupID)

	s, _ = Reduce(s, RemoveGroup{GroupID: "g-mains"})
	assert.Empty(t, s.LastTargetedGroupID)
}

// Positions stay contiguous and duplicate-free across an arbitrary mixed
// sequence of mutations.
func TestPositionsContiguousAfterMixedSequence(t *testing.T) {
	s := testState()
	items := []domain.MenuItem{
		catalogItem("mi-1", "Soup", domain.CategoryStarter, 400),
		catalogItem("mi-2", "Beef", domain.CategoryMain, 1200),
		catalogItem("mi-3", "Pasta", domain.CategoryMain, 900),
		catalogItem("mi-4", "Cake", domain.CategoryDessert, 600),
		catalogItem("mi-5", "Wine", domain.CategoryDrink, 700),
	}
	for _, it := range items {
		var notice Notice
		s, notice = Reduce(s, AddItem{Item: it})
		require.True(t, notice.IsZero())
		requireContiguous(t, s)
	}

	require.Len(t, s.group("g-mains").Items, 2)
	require.Len(t, s.group("g-desserts").Items, 2, "drink falls back to the last-targeted group")

	s, _ = Reduce(s, ReorderItems{GroupID: "g-desserts", FromIndex: 1, ToIndex: 0})
	requireContiguous(t, s)

	s, _ = Reduce(s, RemoveItem{GroupID: "g-mains", ItemRefID: s.group("g-mains").Items[1].ID})
	requireContiguous(t, s)

	s, _ = Reduce(s, MoveItem{FromGroupID: "g-desserts", ToGroupID: "g-starters", ItemRefID: s.group("g-desserts").Items[0].ID})
	requireContiguous(t, s)

	s, _ = Reduce(s, DuplicateItem{GroupID: "g-starters", ItemRefID: s.group("g-starters").Items[0].ID})
	requireContiguous(t, s)
}
