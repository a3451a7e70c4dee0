package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The group events carry a Name payload field alongside the EventName
// operation label; this pins both the label values and that the two coexist.
func TestEventNames(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{AddItem{}, "item.add"},
		{RemoveItem{}, "item.remove"},
		{DuplicateItem{}, "item.duplicate"},
		{MoveItem{}, "item.move"},
		{ReorderItems{}, "item.reorder"},
		{UpdateItemPrice{}, "item.price"},
		{UpdateItemQuantity{}, "item.quantity"},
		{SetItemAvailability{}, "item.availability"},
		{AddGroup{Name: "Starters"}, "group.add"},
		{RemoveGroup{}, "group.remove"},
		{RenameGroup{Name: "Mains"}, "group.rename"},
		{ReorderGroups{}, "group.reorder"},
		{SetPricingStrategy{}, "pricing.strategy"},
		{SetDiscount{}, "pricing.discount"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.ev.EventName())
	}
}

func TestGroupEventsUsePayloadName(t *testing.T) {
	next, notice := Reduce(State{}, AddGroup{Name: "Desserts"})
	assert.True(t, notice.IsZero())
	assert.Equal(t, "Desserts", next.Groups[0].Name)

	next, notice = Reduce(next, RenameGroup{GroupID: next.Groups[0].ID, Name: "Sweets"})
	assert.True(t, notice.IsZero())
	assert.Equal(t, "Sweets", next.Groups[0].Name)
}
