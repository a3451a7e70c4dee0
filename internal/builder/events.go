package builder

import "github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"

// Event is one builder mutation. Events carry everything the reducer needs;
// ids that resolve to nothing make the event a no-op.
type Event interface {
	// EventName is the short operation name used in change events and audit
	// summaries.
	EventName() string
}

type AddItem struct {
	Item domain.MenuItem
	// TargetGroupID overrides the category routing when set.
	TargetGroupID string
}

type RemoveItem struct {
	GroupID   string
	ItemRefID string
}

type DuplicateItem struct {
	GroupID   string
	ItemRefID string
}

type MoveItem struct {
	FromGroupID string
	ToGroupID   string
	ItemRefID   string
}

type ReorderItems struct {
	GroupID   string
	FromIndex int
	ToIndex   int
}

type UpdateItemPrice struct {
	GroupID    string
	ItemRefID  string
	PriceCents int64
}

type UpdateItemQuantity struct {
	GroupID   string
	ItemRefID string
	Quantity  int64
}

type SetItemAvailability struct {
	GroupID   string
	ItemRefID string
	Available bool
}

type AddGroup struct {
	Name      string
	Icon      string
	StartTime string
	EndTime   string
}

type RemoveGroup struct {
	GroupID string
}

type RenameGroup struct {
	GroupID string
	Name    string
}

type ReorderGroups struct {
	FromIndex int
	ToIndex   int
}

type SetPricingStrategy struct {
	Strategy        domain.PricingStrategy
	FixedPriceCents int64
}

type SetDiscount struct {
	Discount *domain.Discount
}

func (AddItem) EventName() string             { return "item.add" }
func (RemoveItem) EventName() string          { return "item.remove" }
func (DuplicateItem) EventName() string       { return "item.duplicate" }
func (MoveItem) EventName() string            { return "item.move" }
func (ReorderItems) EventName() string        { return "item.reorder" }
func (UpdateItemPrice) EventName() string     { return "item.price" }
func (UpdateItemQuantity) EventName() string  { return "item.quantity" }
func (SetItemAvailability) EventName() string { return "item.availability" }
func (AddGroup) EventName() string            { return "group.add" }
func (RemoveGroup) EventName() string         { return "group.remove" }
func (RenameGroup) EventName() string         { return "group.rename" }
func (ReorderGroups) EventName() string       { return "group.reorder" }
func (SetPricingStrategy) EventName() string  { return "pricing.strategy" }
func (SetDiscount) EventName() string         { return "pricing.discount" }
