package builder

import (
	"github.com/google/uuid"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

// Notice is a non-fatal rejection. A zero Notice means the event was applied.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (n Notice) IsZero() bool {
	return n.Code == ""
}

const (
	NoticeDuplicateItem = "duplicate_item"
	NoticeNoGroup       = "no_group"
)

// Reduce applies one event to a state and returns the resulting state. The
// input state is never mutated; no-ops and rejections return the input state
// itself. A non-zero Notice reports a rejected operation; there is no error
// path, invalid ids simply leave the state unchanged.
func Reduce(s State, ev Event) (State, Notice) {
	switch e := ev.(type) {
	case AddItem:
		return reduceAddItem(s, e)
	case RemoveItem:
		return reduceRemoveItem(s, e)
	case DuplicateItem:
		return reduceDuplicateItem(s, e)
	case MoveItem:
		return reduceMoveItem(s, e)
	case ReorderItems:
		return reduceReorderItems(s, e)
	case UpdateItemPrice:
		return reduceUpdateItem(s, e.GroupID, e.ItemRefID, func(it *domain.ItemRef) {
			v := e.PriceCents
			it.PriceOverrideCents = &v
		})
	case UpdateItemQuantity:
		return reduceUpdateItem(s, e.GroupID, e.ItemRefID, func(it *domain.ItemRef) {
			it.Quantity = e.Quantity
		})
	case SetItemAvailability:
		return reduceUpdateItem(s, e.GroupID, e.ItemRefID, func(it *domain.ItemRef) {
			it.Available = e.Available
		})
	case AddGroup:
		return reduceAddGroup(s, e)
	case RemoveGroup:
		return reduceRemoveGroup(s, e)
	case RenameGroup:
		return reduceRenameGroup(s, e)
	case ReorderGroups:
		return reduceReorderGroups(s, e)
	case SetPricingStrategy:
		next := s.clone()
		next.Strategy = e.Strategy
		next.FixedPriceCents = e.FixedPriceCents
		return next, Notice{}
	case SetDiscount:
		next := s.clone()
		next.Discount = nil
		if e.Discount != nil {
			d := *e.Discount
			next.Discount = &d
		}
		return next, Notice{}
	default:
		return s, Notice{}
	}
}

func reduceAddItem(s State, e AddItem) (State, Notice) {
	destID := ""
	if e.TargetGroupID != "" && s.group(e.TargetGroupID) != nil {
		destID = e.TargetGroupID
	} else {
		destID = RouteCategory(s.Groups, e.Item.Category, s.LastTargetedGroupID)
	}
	if destID == "" {
		return s, Notice{Code: NoticeNoGroup, Message: "no group to add the item to"}
	}

	if groupContains(s.group(destID), e.Item.ID) {
		return s, Notice{Code: NoticeDuplicateItem, Message: e.Item.Name + " is already in this group"}
	}

	next := s.clone()
	dest := next.group(destID)
	dest.Items = append(dest.Items, domain.ItemRef{
		ID:         uuid.NewString(),
		MenuItemID: e.Item.ID,
		Quantity:   1,
		Available:  true,
		Position:   len(dest.Items),
	})
	next.LastTargetedGroupID = destID
	return next, Notice{}
}

func reduceRemoveItem(s State, e RemoveItem) (State, Notice) {
	g := s.group(e.GroupID)
	if g == nil || itemIndex(g, e.ItemRefID) < 0 {
		return s, Notice{}
	}

	next := s.clone()
	ng := next.group(e.GroupID)
	i := itemIndex(ng, e.ItemRefID)
	ng.Items = append(ng.Items[:i], ng.Items[i+1:]...)
	renumberItems(ng)
	return next, Notice{}
}

func reduceDuplicateItem(s State, e DuplicateItem) (State, Notice) {
	g := s.group(e.GroupID)
	if g == nil || itemIndex(g, e.ItemRefID) < 0 {
		return s, Notice{}
	}

	// Duplicating deliberately skips the duplicate-reference rejection:
	// the copy references the same catalog item on purpose.
	next := s.clone()
	ng := next.group(e.GroupID)
	cp := cloneItem(ng.Items[itemIndex(ng, e.ItemRefID)])
	cp.ID = uuid.NewString()
	cp.Position = len(ng.Items)
	ng.Items = append(ng.Items, cp)
	return next, Notice{}
}

func reduceMoveItem(s State, e MoveItem) (State, Notice) {
	if e.FromGroupID == e.ToGroupID {
		return s, Notice{}
	}

	from := s.group(e.FromGroupID)
	to := s.group(e.ToGroupID)
	if from == nil || to == nil {
		return s, Notice{}
	}
	i := itemIndex(from, e.ItemRefID)
	if i < 0 {
		return s, Notice{}
	}

	if groupContains(to, from.Items[i].MenuItemID) {
		return s, Notice{Code: NoticeDuplicateItem, Message: "item is already in the destination group"}
	}

	next := s.clone()
	nfrom := next.group(e.FromGroupID)
	nto := next.group(e.ToGroupID)
	moved := nfrom.Items[i]
	nfrom.Items = append(nfrom.Items[:i], nfrom.Items[i+1:]...)
	renumberItems(nfrom)
	moved.Position = len(nto.Items)
	nto.Items = append(nto.Items, moved)
	return next, Notice{}
}

func reduceReorderItems(s State, e ReorderItems) (State, Notice) {
	g := s.group(e.GroupID)
	if g == nil {
		return s, Notice{}
	}
	n := len(g.Items)
	if e.FromIndex < 0 || e.FromIndex >= n || e.ToIndex < 0 || e.ToIndex >= n || e.FromIndex == e.ToIndex {
		return s, Notice{}
	}

	next := s.clone()
	ng := next.group(e.GroupID)
	moved := ng.Items[e.FromIndex]
	ng.Items = append(ng.Items[:e.FromIndex], ng.Items[e.FromIndex+1:]...)
	rest := append([]domain.ItemRef{}, ng.Items[e.ToIndex:]...)
	ng.Items = append(append(ng.Items[:e.ToIndex], moved), rest...)
	renumberItems(ng)
	return next, Notice{}
}

func reduceUpdateItem(s State, groupID, itemRefID string, mutate func(*domain.ItemRef)) (State, Notice) {
	g := s.group(groupID)
	if g == nil || itemIndex(g, itemRefID) < 0 {
		return s, Notice{}
	}

	next := s.clone()
	ng := next.group(groupID)
	mutate(&ng.Items[itemIndex(ng, itemRefID)])
	return next, Notice{}
}

func reduceAddGroup(s State, e AddGroup) (State, Notice) {
	next := s.clone()
	next.Groups = append(next.Groups, domain.Group{
		ID:        uuid.NewString(),
		Name:      e.Name,
		Icon:      e.Icon,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Position:  len(next.Groups),
		Items:     []domain.ItemRef{},
	})
	return next, Notice{}
}

func reduceRemoveGroup(s State, e RemoveGroup) (State, Notice) {
	if s.group(e.GroupID) == nil {
		return s, Notice{}
	}

	next := s.clone()
	for i := range next.Groups {
		if next.Groups[i].ID == e.GroupID {
			next.Groups = append(next.Groups[:i], next.Groups[i+1:]...)
			break
		}
	}
	renumberGroups(&next)
	if next.LastTargetedGroupID == e.GroupID {
		next.LastTargetedGroupID = ""
	}
	return next, Notice{}
}

func reduceRenameGroup(s State, e RenameGroup) (State, Notice) {
	if s.group(e.GroupID) == nil {
		return s, Notice{}
	}

	next := s.clone()
	next.group(e.GroupID).Name = e.Name
	return next, Notice{}
}

func reduceReorderGroups(s State, e ReorderGroups) (State, Notice) {
	n := len(s.Groups)
	if e.FromIndex < 0 || e.FromIndex >= n || e.ToIndex < 0 || e.ToIndex >= n || e.FromIndex == e.ToIndex {
		return s, Notice{}
	}

	next := s.clone()
	moved := next.Groups[e.FromIndex]
	next.Groups = append(next.Groups[:e.FromIndex], next.Groups[e.FromIndex+1:]...)
	rest := append([]domain.Group{}, next.Groups[e.ToIndex:]...)
	next.Groups = append(append(next.Groups[:e.ToIndex], moved), rest...)
	renumberGroups(&next)
	return next, Notice{}
}

func itemIndex(g *domain.Group, itemRefID string) int {
	for i := range g.Items {
		if g.Items[i].ID == itemRefID {
			return i
		}
	}
	return -1
}
