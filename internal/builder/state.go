// Package builder is the shared state module behind the menu and offer
// builders. State is a plain serializable snapshot of an aggregate's groups
// and pricing fields; Reduce applies one builder event and returns a new
// state, leaving the input untouched. Rejected operations come back as a
// Notice, never an error.
package builder

import (
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type State struct {
	Groups              []domain.Group
	Strategy            domain.PricingStrategy
	FixedPriceCents     int64
	Discount            *domain.Discount
	LastTargetedGroupID string
}

// StateFromMenu snapshots a menu aggregate into builder state.
func StateFromMenu(m *domain.Menu) State {
	return State{
		Groups:          m.Courses,
		Strategy:        m.Strategy,
		FixedPriceCents: m.FixedPriceCents,
	}
}

// StateFromOffer snapshots an offer aggregate into builder state.
func StateFromOffer(o *domain.Offer) State {
	return State{
		Groups:          o.Blocks,
		Strategy:        o.Strategy,
		FixedPriceCents: o.FixedPriceCents,
		Discount:        o.Discount,
	}
}

// ApplyToMenu writes a reduced state back onto the aggregate.
func (s State) ApplyToMenu(m *domain.Menu) {
	m.Courses = s.Groups
	m.Strategy = s.Strategy
	m.FixedPriceCents = s.FixedPriceCents
}

// ApplyToOffer writes a reduced state back onto the aggregate.
func (s State) ApplyToOffer(o *domain.Offer) {
	o.Blocks = s.Groups
	o.Strategy = s.Strategy
	o.FixedPriceCents = s.FixedPriceCents
	o.Discount = s.Discount
}

func (s State) clone() State {
	out := s
	out.Groups = cloneGroups(s.Groups)
	if s.Discount != nil {
		d := *s.Discount
		out.Discount = &d
	}
	return out
}

func cloneGroups(groups []domain.Group) []domain.Group {
	out := make([]domain.Group, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Items = cloneItems(g.Items)
	}
	return out
}

func cloneItems(items []domain.ItemRef) []domain.ItemRef {
	out := make([]domain.ItemRef, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

func cloneItem(it domain.ItemRef) domain.ItemRef {
	if it.PriceOverrideCents != nil {
		v := *it.PriceOverrideCents
		it.PriceOverrideCents = &v
	}
	if it.TaxRateBpsOverride != nil {
		v := *it.TaxRateBpsOverride
		it.TaxRateBpsOverride = &v
	}
	return it
}

func (s *State) group(id string) *domain.Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// Renumber returns a copy of the groups with group and item positions
// rewritten as contiguous zero-based sequences in the given order. Full
// aggregate saves run through this so client payloads cannot break the
// position invariant.
func Renumber(groups []domain.Group) []domain.Group {
	out := cloneGroups(groups)
	for i := range out {
		out[i].Position = i
		if out[i].Items == nil {
			out[i].Items = []domain.ItemRef{}
		}
		for j := range out[i].Items {
			out[i].Items[j].Position = j
		}
	}
	return out
}

func groupContains(g *domain.Group, menuItemID string) bool {
	for i := range g.Items {
		if g.Items[i].MenuItemID == menuItemID {
			return true
		}
	}
	return false
}

func renumberItems(g *domain.Group) {
	for i := range g.Items {
		g.Items[i].Position = i
	}
}

func renumberGroups(s *State) {
	for i := range s.Groups {
		s.Groups[i].Position = i
	}
}
