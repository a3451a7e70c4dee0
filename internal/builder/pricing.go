package builder

import "github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"

// Catalog is an immutable id lookup over the externally supplied item list.
// The builder only ever reads from it.
type Catalog struct {
	items map[string]domain.MenuItem
}

func NewCatalog(items []domain.MenuItem) Catalog {
	m := make(map[string]domain.MenuItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return Catalog{items: m}
}

func (c Catalog) Item(id string) (domain.MenuItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c Catalog) Len() int {
	return len(c.items)
}

// Totals is the offer price breakdown. All fields are minor currency units.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// GroupSubtotal sums the group's line totals: per-ref price override falling
// back to the catalog price, times quantity. Refs to unknown catalog ids
// contribute nothing.
func GroupSubtotal(s State, groupID string, cat Catalog) int64 {
	g := s.group(groupID)
	if g == nil {
		return 0
	}
	var sum int64
	for i := range g.Items {
		sum += lineTotal(g.Items[i], cat)
	}
	return sum
}

// TotalPrice is the aggregate total under the state's pricing strategy:
// the fixed price field when fixed, the sum of all group subtotals when
// sum_of_items.
func TotalPrice(s State, cat Catalog) int64 {
	if s.Strategy == domain.StrategyFixed {
		return s.FixedPriceCents
	}
	var sum int64
	for i := range s.Groups {
		sum += GroupSubtotal(s, s.Groups[i].ID, cat)
	}
	return sum
}

// OfferTotals breaks an offer total into subtotal, discount and tax. The
// discount comes off the subtotal before tax is added; tax is per line,
// taxRateBps/10000 of the undiscounted line total. The total never goes
// negative.
func OfferTotals(s State, cat Catalog) Totals {
	t := Totals{SubtotalCents: TotalPrice(s, cat)}

	if s.Discount != nil {
		switch s.Discount.Type {
		case domain.DiscountFlat:
			t.DiscountCents = s.Discount.Value
		case domain.DiscountPercent:
			t.DiscountCents = t.SubtotalCents * s.Discount.Value / 10000
		}
		if t.DiscountCents > t.SubtotalCents {
			t.DiscountCents = t.SubtotalCents
		}
	}

	for gi := range s.Groups {
		g := &s.Groups[gi]
		for i := range g.Items {
			t.TaxCents += lineTotal(g.Items[i], cat) * taxRateBps(g.Items[i], cat) / 10000
		}
	}

	t.TotalCents = t.SubtotalCents - t.DiscountCents + t.TaxCents
	if t.TotalCents < 0 {
		t.TotalCents = 0
	}
	return t
}

func lineTotal(ref domain.ItemRef, cat Catalog) int64 {
	return unitPrice(ref, cat) * ref.Quantity
}

func unitPrice(ref domain.ItemRef, cat Catalog) int64 {
	if ref.PriceOverrideCents != nil {
		return *ref.PriceOverrideCents
	}
	if it, ok := cat.Item(ref.MenuItemID); ok {
		return it.PriceCents
	}
	return 0
}

func taxRateBps(ref domain.ItemRef, cat Catalog) int64 {
	if ref.TaxRateBpsOverride != nil {
		return *ref.TaxRateBpsOverride
	}
	if it, ok := cat.Item(ref.MenuItemID); ok {
		return it.TaxRateBps
	}
	return 0
}
