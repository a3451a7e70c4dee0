package main

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type ItemRefPayload struct {
	ID                 string `json:"id"`
	MenuItemID         string `json:"menu_item_id" validate:"required"`
	Quantity           int64  `json:"quantity" validate:"min=0"`
	PriceOverrideCents *int64 `json:"price_override_cents" validate:"omitempty,min=0"`
	TaxRateBpsOverride *int64 `json:"tax_rate_bps_override" validate:"omitempty,min=0,max=10000"`
	Available          bool   `json:"available"`
}

type GroupPayload struct {
	ID        string           `json:"id"`
	Name      string           `json:"name" validate:"required,max=120"`
	Icon      string           `json:"icon"`
	StartTime string           `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   string           `json:"end_time" validate:"omitempty,datetime=15:04"`
	Items     []ItemRefPayload `json:"items" validate:"dive"`
}

type DiscountPayload struct {
	Type  string `json:"type" validate:"required,oneof=flat percent"`
	Value int64  `json:"value" validate:"min=0"`
}

// toDomainGroups builds aggregate groups from a full-save payload. Missing
// ids get fresh ones, a zero quantity means one; positions are renumbered by
// the service.
func toDomainGroups(payloads []GroupPayload) []domain.Group {
	groups := make([]domain.Group, len(payloads))
	for i, gp := range payloads {
		g := domain.Group{
			ID:        gp.ID,
			Name:      gp.Name,
			Icon:      gp.Icon,
			StartTime: gp.StartTime,
			EndTime:   gp.EndTime,
			Items:     make([]domain.ItemRef, len(gp.Items)),
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		for j, ip := range gp.Items {
			ref := domain.ItemRef{
				ID:                 ip.ID,
				MenuItemID:         ip.MenuItemID,
				Quantity:           ip.Quantity,
				PriceOverrideCents: ip.PriceOverrideCents,
				TaxRateBpsOverride: ip.TaxRateBpsOverride,
				Available:          ip.Available,
			}
			if ref.ID == "" {
				ref.ID = uuid.NewString()
			}
			if ref.Quantity == 0 {
				ref.Quantity = 1
			}
			g.Items[j] = ref
		}
		groups[i] = g
	}
	return groups
}

func toDomainDiscount(p *DiscountPayload) *domain.Discount {
	if p == nil {
		return nil
	}
	return &domain.Discount{Type: domain.DiscountType(p.Type), Value: p.Value}
}

// userIDFrom reads the acting user forwarded by the dashboard gateway.
// Auth itself is owned by the external backend.
func userIDFrom(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "admin_123"
}
