package domain

import "time"

type PricingStrategy string

const (
	StrategyFixed      PricingStrategy = "fixed"
	StrategySumOfItems PricingStrategy = "sum_of_items"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ItemRef is a line item: a reference to a catalog item plus group-local
// overrides. Position is zero-based and contiguous within the owning group.
type ItemRef struct {
	ID                 string `bson:"id" json:"id"`
	MenuItemID         string `bson:"menu_item_id" json:"menu_item_id"`
	Quantity           int64  `bson:"quantity" json:"quantity"`
	PriceOverrideCents *int64 `bson:"price_override_cents,omitempty" json:"price_override_cents,omitempty"`
	TaxRateBpsOverride *int64 `bson:"tax_rate_bps_override,omitempty" json:"tax_rate_bps_override,omitempty"`
	Available          bool   `bson:"available" json:"available"`
	Position           int    `bson:"position" json:"position"`
}

// Group is a named ordered bucket of line items: a course in the menu builder,
// a time block in the offer builder.
type Group struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Icon      string    `bson:"icon,omitempty" json:"icon,omitempty"`
	StartTime string    `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime   string    `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Position  int       `bson:"position" json:"position"`
	Items     []ItemRef `bson:"items" json:"items"`
}

type Menu struct {
	ID              string          `bson:"_id" json:"id"`
	AccountID       string          `bson:"account_id" json:"account_id"`
	Name            string          `bson:"name" json:"name"`
	Status          string          `bson:"status" json:"status"`
	Strategy        PricingStrategy `bson:"strategy" json:"strategy"`
	FixedPriceCents int64           `bson:"fixed_price_cents" json:"fixed_price_cents"`
	Courses         []Group         `bson:"courses" json:"courses"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}
