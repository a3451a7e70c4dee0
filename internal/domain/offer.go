package domain

import "time"

type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

// Discount is applied to an offer subtotal before tax. Value is cents for
// flat discounts and basis points for percent discounts.
type Discount struct {
	Type  DiscountType `bson:"type" json:"type"`
	Value int64        `bson:"value" json:"value"`
}

type Offer struct {
	ID              string          `bson:"_id" json:"id"`
	AccountID       string          `bson:"account_id" json:"account_id"`
	Title           string          `bson:"title" json:"title"`
	Status          string          `bson:"status" json:"status"`
	Strategy        PricingStrategy `bson:"strategy" json:"strategy"`
	FixedPriceCents int64           `bson:"fixed_price_cents" json:"fixed_price_cents"`
	Discount        *Discount       `bson:"discount,omitempty" json:"discount,omitempty"`
	Blocks          []Group         `bson:"blocks" json:"blocks"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}
