package domain

import "time"

// MenuItem is a catalog entity supplied by the external catalog feed.
// Builders only ever reference catalog items by id; they never mutate them.
type MenuItem struct {
	ID          string   `bson:"_id" json:"id"`
	AccountID   string   `bson:"account_id" json:"account_id"`
	Name        string   `bson:"name" json:"name"`
	Category    string   `bson:"category" json:"category"`
	PriceCents  int64    `bson:"price_cents" json:"price_cents"`
	Currency    string   `bson:"currency" json:"currency"`
	TaxRateBps  int64    `bson:"tax_rate_bps" json:"tax_rate_bps"`
	DietaryTags []string `bson:"dietary_tags" json:"dietary_tags"`
	Status      string   `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

const (
	ItemStatusAvailable    = "available"
	ItemStatusNotAvailable = "not_available"
	ItemStatusDeleted      = "deleted"
)

const (
	CategoryStarter = "starter"
	CategoryMain    = "main"
	CategorySide    = "side"
	CategoryDessert = "dessert"
	CategoryDrink   = "drink"
)
