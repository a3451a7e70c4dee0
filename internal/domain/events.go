package domain

import "time"

// BuilderChangeEvent is published after every successful aggregate mutation.
// The audit worker consumes it and writes the trail record.
type BuilderChangeEvent struct {
	EventType     string    `json:"event_type"`
	AccountID     string    `json:"account_id"`
	AggregateKind string    `json:"aggregate_kind"`
	AggregateID   string    `json:"aggregate_id"`
	Summary       string    `json:"summary"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

const (
	AggregateMenu  = "menu"
	AggregateOffer = "offer"
)

const (
	EventMenuCreated    = "menu.created"
	EventMenuUpdated    = "menu.updated"
	EventMenuDuplicated = "menu.duplicated"
	EventMenuDeleted    = "menu.deleted"

	EventOfferCreated    = "offer.created"
	EventOfferUpdated    = "offer.updated"
	EventOfferDuplicated = "offer.duplicated"
	EventOfferDeleted    = "offer.deleted"

	EventCatalogReplaced = "catalog.replaced"
)
