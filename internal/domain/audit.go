package domain

import "time"

type BuilderAudit struct {
	ID            string    `bson:"_id" json:"id"`
	AccountID     string    `bson:"account_id" json:"account_id"`
	AggregateKind string    `bson:"aggregate_kind" json:"aggregate_kind"`
	AggregateID   string    `bson:"aggregate_id" json:"aggregate_id"`
	EventType     string    `bson:"event_type" json:"event_type"`
	Summary       string    `bson:"summary" json:"summary"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
}
