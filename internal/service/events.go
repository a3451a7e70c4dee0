package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
)

// publishChange emits a builder change event for the audit worker. Best
// effort: the aggregate is already persisted, so a broker failure is logged
// and swallowed rather than rolled back.
func publishChange(ctx context.Context, broker queue.Broker, logger *zap.SugaredLogger, event domain.BuilderChangeEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		logger.Errorw("failed to marshal change event", "event_type", event.EventType, "aggregate_id", event.AggregateID, "error", err)
		return
	}

	if err := broker.Publish(ctx, queue.QueueBuilderEvents, eventBytes); err != nil {
		logger.Errorw("failed to publish change event", "event_type", event.EventType, "aggregate_id", event.AggregateID, "error", err)
		return
	}

	logger.Infow("change event published", "event_type", event.EventType, "aggregate_id", event.AggregateID)
}
