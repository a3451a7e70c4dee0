package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/queue"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/service"
)

// AuditWorker consumes builder change events and writes the audit trail.
type AuditWorker struct {
	auditService *service.AuditService
	broker       queue.Broker
	logger       *zap.SugaredLogger
	ctx          context.Context
	cancel       context.CancelFunc
}

func NewAuditWorker(
	auditService *service.AuditService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *AuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &AuditWorker{
		auditService: auditService,
		broker:       broker,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *AuditWorker) Start() error {
	w.logger.Info("starting audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueBuilderEvents, w.handleMessage)
}

func (w *AuditWorker) Stop() {
	w.logger.Info("stopping audit worker")
	w.cancel()
}

func (w *AuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.BuilderChangeEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal change event", "error", err)
		return fmt.Errorf("failed to unmarshal change event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing change event", "aggregate_id", event.AggregateID, "event_type", event.EventType)

	if err := w.auditService.ProcessChangeEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process change event", "aggregate_id", event.AggregateID, "error", err)
		return err
	}

	return nil
}
