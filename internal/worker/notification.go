package worker

import (
	"context"

	"github.com/jamalsoueidan/book-appointment-app/internal/queue"
	"github.com/jamalsoueidan/book-appointment-app/internal/service"
	"go.uber.org/zap"
)

// NotificationWorker consumes the notification queue and drives the
// dispatcher. Provider failures bubble up to the broker, which retries and
// eventually dead-letters the event.
type NotificationWorker struct {
	notificationService *service.NotificationService
	broker              queue.Broker
	logger              *zap.SugaredLogger
	ctx                 context.Context
	cancel              context.CancelFunc
}

func NewNotificationWorker(
	notificationService *service.NotificationService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *NotificationWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationWorker{
		notificationService: notificationService,
		broker:              broker,
		logger:              logger,
		ctx:                 ctx,
		cancel:              cancel,
	}
}

func (w *NotificationWorker) Start() error {
	w.logger.Info("starting notification worker")

	return w.broker.Subscribe(w.ctx, queue.QueueNotifications, w.handleMessage)
}

func (w *NotificationWorker) Stop() {
	w.logger.Info("stopping notification worker")
	w.cancel()
}

func (w *NotificationWorker) handleMessage(ctx context.Context, message []byte) error {
	if err := w.notificationService.ProcessEvent(ctx, message); err != nil {
		w.logger.Errorw("failed to process notification event", "error", err)
		return err
	}

	return nil
}
