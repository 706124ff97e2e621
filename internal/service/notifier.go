package service

import (
	"context"
	"sync"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/metrics"
)

// AsyncNotifier sends notifications in the background so a committed
// booking or contact message never waits on, or fails because of, the mail
// provider. There is no retry and no queue: a failed send is logged once.
type AsyncNotifier struct {
	dispatcher NotificationService
	wg         sync.WaitGroup
}

func NewAsyncNotifier(dispatcher NotificationService) *AsyncNotifier {
	return &AsyncNotifier{dispatcher: dispatcher}
}

// Notify returns immediately. The send keeps the request's values but not
// its cancellation; the dispatcher applies the mail timeout.
func (n *AsyncNotifier) Notify(ctx context.Context, p *domain.NotificationPayload) {
	ctx = context.WithoutCancel(ctx)

	n.wg.Add(1)
	metrics.NotificationsInFlight.Inc()
	go func() {
		defer n.wg.Done()
		defer metrics.NotificationsInFlight.Dec()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Notification panicked", "kind", p.Kind, "panic", r)
			}
		}()

		res, err := n.dispatcher.Dispatch(ctx, p)
		if err != nil {
			logger.ErrorContext(ctx, "Notification failed", "kind", p.Kind, "error", err)
			return
		}
		logger.InfoContext(ctx, "Notification sent", "kind", p.Kind, "provider", res.Provider, "message_id", res.ID)
	}()
}

// Wait blocks until every notification started so far has finished.
func (n *AsyncNotifier) Wait() {
	n.wg.Wait()
}
