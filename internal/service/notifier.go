package service

import (
	"context"

	"go.uber.org/zap"

	"resale/internal/eventbus"
	"resale/logger"
)

// Notifier drains operational events off the bus. Delivery is best-effort
// and currently log-based; the bus buffers and drops rather than ever
// blocking a publisher.
type Notifier struct {
	bus eventbus.Bus
}

func NewNotifier(bus eventbus.Bus) *Notifier {
	return &Notifier{bus: bus}
}

// Start consumes events until ctx is done.
func (n *Notifier) Start(ctx context.Context) {
	topics := []eventbus.Topic{
		eventbus.TopicBackupCompleted,
		eventbus.TopicBackupFailed,
		eventbus.TopicRestoreCompleted,
		eventbus.TopicSubmissionReceived,
		eventbus.TopicSubmissionReviewed,
	}

	for _, topic := range topics {
		ch := n.bus.Subscribe(topic)
		go func(topic eventbus.Topic, ch chan eventbus.Event) {
			for {
				select {
				case <-ctx.Done():
					return
				case event := <-ch:
					n.deliver(event)
				}
			}
		}(topic, ch)
	}
}

func (n *Notifier) deliver(event eventbus.Event) {
	switch event.Topic {
	case eventbus.TopicBackupFailed:
		logger.Error("notification",
			zap.String("topic", string(event.Topic)),
			zap.String("message", event.Message))
	default:
		logger.Info("notification",
			zap.String("topic", string(event.Topic)),
			zap.String("message", event.Message))
	}
}
