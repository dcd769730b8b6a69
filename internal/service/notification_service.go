package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/watchdog"
	"pharmachain-portal/internal/websocket"
	"pharmachain-portal/pkg/events"
	portalnats "pharmachain-portal/pkg/nats"
)

// INotificationService fans monitoring snapshots and audit events out to
// connected websocket clients.
type INotificationService interface {
	Start(ctx context.Context) error
}

type notificationService struct {
	subscriber message.Subscriber
	natsSub    *portalnats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber message.Subscriber, natsSub *portalnats.Subscriber, hub *websocket.Hub, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		natsSub:    natsSub,
		hub:        hub,
		logger:     log,
	}
}

// Start wires the snapshot topic and the audit stream into the hub. It
// returns once the consumers are running; delivery continues until ctx is
// cancelled.
func (s *notificationService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, watchdog.SnapshotTopic)
	if err != nil {
		return err
	}
	go s.relaySnapshots(messages)

	if s.natsSub != nil {
		err := s.natsSub.Subscribe("audit.>", "portal-notifier", func(ctx context.Context, event events.Event) error {
			s.hub.Broadcast(map[string]interface{}{
				"type":    "audit_event",
				"payload": event.Payload(),
			})
			return nil
		})
		if err != nil {
			// Audit fan-out is best effort; snapshots still flow.
			s.logger.Warn("Notification", "Audit subscription failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *notificationService) relaySnapshots(messages <-chan *message.Message) {
	for msg := range messages {
		var snap watchdog.Snapshot
		if err := json.Unmarshal(msg.Payload, &snap); err != nil {
			s.logger.Error("Notification", "Malformed snapshot message", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}
		s.hub.Broadcast(map[string]interface{}{
			"type":    "watchdog_snapshot",
			"payload": snap,
		})
		msg.Ack()
	}
}
