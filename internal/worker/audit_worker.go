package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/events"
)

// StartAuditWorker subscribes an audit log handler to every inventory
// lifecycle event. Handlers run synchronously on the publisher's goroutine;
// the only work here is a structured log write.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	audit := logger.Named("audit")
	handler := func(_ context.Context, event events.Event) error {
		audit.Info("inventory event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("team_id", event.TeamID),
			zap.Int64("actor_id", event.ActorID),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventAssetCreated,
		events.EventAssetUpdated,
		events.EventAssetDeleted,
		events.EventRoomCreated,
		events.EventRoomUpdated,
		events.EventRoomDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
