package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// publishUserEvent publishes a user lifecycle event. Publishing is
// best-effort: a nil writer or a broker failure never fails the request.
func publishUserEvent(ctx context.Context, w KafkaWriter, userID int64, action string) {
	if w == nil {
		return
	}

	event := models.UserEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID,
		Action:    action,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event", "event_id", event.EventID, "action", action, "error", err)
		return
	}

	logger.Log.Infow("user event published", "event_id", event.EventID, "action", action, "user_id", userID)
}
