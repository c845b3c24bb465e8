package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is the JSON document pushed to websocket clients and Redis subscribers.
type Event struct {
	Type   string                 `json:"type"`
	UserID uint                   `json:"user_id"`
	Data   map[string]interface{} `json:"data"`
	SentAt time.Time              `json:"sent_at"`
}

// Notifier fans events out to the hub and, when RDB is set, to Redis.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

// Notify never fails the caller; delivery problems are only logged.
func (n *Notifier) Notify(ctx context.Context, userID uint, event string, data map[string]interface{}) {
	payload, err := json.Marshal(Event{
		Type:   event,
		UserID: userID,
		Data:   data,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("marshal notification", "event", event, "user_id", userID, "err", err)
		return
	}

	delivered := 0
	if n.Hub != nil {
		delivered = n.Hub.Deliver(userID, payload)
	}
	if n.RDB != nil {
		if err := n.RDB.Publish(ctx, Channel(userID), payload).Err(); err != nil {
			slog.Warn("publish notification", "event", event, "user_id", userID, "err", err)
		}
	}
	slog.Debug("notification sent", "event", event, "user_id", userID, "connections", delivered)
}
