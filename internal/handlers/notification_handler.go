package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/mtaafundi/fundi-finder/internal/realtime"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

const localsUserID = "notify_user_id"

type NotificationHandler struct {
	Svc *market.Service
	Hub *realtime.Hub
}

func NewNotificationHandler(svc *market.Service, hub *realtime.Hub) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Hub: hub}
}

func (h *NotificationHandler) Routes(r fiber.Router) {
	r.Get("/ws/notifications", h.Upgrade, websocket.New(h.WebSocketHandler))
}

// Upgrade checks the user_id parameter and the user before switching protocols,
// so bad requests still get a JSON envelope.
func (h *NotificationHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	raw := c.Query("user_id")
	if raw == "" {
		return fail(c, market.Invalid("user_id parameter is required"))
	}
	userID, err := parseUint(raw, "Invalid user_id parameter")
	if err != nil {
		return fail(c, err)
	}
	if _, err := h.Svc.GetUser(c.UserContext(), userID); err != nil {
		return fail(c, err)
	}
	c.Locals(localsUserID, userID)
	return c.Next()
}

func (h *NotificationHandler) WebSocketHandler(c *websocket.Conn) {
	userID, _ := c.Locals(localsUserID).(uint)

	client := &realtime.Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	slog.Info("notifications subscribed", "user_id", userID, "client_id", client.ID)
	defer func() {
		h.Hub.UnregisterClient(client)
		slog.Info("notifications unsubscribed", "user_id", userID, "client_id", client.ID)
	}()

	go client.Conn.WritePump(client.Send)

	// Reads only detect the close; clients have nothing to send.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
