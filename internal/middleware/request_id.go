package middleware

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey string

const loggerCtxKey = ctxKey("logger")

// RequestID propagates an incoming X-Request-Id or generates one, and puts a
// logger carrying it in the request's user context.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: "requestid",
	})
}

// AttachLogger stores a request-scoped slog.Logger in the user context.
// It must run after RequestID.
func AttachLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals("requestid").(string)
		logger := slog.Default().With("request_id", id)
		c.SetUserContext(context.WithValue(c.UserContext(), loggerCtxKey, logger))
		return c.Next()
	}
}

// Logger returns the request logger stored by AttachLogger, or the default one.
func Logger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
