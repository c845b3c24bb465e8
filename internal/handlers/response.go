package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/middleware"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

func statusOf(kind market.Kind) int {
	switch kind {
	case market.KindValidation:
		return fiber.StatusBadRequest
	case market.KindNotFound:
		return fiber.StatusNotFound
	case market.KindForbidden:
		return fiber.StatusForbidden
	case market.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes err as an envelope with the status matching its kind.
func fail(c *fiber.Ctx, err error) error {
	var e *market.Error
	if !errors.As(err, &e) {
		e = &market.Error{Kind: market.KindInternal, Message: "Internal server error", Err: err}
	}

	status := statusOf(e.Kind)
	logger := middleware.Logger(c.UserContext())
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"err", err,
		)
	} else {
		logger.Debug("request rejected", "kind", e.Kind.String(), "message", e.Message)
	}

	body := fiber.Map{
		"success": false,
		"message": e.Message,
	}
	if e.Details != "" {
		body["errors"] = e.Details
	}
	return c.Status(status).JSON(body)
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func respondList[T any](c *fiber.Ctx, items []T) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"count":   len(items),
	})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// ErrorHandler turns errors escaping a handler (unknown routes, body limits,
// recovered panics) into the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"success": false,
			"message": fe.Message,
		})
	}
	return fail(c, err)
}

func parseID(c *fiber.Ctx, what string) (uint, error) {
	return parseUint(c.Params("id"), "Invalid "+what+" id")
}

func parseUint(raw, message string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, market.Invalid(message)
	}
	return uint(n), nil
}

// bind decodes the JSON body into dst.
func bind(c *fiber.Ctx, dst interface{}) error {
	if len(c.Body()) == 0 {
		return market.Invalid("Request body is required")
	}
	if err := c.BodyParser(dst); err != nil {
		return &market.Error{Kind: market.KindValidation, Message: "Invalid JSON body", Details: bodyError(err), Err: err}
	}
	return nil
}

// bodyError describes a decoding failure without leaking Go type names.
func bodyError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "body must be a JSON object"
		}
		return fmt.Sprintf("%s must be %s", typeErr.Field, jsonType(typeErr.Type))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	}
	return err.Error()
}

func jsonType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
