package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/realtime"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

// Mount registers every route of the API on app.
func Mount(app *fiber.App, svc *market.Service, hub *realtime.Hub) {
	meta := NewMetaHandler()
	app.Get("/", meta.Root)
	app.Get("/health", meta.Health)

	api := app.Group("/api/v1")
	NewUserHandler(svc).Routes(api)
	NewJobHandler(svc).Routes(api)
	NewQuoteHandler(svc).Routes(api)
	NewReviewHandler(svc).Routes(api)
	api.Get("/categories", NewCategoryHandler().GetCategories)

	NewNotificationHandler(svc, hub).Routes(app)
}
