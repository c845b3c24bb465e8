package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/models"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// GetCategories lists the accepted job categories.
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	return respondList(c, models.Categories)
}
