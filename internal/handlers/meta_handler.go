package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const (
	apiName    = "Mtaa-Fundi Finder API"
	apiVersion = "1.0.0"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": apiName + " is running",
	})
}

// Root describes the API and its endpoints.
func (h *MetaHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        apiName,
		"version":     apiVersion,
		"description": "API for connecting homeowners with local artisans in Kenya",
		"endpoints": fiber.Map{
			"users": fiber.Map{
				"GET /api/v1/users":         "List all users",
				"POST /api/v1/users":        "Create a new user",
				"GET /api/v1/users/<id>":    "Get user by ID",
				"PUT /api/v1/users/<id>":    "Update user",
				"PATCH /api/v1/users/<id>":  "Partially update user",
				"DELETE /api/v1/users/<id>": "Delete user",
			},
			"jobs": fiber.Map{
				"GET /api/v1/jobs":         "List all jobs (filters: status, category, user_id)",
				"POST /api/v1/jobs":        "Create a new job",
				"GET /api/v1/jobs/<id>":    "Get job by ID",
				"PUT /api/v1/jobs/<id>":    "Update job",
				"PATCH /api/v1/jobs/<id>":  "Partially update job",
				"DELETE /api/v1/jobs/<id>": "Delete job",
			},
			"quotes": fiber.Map{
				"GET /api/v1/quotes?job_id=<id>": "Get quotes for a job",
				"POST /api/v1/quotes":            "Create a new quote",
				"GET /api/v1/quotes/<id>":        "Get quote by ID",
				"PUT /api/v1/quotes/<id>":        "Update quote",
				"PATCH /api/v1/quotes/<id>":      "Partially update quote",
				"DELETE /api/v1/quotes/<id>":     "Delete quote",
			},
			"reviews": fiber.Map{
				"GET /api/v1/reviews?user_id=<id>": "Get reviews for a user",
				"POST /api/v1/reviews":             "Create a new review",
				"GET /api/v1/reviews/<id>":         "Get review by ID",
				"PUT /api/v1/reviews/<id>":         "Update review",
				"PATCH /api/v1/reviews/<id>":       "Partially update review",
				"DELETE /api/v1/reviews/<id>":      "Delete review",
			},
			"categories": fiber.Map{
				"GET /api/v1/categories": "List job categories",
			},
			"notifications": fiber.Map{
				"GET /ws/notifications?user_id=<id>": "WebSocket stream of a user's notifications",
			},
		},
	})
}
