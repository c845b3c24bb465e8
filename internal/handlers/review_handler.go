package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

type ReviewHandler struct {
	Svc *market.Service
}

func NewReviewHandler(svc *market.Service) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

func (h *ReviewHandler) Routes(r fiber.Router) {
	g := r.Group("/reviews")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// List returns the reviews received by the required user_id parameter.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	raw := c.Query("user_id")
	if raw == "" {
		return fail(c, market.Invalid("user_id parameter is required"))
	}
	userID, err := parseUint(raw, "Invalid user_id parameter")
	if err != nil {
		return fail(c, err)
	}

	reviews, err := h.Svc.ListReviews(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, reviews)
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "review")
	if err != nil {
		return fail(c, err)
	}
	review, err := h.Svc.GetReview(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", review)
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in market.CreateReviewInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	review, err := h.Svc.CreateReview(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "Review submitted successfully", review)
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "review")
	if err != nil {
		return fail(c, err)
	}
	var in market.UpdateReviewInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	review, err := h.Svc.UpdateReview(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Review updated successfully", review)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "review")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.DeleteReview(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "Review deleted successfully")
}
