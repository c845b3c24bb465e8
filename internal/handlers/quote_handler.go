package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

type QuoteHandler struct {
	Svc *market.Service
}

func NewQuoteHandler(svc *market.Service) *QuoteHandler {
	return &QuoteHandler{Svc: svc}
}

func (h *QuoteHandler) Routes(r fiber.Router) {
	g := r.Group("/quotes")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// List returns the quotes of the job named by the required job_id parameter.
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	raw := c.Query("job_id")
	if raw == "" {
		return fail(c, market.Invalid("job_id parameter is required"))
	}
	jobID, err := parseUint(raw, "Invalid job_id parameter")
	if err != nil {
		return fail(c, err)
	}

	quotes, err := h.Svc.ListQuotes(c.UserContext(), jobID)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, quotes)
}

func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "quote")
	if err != nil {
		return fail(c, err)
	}
	quote, err := h.Svc.GetQuote(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", quote)
}

func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in market.CreateQuoteInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	quote, err := h.Svc.CreateQuote(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "Quote submitted successfully", quote)
}

func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "quote")
	if err != nil {
		return fail(c, err)
	}
	var in market.UpdateQuoteInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	quote, err := h.Svc.UpdateQuote(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Quote updated successfully", quote)
}

func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "quote")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.DeleteQuote(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "Quote deleted successfully")
}
