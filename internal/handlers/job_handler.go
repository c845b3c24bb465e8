package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

type JobHandler struct {
	Svc *market.Service
}

func NewJobHandler(svc *market.Service) *JobHandler {
	return &JobHandler{Svc: svc}
}

func (h *JobHandler) Routes(r fiber.Router) {
	g := r.Group("/jobs")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// List supports the status, category and user_id query filters.
func (h *JobHandler) List(c *fiber.Ctx) error {
	filter := market.JobFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if raw := c.Query("user_id"); raw != "" {
		uid, err := parseUint(raw, "Invalid user_id parameter")
		if err != nil {
			return fail(c, err)
		}
		filter.UserID = &uid
	}

	jobs, err := h.Svc.ListJobs(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, jobs)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "job")
	if err != nil {
		return fail(c, err)
	}
	job, err := h.Svc.GetJob(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", job)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in market.CreateJobInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	job, err := h.Svc.CreateJob(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "Job created successfully", job)
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "job")
	if err != nil {
		return fail(c, err)
	}
	var in market.UpdateJobInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	job, err := h.Svc.UpdateJob(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Job updated successfully", job)
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "job")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.DeleteJob(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "Job deleted successfully")
}
