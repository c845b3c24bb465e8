package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mtaafundi/fundi-finder/internal/services/market"
)

type UserHandler struct {
	Svc *market.Service
}

func NewUserHandler(svc *market.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) Routes(r fiber.Router) {
	g := r.Group("/users")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Svc.ListUsers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return fail(c, err)
	}
	user, err := h.Svc.GetUser(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in market.CreateUserInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	user, err := h.Svc.CreateUser(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "User created successfully", user)
}

// Update serves both PUT and PATCH; only supplied fields change.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return fail(c, err)
	}
	var in market.UpdateUserInput
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	user, err := h.Svc.UpdateUser(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "user")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Svc.DeleteUser(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "User deleted successfully")
}
