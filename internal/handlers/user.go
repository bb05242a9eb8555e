package handlers

import (
	"mudra/internal/models"
	"mudra/internal/services/user"
	"mudra/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes account provisioning. Credential management is
// handled by the external auth system.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

// Create handles POST /api/users. Admin-gated; the account's wallet
// is created in the same database transaction.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Phone == "" || req.Name == "" {
		return response.BadRequest(c, "email, phone and name are required")
	}

	role := models.Role(req.Role)
	switch role {
	case models.RoleAdmin, models.RoleAgent, models.RoleUser:
	case "":
		role = models.RoleUser
	default:
		return response.BadRequest(c, "unknown role")
	}

	created, err := h.service.Create(c.Context(), req.Email, req.Phone, req.Name, role)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Created(c, "account created", created)
}
