package handlers

import (
	"mudra/internal/models"
	"mudra/internal/services/transaction"
	"mudra/internal/utils/response"
	"mudra/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes the distribution endpoint.
type TransactionHandler struct {
	service transaction.Service
}

func NewTransactionHandler(s transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Distribute handles POST /api/transactions. The authenticated caller
// is the sender; the receiver is addressed by email.
func (h *TransactionHandler) Distribute(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var req struct {
		ReceiverEmail string `json:"receiver_email"`
		Kind          string `json:"transaction_kind"`
		Amount        int64  `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	kind, err := validation.ParseKind(req.Kind)
	if err != nil {
		return response.Domain(c, err)
	}
	if err := validation.ValidateDistributePayload(req.ReceiverEmail, req.Amount); err != nil {
		return response.Domain(c, err)
	}

	result, err := h.service.Distribute(c.Context(), transaction.DistributeRequest{
		SenderID:      claims.UserID,
		ReceiverEmail: req.ReceiverEmail,
		Kind:          kind,
		Amount:        req.Amount,
	})
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Created(c, "transaction completed", result)
}
