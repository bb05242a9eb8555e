package handlers

import (
	"mudra/internal/models"
	"mudra/internal/services/wallet"
	"mudra/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler exposes wallet read endpoints.
type WalletHandler struct {
	service wallet.Service
}

func NewWalletHandler(s wallet.Service) *WalletHandler {
	return &WalletHandler{service: s}
}

// GetWallet handles GET /api/wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	w, err := h.service.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "wallet retrieved", w)
}

// GetTransactionHistory handles GET /api/wallet/transactions.
func (h *WalletHandler) GetTransactionHistory(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	limit := c.QueryInt("limit", wallet.DefaultHistoryLimit)
	offset := c.QueryInt("offset", 0)

	history, err := h.service.GetTransactionHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "transactions retrieved", history)
}

// GetDailyTotals handles GET /api/wallet/daily-totals.
func (h *WalletHandler) GetDailyTotals(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	totals, err := h.service.DailyTotals(c.Context(), claims.Role, claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "daily totals computed", totals)
}
