// Package validation checks request shapes before they reach the
// services. Business rules (authorization, balances, limits) live in
// the services themselves.
package validation

import (
	"strings"

	"mudra/internal/errors"
	"mudra/internal/models"
)

// ParseKind normalizes and validates a caller-supplied transaction
// kind. Only principal kinds may be initiated; fee and commission
// records are derived by the engine.
func ParseKind(raw string) (models.TransactionKind, error) {
	kind := models.TransactionKind(strings.ToUpper(strings.TrimSpace(raw)))
	if !kind.IsPrincipal() {
		return "", errors.ErrInvalidKind.WithMessage("unknown transaction kind %q", raw)
	}
	return kind, nil
}

// ValidateDistributePayload checks the request shape of a
// distribution call.
func ValidateDistributePayload(receiverEmail string, amount int64) error {
	if strings.TrimSpace(receiverEmail) == "" || !strings.Contains(receiverEmail, "@") {
		return errors.ErrUserNotFound.WithMessage("a valid receiver email is required")
	}
	if amount <= 0 {
		return errors.ErrInvalidAmount.WithMessage("amount must be a positive number of minor units")
	}
	return nil
}
