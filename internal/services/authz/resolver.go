// Package authz decides which sender/receiver role pairs may run each
// transaction kind. It is a pure table lookup: no I/O, no balances.
package authz

import (
	"fmt"

	"mudra/internal/errors"
	"mudra/internal/models"
)

// Side names the party that failed an authorization check.
type Side string

const (
	SideSender   Side = "sender"
	SideReceiver Side = "receiver"
)

// DeniedError reports which side of the transaction was rejected and
// with which role, for diagnostics and user messaging.
type DeniedError struct {
	Kind models.TransactionKind
	Side Side
	Role models.Role
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s with role %q is not authorized for %s", e.Side, e.Role, e.Kind)
}

// Unwrap exposes the domain error underneath, so errors.Is matches
// ErrUnauthorizedRole and the HTTP layer finds the 403 status.
func (e *DeniedError) Unwrap() error {
	return errors.ErrUnauthorizedRole
}

type rule struct {
	senders   []models.Role
	receivers []models.Role
}

var anyRole = []models.Role{models.RoleRoot, models.RoleAdmin, models.RoleAgent, models.RoleUser}

var rules = map[models.TransactionKind]rule{
	models.KindTreasuryLoad: {
		senders:   []models.Role{models.RoleRoot},
		receivers: []models.Role{models.RoleAdmin},
	},
	models.KindTreasuryUnload: {
		senders:   []models.Role{models.RoleAdmin},
		receivers: []models.Role{models.RoleRoot, models.RoleAdmin},
	},
	models.KindAgentLoad: {
		senders:   []models.Role{models.RoleRoot, models.RoleAdmin},
		receivers: []models.Role{models.RoleAgent},
	},
	models.KindAgentUnload: {
		senders:   []models.Role{models.RoleAgent},
		receivers: []models.Role{models.RoleRoot, models.RoleAdmin, models.RoleAgent},
	},
	models.KindCashIn: {
		senders:   []models.Role{models.RoleRoot, models.RoleAdmin, models.RoleAgent},
		receivers: []models.Role{models.RoleUser},
	},
	models.KindCashOut: {
		senders:   []models.Role{models.RoleUser},
		receivers: []models.Role{models.RoleRoot, models.RoleAdmin, models.RoleAgent},
	},
	models.KindTransfer: {
		senders:   anyRole,
		receivers: anyRole,
	},
}

// SenderRoles returns the roles permitted to send kind. The second
// return is false for kinds that cannot be initiated by callers.
func SenderRoles(kind models.TransactionKind) ([]models.Role, bool) {
	r, ok := rules[kind]
	return r.senders, ok
}

// ReceiverRoles returns the roles permitted to receive kind.
func ReceiverRoles(kind models.TransactionKind) ([]models.Role, bool) {
	r, ok := rules[kind]
	return r.receivers, ok
}

// Check resolves whether the sender/receiver role pair may run kind.
// A nil return means allowed; denial is a *DeniedError naming the
// failing side.
func Check(kind models.TransactionKind, senderRole, receiverRole models.Role) error {
	r, ok := rules[kind]
	if !ok {
		return errors.ErrInvalidKind.WithMessage("transaction kind %q cannot be initiated", kind)
	}
	if !contains(r.senders, senderRole) {
		return &DeniedError{Kind: kind, Side: SideSender, Role: senderRole}
	}
	if !contains(r.receivers, receiverRole) {
		return &DeniedError{Kind: kind, Side: SideReceiver, Role: receiverRole}
	}
	return nil
}

func contains(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
