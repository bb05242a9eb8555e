// Package policy computes fee and commission splits for transaction
// kinds. It is pure arithmetic over configured rates.
package policy

import (
	"math"

	"mudra/internal/config"
	"mudra/internal/models"
)

// Party designates who is rebated the commission of a fee-bearing
// distribution.
type Party string

const (
	PartySender   Party = "sender"
	PartyReceiver Party = "receiver"
)

// Split is the fee outcome for one principal amount, in minor units.
// Charge is paid by the sender on top of the principal; Commission is
// the portion of the charge rebated by the treasury.
type Split struct {
	Charge     int64
	Commission int64
}

type rates struct {
	charge     float64
	commission float64
}

// Policy maps (kind, amount) to a Split. Load/unload kinds always
// split {0,0}; cash-in, cash-out and transfer use distinct configured
// rates.
type Policy struct {
	rates     map[models.TransactionKind]rates
	recipient map[models.TransactionKind]Party
}

// New builds a Policy from the transaction config. Commission
// recipients follow the risk-bearer rule: the initiating agent for
// cash-in and transfer, the receiving agent for cash-out. The mapping
// is configuration, not hardcoded per call site.
func New(cfg config.TransactionConfig) *Policy {
	return &Policy{
		rates: map[models.TransactionKind]rates{
			models.KindCashIn:   {charge: cfg.CashInChargeRate, commission: cfg.CashInCommissionRate},
			models.KindCashOut:  {charge: cfg.CashOutChargeRate, commission: cfg.CashOutCommissionRate},
			models.KindTransfer: {charge: cfg.TransferChargeRate, commission: cfg.TransferCommissionRate},
		},
		recipient: map[models.TransactionKind]Party{
			models.KindCashIn:   PartySender,
			models.KindCashOut:  PartyReceiver,
			models.KindTransfer: PartySender,
		},
	}
}

// Quote returns the fee split for distributing amount under kind.
// Kinds without a configured rate (treasury and agent load/unload)
// quote zero.
func (p *Policy) Quote(kind models.TransactionKind, amount int64) Split {
	r, ok := p.rates[kind]
	if !ok {
		return Split{}
	}
	return Split{
		Charge:     scale(amount, r.charge),
		Commission: scale(amount, r.commission),
	}
}

// CommissionRecipient returns which party the treasury rebates for
// kind. Defaults to the sender for kinds without an explicit entry.
func (p *Policy) CommissionRecipient(kind models.TransactionKind) Party {
	if party, ok := p.recipient[kind]; ok {
		return party
	}
	return PartySender
}

// scale applies a fractional rate to a minor-unit amount, rounding
// half away from zero.
func scale(amount int64, rate float64) int64 {
	if rate <= 0 || amount <= 0 {
		return 0
	}
	return int64(math.Round(float64(amount) * rate))
}
