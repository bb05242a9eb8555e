// Package limits computes per-account daily transaction totals for
// limit enforcement. "Today" is a fixed UTC+6 calendar day regardless
// of where the process runs, matching the business's local day.
package limits

import (
	"context"
	"fmt"
	"time"

	"mudra/internal/models"
	"mudra/internal/services/authz"
)

var dayZone = time.FixedZone("UTC+6", 6*60*60)

// DayWindow returns the [start, start+24h) bounds of the UTC+6
// calendar day containing now, as absolute times.
func DayWindow(now time.Time) (start, end time.Time) {
	local := now.In(dayZone)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, dayZone)
	return start, start.Add(24 * time.Hour)
}

// LedgerReader is the committed-ledger aggregation the daily totals
// ride on. Only committed rows are visible; an in-flight distribution
// never leaks into a total.
type LedgerReader interface {
	SumAmountInWindow(ctx context.Context, kind models.TransactionKind, userID uint, asSender bool, start, end time.Time) (int64, error)
}

// Totals carries today's principal sums per counted kind. Fee and
// commission records are never included.
type Totals struct {
	CashIn   int64 `json:"cash_in"`
	CashOut  int64 `json:"cash_out"`
	Transfer int64 `json:"transfer"`
	Grand    int64 `json:"grand_total"`
}

// Aggregator computes role-relative daily totals from the ledger.
type Aggregator struct {
	ledger LedgerReader
	now    func() time.Time
}

func NewAggregator(ledger LedgerReader) *Aggregator {
	if ledger == nil {
		panic("ledger reader is required")
	}
	return &Aggregator{
		ledger: ledger,
		now:    time.Now,
	}
}

// DailyTotals sums today's principal amounts attributable to the
// account, from the role's perspective:
//
//   - cash-in counts for senders (root/admin/agent) and receivers (user)
//   - cash-out is the inverse
//   - transfers count only for the sender, whatever the role; the
//     receiver's total is untouched because limits bound outbound
//     exposure, not inbound receipt
func (a *Aggregator) DailyTotals(ctx context.Context, role models.Role, userID uint) (Totals, error) {
	start, end := DayWindow(a.now())

	var totals Totals

	cashIn, err := a.sumByPerspective(ctx, models.KindCashIn, role, userID, start, end)
	if err != nil {
		return Totals{}, err
	}
	totals.CashIn = cashIn

	cashOut, err := a.sumByPerspective(ctx, models.KindCashOut, role, userID, start, end)
	if err != nil {
		return Totals{}, err
	}
	totals.CashOut = cashOut

	sent, err := a.ledger.SumAmountInWindow(ctx, models.KindTransfer, userID, true, start, end)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to total transfers: %w", err)
	}
	totals.Transfer = sent

	totals.Grand = totals.CashIn + totals.CashOut + totals.Transfer
	return totals, nil
}

// sumByPerspective totals kind for the account on whichever side the
// role participates. The sender and receiver role sets per kind are
// disjoint, so at most one side applies.
func (a *Aggregator) sumByPerspective(ctx context.Context, kind models.TransactionKind, role models.Role, userID uint, start, end time.Time) (int64, error) {
	senders, ok := authz.SenderRoles(kind)
	if !ok {
		return 0, nil
	}
	receivers, _ := authz.ReceiverRoles(kind)

	var total int64
	if containsRole(senders, role) {
		sum, err := a.ledger.SumAmountInWindow(ctx, kind, userID, true, start, end)
		if err != nil {
			return 0, fmt.Errorf("failed to total %s: %w", kind, err)
		}
		total += sum
	}
	if containsRole(receivers, role) {
		sum, err := a.ledger.SumAmountInWindow(ctx, kind, userID, false, start, end)
		if err != nil {
			return 0, fmt.Errorf("failed to total %s: %w", kind, err)
		}
		total += sum
	}
	return total, nil
}

func containsRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
