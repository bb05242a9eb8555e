package limits

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mudra/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sumCall struct {
	kind     models.TransactionKind
	asSender bool
}

// fakeLedger serves configured sums keyed by kind and perspective and
// records every query it sees.
type fakeLedger struct {
	sums  map[string]int64
	calls []sumCall
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{sums: make(map[string]int64)}
}

func (f *fakeLedger) set(kind models.TransactionKind, asSender bool, total int64) {
	f.sums[fmt.Sprintf("%s|%v", kind, asSender)] = total
}

func (f *fakeLedger) SumAmountInWindow(_ context.Context, kind models.TransactionKind, _ uint, asSender bool, _, _ time.Time) (int64, error) {
	f.calls = append(f.calls, sumCall{kind: kind, asSender: asSender})
	return f.sums[fmt.Sprintf("%s|%v", kind, asSender)], nil
}

func TestDayWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       string // RFC3339, UTC
		wantStart string
	}{
		{
			// 19:30 UTC is 01:30 the next day at UTC+6, so the window
			// starts at 18:00 UTC of the same UTC day.
			name:      "after local midnight",
			now:       "2026-03-15T19:30:00Z",
			wantStart: "2026-03-15T18:00:00Z",
		},
		{
			name:      "just before local midnight",
			now:       "2026-03-15T17:59:59Z",
			wantStart: "2026-03-14T18:00:00Z",
		},
		{
			name:      "local noon",
			now:       "2026-03-15T06:00:00Z",
			wantStart: "2026-03-14T18:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			require.NoError(t, err)
			wantStart, err := time.Parse(time.RFC3339, tt.wantStart)
			require.NoError(t, err)

			start, end := DayWindow(now)
			assert.True(t, start.Equal(wantStart), "start=%v want=%v", start, wantStart)
			assert.True(t, end.Equal(wantStart.Add(24*time.Hour)))
		})
	}
}

func TestAggregator_AgentPerspective(t *testing.T) {
	ledger := newFakeLedger()
	// An agent sends cash-in, receives cash-out, sends transfers.
	ledger.set(models.KindCashIn, true, 50_000)
	ledger.set(models.KindCashOut, false, 20_000)
	ledger.set(models.KindTransfer, true, 5_000)
	// Wrong-perspective rows must never be queried.
	ledger.set(models.KindCashIn, false, 999_999)
	ledger.set(models.KindCashOut, true, 999_999)

	a := NewAggregator(ledger)
	totals, err := a.DailyTotals(context.Background(), models.RoleAgent, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(50_000), totals.CashIn)
	assert.Equal(t, int64(20_000), totals.CashOut)
	assert.Equal(t, int64(5_000), totals.Transfer)
	assert.Equal(t, int64(75_000), totals.Grand)

	for _, call := range ledger.calls {
		if call.kind == models.KindCashIn {
			assert.True(t, call.asSender, "agent cash-in must be counted as sender")
		}
		if call.kind == models.KindCashOut {
			assert.False(t, call.asSender, "agent cash-out must be counted as receiver")
		}
	}
}

func TestAggregator_UserPerspective(t *testing.T) {
	ledger := newFakeLedger()
	ledger.set(models.KindCashIn, false, 30_000)
	ledger.set(models.KindCashOut, true, 10_000)
	ledger.set(models.KindTransfer, true, 2_500)

	a := NewAggregator(ledger)
	totals, err := a.DailyTotals(context.Background(), models.RoleUser, 9)
	require.NoError(t, err)

	assert.Equal(t, int64(30_000), totals.CashIn)
	assert.Equal(t, int64(10_000), totals.CashOut)
	assert.Equal(t, int64(2_500), totals.Transfer)
	assert.Equal(t, int64(42_500), totals.Grand)
}

// Transfers count only toward the sender's total; received transfers
// never inflate the receiver's daily usage.
func TestAggregator_TransferCountsSenderOnly(t *testing.T) {
	ledger := newFakeLedger()
	ledger.set(models.KindTransfer, false, 777_777)

	a := NewAggregator(ledger)
	totals, err := a.DailyTotals(context.Background(), models.RoleUser, 3)
	require.NoError(t, err)
	assert.Zero(t, totals.Transfer)

	for _, call := range ledger.calls {
		if call.kind == models.KindTransfer {
			assert.True(t, call.asSender, "transfer totals must only be queried from the sender side")
		}
	}
}

// Two reads with no intervening commits yield identical totals.
func TestAggregator_IdempotentRead(t *testing.T) {
	ledger := newFakeLedger()
	ledger.set(models.KindCashIn, true, 12_345)
	ledger.set(models.KindTransfer, true, 678)

	a := NewAggregator(ledger)

	first, err := a.DailyTotals(context.Background(), models.RoleAgent, 1)
	require.NoError(t, err)
	second, err := a.DailyTotals(context.Background(), models.RoleAgent, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
