package config

import (
	"mudra/internal/models"
)

// TransactionConfig carries the numeric knobs of the distribution
// pipeline. It is assembled once at process start and handed to the
// services; nothing re-reads the environment per request.
//
// All monetary values are minor units. Rates are fractions of the
// principal (0.01 = 1%). A daily limit of 0 means the role is not
// limited.
type TransactionConfig struct {
	CashInChargeRate       float64
	CashInCommissionRate   float64
	CashOutChargeRate      float64
	CashOutCommissionRate  float64
	TransferChargeRate     float64
	TransferCommissionRate float64

	DailyLimits map[models.Role]int64

	MinAmount int64

	TreasuryEmail string
}

// LoadTransactionConfig reads the distribution knobs from the
// environment. Defaults mirror the usual deployment: 1% cash-in
// charge with half rebated, 1.5% cash-out, 0.5% transfer.
func LoadTransactionConfig() TransactionConfig {
	return TransactionConfig{
		CashInChargeRate:       GetFloatEnv("CASH_IN_CHARGE", 0.01),
		CashInCommissionRate:   GetFloatEnv("CASH_IN_COMMISSION", 0.005),
		CashOutChargeRate:      GetFloatEnv("CASH_OUT_CHARGE", 0.015),
		CashOutCommissionRate:  GetFloatEnv("CASH_OUT_COMMISSION", 0.005),
		TransferChargeRate:     GetFloatEnv("SEND_MONEY_CHARGE", 0.005),
		TransferCommissionRate: GetFloatEnv("SEND_MONEY_COMMISSION", 0.002),

		DailyLimits: map[models.Role]int64{
			models.RoleAgent: GetInt64Env("AGENT_DAILY_LIMIT", 10_000_000),
			models.RoleUser:  GetInt64Env("USER_DAILY_LIMIT", 2_500_000),
		},

		MinAmount: GetInt64Env("MIN_TRANSACTION_AMOUNT", 500),

		TreasuryEmail: GetEnv("TREASURY_EMAIL", "treasury@mudra.local"),
	}
}
