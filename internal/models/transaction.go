package models

import (
	"time"
)

// TransactionKind tags a ledger record. The set is closed: the
// distribution engine switches exhaustively over the principal kinds
// and rejects anything else.
type TransactionKind string

// Principal kinds (carry the transferred amount).
const (
	KindTreasuryLoad   TransactionKind = "TREASURY_LOAD"
	KindTreasuryUnload TransactionKind = "TREASURY_UNLOAD"
	KindAgentLoad      TransactionKind = "AGENT_LOAD"
	KindAgentUnload    TransactionKind = "AGENT_UNLOAD"
	KindCashIn         TransactionKind = "CASH_IN"
	KindCashOut        TransactionKind = "CASH_OUT"
	KindTransfer       TransactionKind = "P2P_TRANSFER"
)

// Derived kinds (written alongside a fee-bearing principal record).
const (
	KindCashInFee          TransactionKind = "CASH_IN_FEE"
	KindCashInCommission   TransactionKind = "CASH_IN_COMMISSION"
	KindCashOutFee         TransactionKind = "CASH_OUT_FEE"
	KindCashOutCommission  TransactionKind = "CASH_OUT_COMMISSION"
	KindTransferFee        TransactionKind = "P2P_TRANSFER_FEE"
	KindTransferCommission TransactionKind = "P2P_TRANSFER_COMMISSION"
)

// IsPrincipal reports whether k is one of the caller-initiated kinds,
// as opposed to a derived fee or commission record.
func (k TransactionKind) IsPrincipal() bool {
	switch k {
	case KindTreasuryLoad, KindTreasuryUnload, KindAgentLoad, KindAgentUnload,
		KindCashIn, KindCashOut, KindTransfer:
		return true
	}
	return false
}

// FeeBearing reports whether distributing k produces fee and
// commission records next to the main record.
func (k TransactionKind) FeeBearing() bool {
	switch k {
	case KindCashIn, KindCashOut, KindTransfer:
		return true
	}
	return false
}

// Transaction is an immutable ledger record. Rows are only ever
// inserted, in batches of one or three, by the distribution engine.
type Transaction struct {
	ID         uint            `gorm:"primarykey"`
	Reference  string          `gorm:"uniqueIndex;not null"`
	Kind       TransactionKind `gorm:"not null;index"`
	SenderID   uint            `gorm:"not null;index"`
	ReceiverID uint            `gorm:"not null;index"`
	Amount     int64           `gorm:"not null"`
	CreatedAt  time.Time       `gorm:"index"`
}
