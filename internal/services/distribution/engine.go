// Package distribution is the transaction distribution engine: given
// a validated transfer request it computes fee/commission splits,
// mutates the involved wallets and appends the resulting ledger
// records, all inside one database transaction. Either every wallet
// delta and every ledger row of a request commits, or none do.
package distribution

import (
	"context"
	stderrors "errors"

	"mudra/internal/errors"
	"mudra/internal/models"
	"mudra/internal/repositories"
	"mudra/internal/services/policy"

	"github.com/google/uuid"
)

// Engine orchestrates wallet mutation and ledger appends. The
// treasury account is injected at construction, resolved once from
// configuration by the caller; it is not re-queried per request.
type Engine struct {
	repo       repositories.WalletRepository
	policy     *policy.Policy
	treasuryID uint
}

func NewEngine(repo repositories.WalletRepository, p *policy.Policy, treasury *models.User) *Engine {
	if repo == nil {
		panic("wallet repository is required")
	}
	if p == nil {
		panic("policy is required")
	}

	var treasuryID uint
	if treasury != nil {
		treasuryID = treasury.ID
	}
	return &Engine{
		repo:       repo,
		policy:     p,
		treasuryID: treasuryID,
	}
}

// Distribute executes one distribution. The database transaction runs
// detached from the caller's context: once started it always reaches
// full commit or full abort, even if the caller abandons the request.
func (e *Engine) Distribute(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	switch req.Kind {
	case models.KindTreasuryLoad, models.KindTreasuryUnload,
		models.KindAgentLoad, models.KindAgentUnload:
		return e.distributeSimple(ctx, req)
	case models.KindCashIn, models.KindCashOut, models.KindTransfer:
		return e.distributeWithFees(ctx, req)
	default:
		return nil, errors.ErrInvalidKind.WithMessage("cannot distribute kind %q", req.Kind)
	}
}

// distributeSimple moves the principal between two wallets and writes
// a single ledger record. No treasury, no fees.
func (e *Engine) distributeSimple(ctx context.Context, req Request) (*Result, error) {
	main := &models.Transaction{
		Reference:  uuid.NewString(),
		Kind:       req.Kind,
		SenderID:   req.Sender.ID,
		ReceiverID: req.Receiver.ID,
		Amount:     req.Amount,
	}

	err := e.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if _, err := tx.GetByUserID(req.Receiver.ID); err != nil {
			return err
		}
		if err := tx.Debit(ctx, req.Sender.ID, req.Amount); err != nil {
			return err
		}
		if err := tx.Credit(ctx, req.Receiver.ID, req.Amount); err != nil {
			return err
		}
		return tx.CreateTransactions(ctx, []*models.Transaction{main})
	})
	if err != nil {
		return nil, e.wrapError(err, req.Amount, 0)
	}

	return &Result{Main: main}, nil
}

// distributeWithFees settles a fee-bearing kind. The sender pays
// principal plus charge, the receiver gets the principal, the
// treasury nets charge minus commission, and the rebate recipient
// gets the commission. Three ledger records are written as one batch.
func (e *Engine) distributeWithFees(ctx context.Context, req Request) (*Result, error) {
	if e.treasuryID == 0 {
		return nil, errors.ErrTreasuryUnavailable
	}

	split := e.policy.Quote(req.Kind, req.Amount)
	feeKind, commissionKind := derivedKinds(req.Kind)

	rebateID := req.Sender.ID
	if e.policy.CommissionRecipient(req.Kind) == policy.PartyReceiver {
		rebateID = req.Receiver.ID
	}

	fee := &models.Transaction{
		Reference:  uuid.NewString(),
		Kind:       feeKind,
		SenderID:   req.Sender.ID,
		ReceiverID: e.treasuryID,
		Amount:     split.Charge,
	}
	main := &models.Transaction{
		Reference:  uuid.NewString(),
		Kind:       req.Kind,
		SenderID:   req.Sender.ID,
		ReceiverID: req.Receiver.ID,
		Amount:     req.Amount,
	}
	commission := &models.Transaction{
		Reference:  uuid.NewString(),
		Kind:       commissionKind,
		SenderID:   e.treasuryID,
		ReceiverID: rebateID,
		Amount:     split.Commission,
	}

	err := e.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if _, err := tx.GetByUserID(e.treasuryID); err != nil {
			return errors.ErrTreasuryUnavailable
		}
		if _, err := tx.GetByUserID(req.Receiver.ID); err != nil {
			return err
		}

		// The guarded debit re-verifies balance >= amount + charge
		// inside the unit, closing the race left by the advisory
		// check upstream.
		if err := tx.Debit(ctx, req.Sender.ID, req.Amount+split.Charge); err != nil {
			return err
		}
		if err := tx.Credit(ctx, req.Receiver.ID, req.Amount); err != nil {
			return err
		}
		if split.Charge > 0 {
			if err := tx.Credit(ctx, e.treasuryID, split.Charge); err != nil {
				return err
			}
		}
		if split.Commission > 0 {
			if err := tx.Debit(ctx, e.treasuryID, split.Commission); err != nil {
				return err
			}
			if err := tx.Credit(ctx, rebateID, split.Commission); err != nil {
				return err
			}
		}

		return tx.CreateTransactions(ctx, []*models.Transaction{fee, main, commission})
	})
	if err != nil {
		return nil, e.wrapError(err, req.Amount, split.Charge)
	}

	return &Result{Main: main, Fee: fee, Commission: commission}, nil
}

// wrapError maps storage failures onto the domain taxonomy. Domain
// errors pass through untouched; anything unrecognized is reported as
// a transient failure the caller may retry whole.
func (e *Engine) wrapError(err error, amount, charge int64) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		return err
	}
	switch {
	case stderrors.Is(err, repositories.ErrInsufficientBalance):
		if charge > 0 {
			return errors.ErrInsufficientBalance.WithMessage(
				"insufficient balance: need %d (amount %d + charge %d)",
				amount+charge, amount, charge)
		}
		return errors.ErrInsufficientBalance.WithMessage(
			"insufficient balance: need %d", amount)
	case stderrors.Is(err, repositories.ErrWalletNotFound):
		return errors.ErrWalletNotFound
	default:
		return errors.ErrTransactionFailed.WithMessage("distribution aborted: %v", err)
	}
}

func validateRequest(req Request) error {
	if req.Sender == nil || req.Receiver == nil {
		return errors.ErrUserNotFound
	}
	if req.Amount <= 0 {
		return errors.ErrInvalidAmount
	}
	return nil
}

// derivedKinds returns the fee and commission record kinds written
// next to a fee-bearing principal.
func derivedKinds(kind models.TransactionKind) (fee, commission models.TransactionKind) {
	switch kind {
	case models.KindCashIn:
		return models.KindCashInFee, models.KindCashInCommission
	case models.KindCashOut:
		return models.KindCashOutFee, models.KindCashOutCommission
	default:
		return models.KindTransferFee, models.KindTransferCommission
	}
}
