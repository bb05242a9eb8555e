// Package transaction orchestrates the distribution pipeline:
// resolve parties, check authorization, availability and daily
// limits, then hand the request to the distribution engine.
package transaction

import (
	"context"
	stderrors "errors"

	"mudra/internal/config"
	"mudra/internal/errors"
	"mudra/internal/models"
	"mudra/internal/repositories"
	"mudra/internal/repositories/cache"
	"mudra/internal/services/authz"
	"mudra/internal/services/distribution"
	"mudra/internal/services/limits"
	"mudra/internal/services/policy"
)

// DistributeRequest is a caller-facing distribution request. The
// sender is the authenticated account; the receiver is addressed by
// email.
type DistributeRequest struct {
	SenderID      uint
	ReceiverEmail string
	Kind          models.TransactionKind
	Amount        int64
}

// Service runs validated transfer requests through the distribution
// pipeline.
type Service interface {
	Distribute(ctx context.Context, req DistributeRequest) (*distribution.Result, error)
}

type service struct {
	users   repositories.UserRepository
	wallets repositories.WalletRepository
	totals  *limits.Aggregator
	policy  *policy.Policy
	engine  *distribution.Engine
	cache   *cache.CacheService
	cfg     config.TransactionConfig

	treasuryID uint
}

// NewService creates the orchestrating transaction service. The cache
// may be nil; it is only used to drop stale wallet entries after a
// commit.
func NewService(
	users repositories.UserRepository,
	wallets repositories.WalletRepository,
	totals *limits.Aggregator,
	p *policy.Policy,
	engine *distribution.Engine,
	cacheService *cache.CacheService,
	cfg config.TransactionConfig,
	treasury *models.User,
) Service {
	if users == nil {
		panic("user repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if totals == nil {
		panic("aggregator is required")
	}
	if p == nil {
		panic("policy is required")
	}
	if engine == nil {
		panic("engine is required")
	}

	var treasuryID uint
	if treasury != nil {
		treasuryID = treasury.ID
	}
	return &service{
		users:      users,
		wallets:    wallets,
		totals:     totals,
		policy:     p,
		engine:     engine,
		cache:      cacheService,
		cfg:        cfg,
		treasuryID: treasuryID,
	}
}

func (s *service) Distribute(ctx context.Context, req DistributeRequest) (*distribution.Result, error) {
	if !req.Kind.IsPrincipal() {
		return nil, errors.ErrInvalidKind.WithMessage(
			"%q records are written automatically and cannot be initiated", req.Kind)
	}
	if req.Amount < s.cfg.MinAmount {
		return nil, errors.ErrInvalidAmount.WithMessage(
			"amount %d is below the minimum of %d", req.Amount, s.cfg.MinAmount)
	}

	sender, receiver, err := s.resolveParties(req)
	if err != nil {
		return nil, err
	}

	if err := authz.Check(req.Kind, sender.Role, receiver.Role); err != nil {
		return nil, err
	}

	split := s.policy.Quote(req.Kind, req.Amount)

	if err := s.checkAvailability(sender, req.Amount, split.Charge); err != nil {
		return nil, err
	}
	if err := s.checkLimits(ctx, req.Kind, sender, receiver, req.Amount, split.Charge); err != nil {
		return nil, err
	}

	result, err := s.engine.Distribute(ctx, distribution.Request{
		Sender:   sender,
		Receiver: receiver,
		Kind:     req.Kind,
		Amount:   req.Amount,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, sender.ID, receiver.ID)
	return result, nil
}

func (s *service) resolveParties(req DistributeRequest) (sender, receiver *models.User, err error) {
	sender, err = s.users.GetByID(req.SenderID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, errors.ErrUserNotFound.WithMessage("sender not found")
		}
		return nil, nil, errors.ErrTransactionFailed.WithMessage("failed to resolve sender: %v", err)
	}

	receiver, err = s.users.GetByEmail(req.ReceiverEmail)
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, errors.ErrUserNotFound.WithMessage("receiver %q not found", req.ReceiverEmail)
		}
		return nil, nil, errors.ErrTransactionFailed.WithMessage("failed to resolve receiver: %v", err)
	}

	if !sender.IsActive() || !receiver.IsActive() {
		return nil, nil, errors.ErrUserBlocked
	}
	if sender.ID == receiver.ID {
		return nil, nil, errors.ErrInvalidKind.WithMessage("cannot transact with self")
	}
	return sender, receiver, nil
}

// checkAvailability is the advisory balance check. The engine repeats
// it inside the atomic unit with a guarded debit; this pass exists to
// fail fast with an amount-specific message.
func (s *service) checkAvailability(sender *models.User, amount, charge int64) error {
	wallet, err := s.wallets.GetByUserID(sender.ID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrWalletNotFound) {
			return errors.ErrWalletNotFound
		}
		return errors.ErrTransactionFailed.WithMessage("failed to load sender wallet: %v", err)
	}
	if wallet.Balance < amount+charge {
		if charge > 0 {
			return errors.ErrInsufficientBalance.WithMessage(
				"insufficient balance: transfer amount %d plus charge %d requires %d",
				amount, charge, amount+charge)
		}
		return errors.ErrInsufficientBalance.WithMessage(
			"insufficient balance: transfer amount %d exceeds available funds", amount)
	}
	return nil
}

// checkLimits enforces per-role daily caps. Only fee-bearing kinds
// count toward limits, and only limited roles (agent, user) carry a
// cap. The sender's headroom covers amount plus charge; the receiver
// is only checked for cash-in/cash-out, since transfer receipts do
// not count toward the receiver's total.
func (s *service) checkLimits(ctx context.Context, kind models.TransactionKind, sender, receiver *models.User, amount, charge int64) error {
	if !kind.FeeBearing() {
		return nil
	}

	if limit := s.cfg.DailyLimits[sender.Role]; limit > 0 {
		totals, err := s.totals.DailyTotals(ctx, sender.Role, sender.ID)
		if err != nil {
			return errors.ErrTransactionFailed.WithMessage("failed to compute daily total: %v", err)
		}
		if totals.Grand+amount+charge > limit {
			return errors.ErrLimitExceeded.WithMessage(
				"daily limit of %d exceeded: %d already used, %d remaining before charges",
				limit, totals.Grand, headroom(limit, totals.Grand))
		}
	}

	if kind == models.KindTransfer {
		return nil
	}

	if limit := s.cfg.DailyLimits[receiver.Role]; limit > 0 {
		totals, err := s.totals.DailyTotals(ctx, receiver.Role, receiver.ID)
		if err != nil {
			return errors.ErrTransactionFailed.WithMessage("failed to compute daily total: %v", err)
		}
		if totals.Grand+amount > limit {
			return errors.ErrLimitExceeded.WithMessage(
				"receiver's daily limit of %d exceeded: %d already used, %d remaining",
				limit, totals.Grand, headroom(limit, totals.Grand))
		}
	}
	return nil
}

func (s *service) invalidateWallets(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		s.cache.InvalidateWallet(ctx, id)
	}
	if s.treasuryID != 0 {
		s.cache.InvalidateWallet(ctx, s.treasuryID)
	}
}

func headroom(limit, used int64) int64 {
	if used >= limit {
		return 0
	}
	return limit - used
}
