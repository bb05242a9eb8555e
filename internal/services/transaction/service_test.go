package transaction

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"mudra/internal/config"
	"mudra/internal/errors"
	"mudra/internal/models"
	"mudra/internal/repositories"
	"mudra/internal/services/distribution"
	"mudra/internal/services/limits"
	"mudra/internal/services/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers struct {
	byID    map[uint]*models.User
	byEmail map[string]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{
		byID:    make(map[uint]*models.User),
		byEmail: make(map[string]*models.User),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[strings.ToLower(u.Email)] = u
	}
	return f
}

func (f *fakeUsers) Create(user *models.User) error {
	f.byID[user.ID] = user
	f.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeUsers) GetByID(id uint) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByEmail(email string) (*models.User, error) {
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) Update(user *models.User) error {
	f.byID[user.ID] = user
	f.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

// fakeWallets backs both the orchestrator's advisory reads and the
// engine's atomic unit, so a test exercises the full pipeline without
// a database.
type fakeWallets struct {
	mu       sync.Mutex
	balances map[uint]int64
	ledger   []*models.Transaction
	nextID   uint
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{balances: make(map[uint]int64)}
}

func (f *fakeWallets) Create(wallet *models.Wallet) error {
	f.balances[wallet.UserID] = wallet.Balance
	return nil
}

func (f *fakeWallets) GetByID(id uint) (*models.Wallet, error) {
	return f.GetByUserID(id)
}

func (f *fakeWallets) GetByUserID(userID uint) (*models.Wallet, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return &models.Wallet{ID: userID, UserID: userID, Balance: balance}, nil
}

func (f *fakeWallets) Credit(_ context.Context, userID uint, amount int64) error {
	if _, ok := f.balances[userID]; !ok {
		return repositories.ErrWalletNotFound
	}
	f.balances[userID] += amount
	return nil
}

func (f *fakeWallets) Debit(_ context.Context, userID uint, amount int64) error {
	balance, ok := f.balances[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if balance < amount {
		return repositories.ErrInsufficientBalance
	}
	f.balances[userID] -= amount
	return nil
}

func (f *fakeWallets) CreateTransactions(_ context.Context, txs []*models.Transaction) error {
	for _, tx := range txs {
		f.nextID++
		tx.ID = f.nextID
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = time.Now()
		}
		f.ledger = append(f.ledger, tx)
	}
	return nil
}

func (f *fakeWallets) GetTransactionHistory(_ context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	var history []models.Transaction
	for _, tx := range f.ledger {
		if tx.SenderID == userID || tx.ReceiverID == userID {
			history = append(history, *tx)
		}
	}
	return history, nil
}

func (f *fakeWallets) SumAmountInWindow(_ context.Context, kind models.TransactionKind, userID uint, asSender bool, start, end time.Time) (int64, error) {
	var total int64
	for _, tx := range f.ledger {
		if tx.Kind != kind {
			continue
		}
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}
		if asSender && tx.SenderID != userID {
			continue
		}
		if !asSender && tx.ReceiverID != userID {
			continue
		}
		total += tx.Amount
	}
	return total, nil
}

func (f *fakeWallets) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make(map[uint]int64, len(f.balances))
	for id, balance := range f.balances {
		snapshot[id] = balance
	}
	ledgerLen := len(f.ledger)

	if err := fn(f); err != nil {
		f.balances = snapshot
		f.ledger = f.ledger[:ledgerLen]
		return err
	}
	return nil
}

// recordUsage preloads a committed ledger row timestamped now, so it
// lands inside today's limit window.
func (f *fakeWallets) recordUsage(kind models.TransactionKind, senderID, receiverID uint, amount int64) {
	f.nextID++
	f.ledger = append(f.ledger, &models.Transaction{
		ID:         f.nextID,
		Kind:       kind,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		CreatedAt:  time.Now(),
	})
}

const (
	rootID     uint = 1
	agentID    uint = 2
	userAID    uint = 3
	userBID    uint = 4
	treasuryID uint = 9
)

func testConfig() config.TransactionConfig {
	return config.TransactionConfig{
		CashInChargeRate:       0.01,
		CashInCommissionRate:   0.005,
		CashOutChargeRate:      0.015,
		CashOutCommissionRate:  0.005,
		TransferChargeRate:     0.005,
		TransferCommissionRate: 0.002,
		DailyLimits: map[models.Role]int64{
			models.RoleAgent: 10_000_000,
			models.RoleUser:  2_500_000,
		},
		MinAmount:     500,
		TreasuryEmail: "treasury@mudra.local",
	}
}

type fixture struct {
	service Service
	wallets *fakeWallets
	users   *fakeUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := &models.User{Model: gorm.Model{ID: rootID}, Email: "root@mudra.local", Role: models.RoleRoot, Status: models.UserStatusActive}
	agent := &models.User{Model: gorm.Model{ID: agentID}, Email: "agent@mudra.local", Role: models.RoleAgent, Status: models.UserStatusActive}
	userA := &models.User{Model: gorm.Model{ID: userAID}, Email: "alice@mudra.local", Role: models.RoleUser, Status: models.UserStatusActive}
	userB := &models.User{Model: gorm.Model{ID: userBID}, Email: "bob@mudra.local", Role: models.RoleUser, Status: models.UserStatusActive}
	treasury := &models.User{Model: gorm.Model{ID: treasuryID}, Email: "treasury@mudra.local", Role: models.RoleRoot, Status: models.UserStatusActive}

	users := newFakeUsers(root, agent, userA, userB, treasury)

	wallets := newFakeWallets()
	wallets.balances[rootID] = 1_000_000_000
	wallets.balances[agentID] = 50_000_000
	wallets.balances[userAID] = 1_000_000
	wallets.balances[userBID] = 1_000_000
	wallets.balances[treasuryID] = 100_000_000

	cfg := testConfig()
	p := policy.New(cfg)
	engine := distribution.NewEngine(wallets, p, treasury)
	totals := limits.NewAggregator(wallets)

	return &fixture{
		service: NewService(users, wallets, totals, p, engine, nil, cfg, treasury),
		wallets: wallets,
		users:   users,
	}
}

func TestDistribute_CashIn(t *testing.T) {
	fx := newFixture(t)

	result, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        50_000,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Main)
	require.NotNil(t, result.Fee)
	require.NotNil(t, result.Commission)
	assert.Equal(t, int64(1_050_000), fx.wallets.balances[userAID])
	assert.Equal(t, int64(50_000_000-50_000-500+250), fx.wallets.balances[agentID])
}

func TestDistribute_RejectsDerivedKinds(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindCashInFee,
		Amount:        50_000,
	})
	assert.ErrorIs(t, err, errors.ErrInvalidKind)
}

func TestDistribute_RejectsBelowMinimum(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        499,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "below the minimum")
}

func TestDistribute_UnknownReceiver(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "nobody@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        50_000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
	assert.Contains(t, err.Error(), "nobody@mudra.local")
}

func TestDistribute_BlockedParty(t *testing.T) {
	fx := newFixture(t)
	fx.users.byEmail["alice@mudra.local"].Status = models.UserStatusBlocked

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        50_000,
	})
	assert.ErrorIs(t, err, errors.ErrUserBlocked)
}

func TestDistribute_SelfTransaction(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindTransfer,
		Amount:        50_000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidKind)
	assert.Contains(t, err.Error(), "self")
}

func TestDistribute_UnauthorizedRole(t *testing.T) {
	fx := newFixture(t)

	// End users cannot perform cash-in; only root, admin and agents can.
	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "bob@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        50_000,
	})
	assert.ErrorIs(t, err, errors.ErrUnauthorizedRole)
}

func TestDistribute_AdvisoryBalanceCheck(t *testing.T) {
	fx := newFixture(t)
	fx.wallets.balances[userAID] = 100_000

	// Amount alone is covered but amount plus charge is not.
	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "agent@mudra.local",
		Kind:          models.KindCashOut,
		Amount:        100_000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "charge")

	// Nothing moved and nothing was written.
	assert.Equal(t, int64(100_000), fx.wallets.balances[userAID])
	assert.Empty(t, fx.wallets.ledger)
}

func TestDistribute_SenderDailyLimit(t *testing.T) {
	fx := newFixture(t)

	// Alice has already sent 2,400,000 today; user cap is 2,500,000.
	fx.wallets.recordUsage(models.KindTransfer, userAID, userBID, 2_400_000)
	fx.wallets.balances[userAID] = 10_000_000

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "bob@mudra.local",
		Kind:          models.KindTransfer,
		Amount:        100_000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLimitExceeded)
	assert.Contains(t, err.Error(), "2400000 already used")
	assert.Contains(t, err.Error(), "100000 remaining")
}

func TestDistribute_ReceiverDailyLimit(t *testing.T) {
	fx := newFixture(t)

	// Alice has already received 2,450,000 of cash-in today.
	fx.wallets.recordUsage(models.KindCashIn, agentID, userAID, 2_450_000)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      agentID,
		ReceiverEmail: "alice@mudra.local",
		Kind:          models.KindCashIn,
		Amount:        100_000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLimitExceeded)
	assert.Contains(t, err.Error(), "receiver's daily limit")
}

func TestDistribute_TransferSkipsReceiverLimit(t *testing.T) {
	fx := newFixture(t)

	// Bob is at his cap from received cash-ins, which counts toward his
	// own total. Incoming transfers are not bounded by it.
	fx.wallets.recordUsage(models.KindCashIn, agentID, userBID, 2_500_000)

	result, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "bob@mudra.local",
		Kind:          models.KindTransfer,
		Amount:        100_000,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Main)
	assert.Equal(t, models.KindTransfer, result.Main.Kind)
}

func TestDistribute_UnlimitedRolesBypassCaps(t *testing.T) {
	fx := newFixture(t)

	// Treasury loads carry no fee and root carries no cap, so an amount
	// far above any configured limit settles.
	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      rootID,
		ReceiverEmail: "agent@mudra.local",
		Kind:          models.KindAgentLoad,
		Amount:        50_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_000), fx.wallets.balances[agentID])
}

func TestDistribute_ChargeCountsTowardSenderLimit(t *testing.T) {
	fx := newFixture(t)
	fx.wallets.balances[userAID] = 10_000_000

	// 2,490,000 used; 10,000 headroom. A 9,990 transfer needs
	// 9,990 + 50 charge = 10,040 and must be declined.
	fx.wallets.recordUsage(models.KindTransfer, userAID, userBID, 2_490_000)

	_, err := fx.service.Distribute(context.Background(), DistributeRequest{
		SenderID:      userAID,
		ReceiverEmail: "bob@mudra.local",
		Kind:          models.KindTransfer,
		Amount:        9_990,
	})
	assert.ErrorIs(t, err, errors.ErrLimitExceeded)
}
