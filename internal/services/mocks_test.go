package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/config"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/django102/mono-test-api/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCounterRepository struct {
	mock.Mock
}

func (m *MockCounterRepository) Increment(ctx context.Context, name string, start int64) (int64, error) {
	args := m.Called(ctx, name, start)
	return args.Get(0).(int64), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) InsertMany(ctx context.Context, entries []models.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByReference(ctx context.Context, reference string) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) MarkReversed(ctx context.Context, reference string) (int64, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) Balance(ctx context.Context, accountNumber string) (models.Balance, error) {
	args := m.Called(ctx, accountNumber)
	return args.Get(0).(models.Balance), args.Error(1)
}

func (m *MockLedgerRepository) History(ctx context.Context, filter models.HistoryFilter) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Unbalanced(ctx context.Context) ([]models.Imbalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Imbalance), args.Error(1)
}

// faultStore swaps individual repositories of a real store for mocks.
type faultStore struct {
	repository.Store
	counters repository.CounterRepository
	ledger   repository.LedgerRepository
}

func (f *faultStore) Counters() repository.CounterRepository {
	if f.counters != nil {
		return f.counters
	}
	return f.Store.Counters()
}

func (f *faultStore) Ledger() repository.LedgerRepository {
	if f.ledger != nil {
		return f.ledger
	}
	return f.Store.Ledger()
}

func (f *faultStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return f.Store.WithinTx(ctx, func(st repository.Store) error {
		return fn(&faultStore{Store: st, counters: f.counters, ledger: f.ledger})
	})
}

type harness struct {
	store        repository.Store
	cfg          *config.Banking
	ledger       *LedgerService
	transactions *TransactionService
	accounts     *AccountService
	customers    *CustomerService
	banking      *BankingService

	mu     sync.Mutex
	events []audit.Event
}

func testBankingConfig() *config.Banking {
	return &config.Banking{
		MaxAccountsPerCustomer: 3,
		OpeningBalance:         decimal.NewFromInt(5000),
		FundingGLAccount:       "0000000001",
		WithdrawalGLAccount:    "0000000002",
		ReferencePrefix:        "mono-",
		AccountCounterName:     "accountNumber",
		AccountCounterStart:    1_000_000_000,
	}
}

func testAuthConfig() *config.Auth {
	return &config.Auth{
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
		Argon2:    config.Argon2{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16},
	}
}

func newHarness(t *testing.T, store repository.Store, cfg *config.Banking, cache AccountInfoCache) *harness {
	t.Helper()
	if store == nil {
		store = memory.NewStore()
	}
	if cfg == nil {
		cfg = testBankingConfig()
	}

	h := &harness{store: store, cfg: cfg}
	auditLogger := audit.NewLoggerWithSink(func(e audit.Event) {
		h.mu.Lock()
		h.events = append(h.events, e)
		h.mu.Unlock()
	})

	h.ledger = NewLedgerService(store, auditLogger)
	h.transactions = NewTransactionService(store, h.ledger, NewReferenceGenerator(cfg.ReferencePrefix), auditLogger, cache)
	sequence := NewSequenceAllocator(store.Counters(), cfg.AccountCounterName, cfg.AccountCounterStart)
	h.accounts = NewAccountService(store, sequence, h.transactions, h.ledger, cfg, auditLogger, cache)
	h.customers = NewCustomerService(store, h.accounts, testAuthConfig())
	h.banking = NewBankingService(h.accounts, h.transactions, h.customers)
	return h
}

// openAccount registers a customer directly in the store and opens one funded account.
func (h *harness) openAccount(t *testing.T, customerID, name string) *models.Account {
	t.Helper()
	ctx := context.Background()
	if _, err := h.store.Customers().GetByID(ctx, customerID); err != nil {
		require.NoError(t, h.store.Customers().Create(ctx, &models.Customer{
			ID: customerID, Name: name, Email: customerID + "@example.com", PasswordHash: "x$y",
		}))
	}
	account, err := h.accounts.CreateAccount(ctx, customerID)
	require.NoError(t, err)
	return account
}

func (h *harness) balance(t *testing.T, accountNumber string) models.Balance {
	t.Helper()
	b, err := h.ledger.Balance(context.Background(), accountNumber)
	require.NoError(t, err)
	return b
}

func (h *harness) eventTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.EventType)
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
