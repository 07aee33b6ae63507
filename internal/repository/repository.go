// Package repository declares the persistence capabilities the ledger core
// depends on. Implementations live in postgres (production) and memory (tests).
package repository

import (
	"context"
	"errors"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflict")
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Account, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
}

// CounterRepository hands out values from named monotonic sequences.
type CounterRepository interface {
	// Increment atomically bumps the named counter and returns the new value.
	// A counter that does not exist yet is seeded at start, so the first value is start+1.
	Increment(ctx context.Context, name string, start int64) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	// Update returns ErrNotFound for an unknown reference and ErrConflict when
	// ExpectedStatus is set and no longer matches.
	Update(ctx context.Context, reference string, update models.TransactionUpdate) (*models.Transaction, error)
	SumBySourceExcludingStatuses(ctx context.Context, accountNumber string, excluded []models.TransactionStatus) (decimal.Decimal, error)
}

type LedgerRepository interface {
	// InsertMany writes all entries or none.
	InsertMany(ctx context.Context, entries []models.LedgerEntry) error
	ListByReference(ctx context.Context, reference string) ([]models.LedgerEntry, error)
	MarkReversed(ctx context.Context, reference string) (int64, error)
	Balance(ctx context.Context, accountNumber string) (models.Balance, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]models.LedgerEntry, error)
	Unbalanced(ctx context.Context) ([]models.Imbalance, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	// UpdateName returns ErrNotFound for an unknown id.
	UpdateName(ctx context.Context, id, name string) (*models.Customer, error)
}

// Store groups the repositories. WithinTx runs fn against a store whose
// writes commit together; calling WithinTx on a store that is already inside a
// transaction reuses it.
type Store interface {
	Accounts() AccountRepository
	Counters() CounterRepository
	Transactions() TransactionRepository
	Ledger() LedgerRepository
	Customers() CustomerRepository
	WithinTx(ctx context.Context, fn func(Store) error) error
}
