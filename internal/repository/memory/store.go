// Package memory is a mutex-guarded in-memory repository.Store used by tests and
// local runs without a database.
package memory

import (
	"context"
	"sync"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
)

type state struct {
	accounts     map[string]models.Account // by account number
	counters     map[string]int64
	transactions map[string]models.Transaction
	ledger       []models.LedgerEntry
	customers    map[string]models.Customer
}

func newState() *state {
	return &state{
		accounts:     make(map[string]models.Account),
		counters:     make(map[string]int64),
		transactions: make(map[string]models.Transaction),
		customers:    make(map[string]models.Customer),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	c.ledger = append([]models.LedgerEntry(nil), s.ledger...)
	return c
}

type shared struct {
	// txMu serialises writers against open transactions so a rollback never
	// discards a concurrent write.
	txMu sync.Mutex
	mu   sync.Mutex
	data *state
}

type Store struct {
	sh   *shared
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{sh: &shared{data: newState()}}
}

func (s *Store) Accounts() repository.AccountRepository {
	return &accountRepository{s: s}
}

func (s *Store) Counters() repository.CounterRepository {
	return &counterRepository{s: s}
}

func (s *Store) Transactions() repository.TransactionRepository {
	return &transactionRepository{s: s}
}

func (s *Store) Ledger() repository.LedgerRepository {
	return &ledgerRepository{s: s}
}

func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepository{s: s}
}

// WithinTx snapshots the store and restores the snapshot if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.sh.txMu.Lock()
	defer s.sh.txMu.Unlock()

	s.sh.mu.Lock()
	snapshot := s.sh.data.clone()
	s.sh.mu.Unlock()

	if err := fn(&Store{sh: s.sh, inTx: true}); err != nil {
		s.sh.mu.Lock()
		s.sh.data = snapshot
		s.sh.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) read(fn func(*state) error) error {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return fn(s.sh.data)
}

func (s *Store) write(fn func(*state) error) error {
	if !s.inTx {
		s.sh.txMu.Lock()
		defer s.sh.txMu.Unlock()
	}
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return fn(s.sh.data)
}
