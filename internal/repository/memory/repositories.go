package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountRepository struct{ s *Store }

func (r *accountRepository) Create(_ context.Context, account *models.Account) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.accounts[account.AccountNumber]; ok {
			return fmt.Errorf("account %s: %w", account.AccountNumber, repository.ErrConflict)
		}
		if account.ID == "" {
			account.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if account.CreatedAt.IsZero() {
			account.CreatedAt = now
		}
		account.UpdatedAt = now
		st.accounts[account.AccountNumber] = *account
		return nil
	})
}

func (r *accountRepository) GetByNumber(_ context.Context, accountNumber string) (*models.Account, error) {
	var out *models.Account
	err := r.s.read(func(st *state) error {
		a, ok := st.accounts[accountNumber]
		if !ok {
			return repository.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

func (r *accountRepository) ListByCustomer(_ context.Context, customerID string) ([]models.Account, error) {
	out := []models.Account{}
	err := r.s.read(func(st *state) error {
		for _, a := range st.accounts {
			if a.CustomerID == customerID {
				out = append(out, a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, err
}

func (r *accountRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	accounts, err := r.ListByCustomer(ctx, customerID)
	return len(accounts), err
}

type counterRepository struct{ s *Store }

func (r *counterRepository) Increment(_ context.Context, name string, start int64) (int64, error) {
	var seq int64
	err := r.s.write(func(st *state) error {
		cur, ok := st.counters[name]
		if !ok {
			cur = start
		}
		seq = cur + 1
		st.counters[name] = seq
		return nil
	})
	return seq, err
}

type transactionRepository struct{ s *Store }

func (r *transactionRepository) Create(_ context.Context, tx *models.Transaction) error {
	return r.s.write(func(st *state) error {
		if _, ok := st.transactions[tx.Reference]; ok {
			return fmt.Errorf("transaction %s: %w", tx.Reference, repository.ErrConflict)
		}
		now := time.Now().UTC()
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = now
		}
		tx.UpdatedAt = now
		st.transactions[tx.Reference] = *tx
		return nil
	})
}

func (r *transactionRepository) GetByReference(_ context.Context, reference string) (*models.Transaction, error) {
	var out *models.Transaction
	err := r.s.read(func(st *state) error {
		tx, ok := st.transactions[reference]
		if !ok {
			return repository.ErrNotFound
		}
		out = &tx
		return nil
	})
	return out, err
}

func (r *transactionRepository) Update(_ context.Context, reference string, u models.TransactionUpdate) (*models.Transaction, error) {
	var out *models.Transaction
	err := r.s.write(func(st *state) error {
		tx, ok := st.transactions[reference]
		if !ok {
			return repository.ErrNotFound
		}
		if u.ExpectedStatus != nil && tx.TransactionStatus != *u.ExpectedStatus {
			return fmt.Errorf("transaction %s is no longer %s: %w", reference, *u.ExpectedStatus, repository.ErrConflict)
		}
		if u.Empty() {
			out = &tx
			return nil
		}
		if u.Status != nil {
			tx.TransactionStatus = *u.Status
		}
		if u.Narration != nil {
			tx.Narration = *u.Narration
		}
		if u.IsDeleted != nil {
			tx.IsDeleted = *u.IsDeleted
		}
		tx.UpdatedAt = time.Now().UTC()
		st.transactions[reference] = tx
		out = &tx
		return nil
	})
	return out, err
}

func (r *transactionRepository) SumBySourceExcludingStatuses(_ context.Context, accountNumber string, excluded []models.TransactionStatus) (decimal.Decimal, error) {
	skip := make(map[models.TransactionStatus]bool, len(excluded))
	for _, s := range excluded {
		skip[s] = true
	}

	total := decimal.Zero
	err := r.s.read(func(st *state) error {
		for _, tx := range st.transactions {
			if tx.SourceAccountNumber == accountNumber && !skip[tx.TransactionStatus] {
				total = total.Add(tx.Amount)
			}
		}
		return nil
	})
	return total, err
}

type ledgerRepository struct{ s *Store }

func (r *ledgerRepository) InsertMany(_ context.Context, entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.s.write(func(st *state) error {
		now := time.Now().UTC()
		for i := range entries {
			if entries[i].ID == "" {
				entries[i].ID = uuid.NewString()
			}
			if entries[i].CreatedAt.IsZero() {
				entries[i].CreatedAt = now
			}
		}
		st.ledger = append(st.ledger, entries...)
		return nil
	})
}

func (r *ledgerRepository) ListByReference(_ context.Context, reference string) ([]models.LedgerEntry, error) {
	out := []models.LedgerEntry{}
	err := r.s.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.Reference == reference && !e.IsDeleted {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

func (r *ledgerRepository) MarkReversed(_ context.Context, reference string) (int64, error) {
	var n int64
	err := r.s.write(func(st *state) error {
		for i := range st.ledger {
			if st.ledger[i].Reference == reference && !st.ledger[i].IsDeleted {
				st.ledger[i].IsReversed = true
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ledgerRepository) Balance(_ context.Context, accountNumber string) (models.Balance, error) {
	b := models.Balance{Credit: decimal.Zero, Debit: decimal.Zero}
	err := r.s.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.AccountNumber == accountNumber && !e.IsDeleted {
				b.Credit = b.Credit.Add(e.Credit)
				b.Debit = b.Debit.Add(e.Debit)
			}
		}
		return nil
	})
	return b, err
}

func (r *ledgerRepository) History(_ context.Context, f models.HistoryFilter) ([]models.LedgerEntry, error) {
	out := []models.LedgerEntry{}
	err := r.s.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.AccountNumber != f.AccountNumber || e.IsDeleted {
				continue
			}
			if f.From != nil && e.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && e.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Newest first; insertion order breaks ties so paging is stable.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return []models.LedgerEntry{}, nil
		}
		end := f.Offset + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[f.Offset:end]
	}
	return out, nil
}

func (r *ledgerRepository) Unbalanced(_ context.Context) ([]models.Imbalance, error) {
	byRef := map[string]*models.Imbalance{}
	err := r.s.read(func(st *state) error {
		for _, e := range st.ledger {
			if e.IsDeleted {
				continue
			}
			im, ok := byRef[e.Reference]
			if !ok {
				im = &models.Imbalance{Reference: e.Reference, Credit: decimal.Zero, Debit: decimal.Zero}
				byRef[e.Reference] = im
			}
			im.Entries++
			im.Credit = im.Credit.Add(e.Credit)
			im.Debit = im.Debit.Add(e.Debit)
		}
		return nil
	})

	var out []models.Imbalance
	for _, im := range byRef {
		if !im.Credit.Equal(im.Debit) || im.Entries%2 != 0 {
			out = append(out, *im)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, err
}

type customerRepository struct{ s *Store }

func (r *customerRepository) Create(_ context.Context, c *models.Customer) error {
	return r.s.write(func(st *state) error {
		for _, existing := range st.customers {
			if existing.Email == c.Email {
				return fmt.Errorf("customer %s: %w", c.Email, repository.ErrConflict)
			}
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepository) GetByID(_ context.Context, id string) (*models.Customer, error) {
	var out *models.Customer
	err := r.s.read(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *customerRepository) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	var out *models.Customer
	err := r.s.read(func(st *state) error {
		for _, c := range st.customers {
			if c.Email == email {
				out = &c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return out, err
}

func (r *customerRepository) UpdateName(_ context.Context, id, name string) (*models.Customer, error) {
	var out *models.Customer
	err := r.s.write(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return repository.ErrNotFound
		}
		c.Name = name
		st.customers[id] = c
		out = &c
		return nil
	})
	return out, err
}
