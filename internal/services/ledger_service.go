package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// LedgerService appends double-entry postings and derives balances from them.
// It holds no state of its own beyond its collaborators.
type LedgerService struct {
	store repository.Store
	audit *audit.Logger
}

func NewLedgerService(store repository.Store, auditLogger *audit.Logger) *LedgerService {
	return &LedgerService{store: store, audit: auditLogger}
}

// bind returns a copy of the service that reads and writes through st.
func (l *LedgerService) bind(st repository.Store) *LedgerService {
	return &LedgerService{store: st, audit: l.audit}
}

// Post writes the debit entry on the source account and the credit entry on
// the destination account in a single batch.
func (l *LedgerService) Post(ctx context.Context, tx *models.Transaction) error {
	if !tx.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	entries := []models.LedgerEntry{
		{
			Reference:       tx.Reference,
			AccountNumber:   tx.SourceAccountNumber,
			Debit:           tx.Amount,
			Credit:          decimal.Zero,
			Narration:       tx.Narration,
			TransactionType: tx.TransactionType,
		},
		{
			Reference:       tx.Reference,
			AccountNumber:   tx.DestinationAccountNumber,
			Credit:          tx.Amount,
			Debit:           decimal.Zero,
			Narration:       tx.Narration,
			TransactionType: tx.TransactionType,
		},
	}

	if err := l.store.Ledger().InsertMany(ctx, entries); err != nil {
		l.audit.LogError(tx.Reference, tx.SourceAccountNumber, err)
		return fmt.Errorf("failed to post %s: %w", tx.Reference, err)
	}

	log.Printf("[LEDGER] Posted %s: %s -> %s amount=%s", tx.Reference, tx.SourceAccountNumber,
		tx.DestinationAccountNumber, tx.Amount)
	l.audit.LogPosting(tx.Reference, tx.SourceAccountNumber, tx.DestinationAccountNumber, tx.Amount,
		string(tx.TransactionType))
	return nil
}

// Reverse cancels the posting for tx.Reference by flagging its entries and
// appending a mirrored pair. Nothing to reverse is not an error.
func (l *LedgerService) Reverse(ctx context.Context, tx *models.Transaction) error {
	entries, err := l.store.Ledger().ListByReference(ctx, tx.Reference)
	if err != nil {
		return fmt.Errorf("failed to load entries for %s: %w", tx.Reference, err)
	}
	if len(entries) == 0 {
		log.Printf("[LEDGER] Nothing to reverse for %s", tx.Reference)
		l.audit.LogReversalNoop(tx.Reference, "no ledger entries")
		return nil
	}

	var originals []models.LedgerEntry
	for _, e := range entries {
		if !e.IsReversed {
			originals = append(originals, e)
		}
	}
	if len(originals) == 0 {
		l.audit.LogReversalNoop(tx.Reference, "already reversed")
		return nil
	}
	if err := checkBalanced(tx.Reference, originals); err != nil {
		l.audit.LogError(tx.Reference, tx.SourceAccountNumber, err)
		return err
	}

	mirrors := make([]models.LedgerEntry, 0, len(originals))
	for _, e := range originals {
		mirrors = append(mirrors, e.Mirror())
	}

	var flagged int64
	err = l.store.WithinTx(ctx, func(st repository.Store) error {
		n, err := st.Ledger().MarkReversed(ctx, tx.Reference)
		if err != nil {
			return err
		}
		flagged = n
		return st.Ledger().InsertMany(ctx, mirrors)
	})
	if err != nil {
		l.audit.LogError(tx.Reference, tx.SourceAccountNumber, err)
		return fmt.Errorf("failed to reverse %s: %w", tx.Reference, err)
	}

	log.Printf("[LEDGER] Reversed %s (%d entries flagged)", tx.Reference, flagged)
	l.audit.LogReversal(tx.Reference, flagged, len(mirrors))
	return nil
}

// Balance sums credit and debit over the account's live entries.
func (l *LedgerService) Balance(ctx context.Context, accountNumber string) (models.Balance, error) {
	b, err := l.store.Ledger().Balance(ctx, accountNumber)
	if err != nil {
		return models.Balance{}, fmt.Errorf("failed to get balance for %s: %w", accountNumber, err)
	}
	return b, nil
}

func (l *LedgerService) History(ctx context.Context, filter models.HistoryFilter) ([]models.LedgerEntry, error) {
	entries, err := l.store.Ledger().History(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for %s: %w", filter.AccountNumber, err)
	}
	return entries, nil
}

// Unbalanced lists references whose entries do not form balanced pairs.
func (l *LedgerService) Unbalanced(ctx context.Context) ([]models.Imbalance, error) {
	return l.store.Ledger().Unbalanced(ctx)
}

func checkBalanced(reference string, entries []models.LedgerEntry) error {
	credit, debit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		credit = credit.Add(e.Credit)
		debit = debit.Add(e.Debit)
	}
	if len(entries)%2 != 0 || !credit.Equal(debit) {
		return fmt.Errorf("%w: %s has %d entries (credit %s, debit %s)",
			ErrPartialPosting, reference, len(entries), credit, debit)
	}
	return nil
}

// ParseDateRange turns optional from/to strings into inclusive bounds. Plain
// dates cover the whole day; RFC 3339 timestamps are taken as given.
func ParseDateRange(fromDate, toDate string) (*time.Time, *time.Time, error) {
	from, err := parseBound(fromDate, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseBound(toDate, true)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ValidationError("fromDate must not be after toDate")
	}
	return from, to, nil
}

func parseBound(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	d, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, ValidationError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", value))
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return &d, nil
}
