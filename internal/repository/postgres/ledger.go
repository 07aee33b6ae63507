package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/google/uuid"
)

const ledgerColumns = "id, reference, account_number, credit, debit, narration, transaction_type, " +
	"is_reversed, is_deleted, created_at"

type ledgerRepository struct {
	q DBTX
}

// InsertMany writes every entry in one multi-row INSERT, which postgres applies atomically.
func (r *ledgerRepository) InsertMany(ctx context.Context, entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	const width = 10
	now := time.Now().UTC()
	placeholders := make([]string, 0, len(entries))
	args := make([]any, 0, len(entries)*width)
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}

		base := i * width
		ph := make([]string, width)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ", ")+")")
		args = append(args, e.ID, e.Reference, e.AccountNumber, e.Credit, e.Debit, e.Narration,
			string(e.TransactionType), e.IsReversed, e.IsDeleted, e.CreatedAt)
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO ledger_entries (`+ledgerColumns+`) VALUES `+strings.Join(placeholders, ", "), args...)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListByReference(ctx context.Context, reference string) ([]models.LedgerEntry, error) {
	return r.list(ctx,
		`SELECT `+ledgerColumns+` FROM ledger_entries WHERE reference = $1 AND is_deleted = FALSE ORDER BY created_at, id`,
		reference)
}

func (r *ledgerRepository) MarkReversed(ctx context.Context, reference string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE ledger_entries SET is_reversed = TRUE WHERE reference = $1 AND is_deleted = FALSE`, reference)
	if err != nil {
		return 0, fmt.Errorf("failed to flag ledger entries as reversed: %w", err)
	}
	return res.RowsAffected()
}

func (r *ledgerRepository) Balance(ctx context.Context, accountNumber string) (models.Balance, error) {
	var b models.Balance
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(credit), 0), COALESCE(SUM(debit), 0)
		 FROM ledger_entries WHERE account_number = $1 AND is_deleted = FALSE`, accountNumber).
		Scan(&b.Credit, &b.Debit)
	if err != nil {
		return models.Balance{}, fmt.Errorf("failed to compute balance: %w", err)
	}
	return b, nil
}

func (r *ledgerRepository) History(ctx context.Context, f models.HistoryFilter) ([]models.LedgerEntry, error) {
	args := []any{f.AccountNumber}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE account_number = $1 AND is_deleted = FALSE`
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return r.list(ctx, query, args...)
}

func (r *ledgerRepository) Unbalanced(ctx context.Context) ([]models.Imbalance, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT reference, COUNT(*), SUM(credit), SUM(debit) FROM ledger_entries
		 WHERE is_deleted = FALSE
		 GROUP BY reference
		 HAVING SUM(credit) <> SUM(debit) OR COUNT(*) % 2 <> 0
		 ORDER BY reference`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unbalanced references: %w", err)
	}
	defer rows.Close()

	var out []models.Imbalance
	for rows.Next() {
		var im models.Imbalance
		if err := rows.Scan(&im.Reference, &im.Entries, &im.Credit, &im.Debit); err != nil {
			return nil, fmt.Errorf("failed to scan imbalance: %w", err)
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

func (r *ledgerRepository) list(ctx context.Context, query string, args ...any) ([]models.LedgerEntry, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var (
			e      models.LedgerEntry
			txType string
		)
		if err := rows.Scan(&e.ID, &e.Reference, &e.AccountNumber, &e.Credit, &e.Debit, &e.Narration,
			&txType, &e.IsReversed, &e.IsDeleted, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.TransactionType = models.TransactionType(txType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
