package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const transactionColumns = "reference, source_account_number, destination_account_number, amount, narration, " +
	"transaction_type, transaction_status, is_deleted, created_at, updated_at"

type transactionRepository struct {
	q DBTX
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tx.Reference, tx.SourceAccountNumber, tx.DestinationAccountNumber, tx.Amount, tx.Narration,
		string(tx.TransactionType), string(tx.TransactionStatus), tx.IsDeleted, tx.CreatedAt, tx.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("transaction %s: %w", tx.Reference, repository.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE reference = $1`, reference)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, reference string, u models.TransactionUpdate) (*models.Transaction, error) {
	if u.Empty() {
		return r.GetByReference(ctx, reference)
	}

	args := []any{reference}
	sets := make([]string, 0, 4)
	if u.Status != nil {
		args = append(args, string(*u.Status))
		sets = append(sets, fmt.Sprintf("transaction_status = $%d", len(args)))
	}
	if u.Narration != nil {
		args = append(args, *u.Narration)
		sets = append(sets, fmt.Sprintf("narration = $%d", len(args)))
	}
	if u.IsDeleted != nil {
		args = append(args, *u.IsDeleted)
		sets = append(sets, fmt.Sprintf("is_deleted = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE transactions SET ` + strings.Join(sets, ", ") + ` WHERE reference = $1`
	if u.ExpectedStatus != nil {
		args = append(args, string(*u.ExpectedStatus))
		query += fmt.Sprintf(" AND transaction_status = $%d", len(args))
	}
	query += ` RETURNING ` + transactionColumns

	tx, err := scanTransaction(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		if u.ExpectedStatus == nil {
			return nil, repository.ErrNotFound
		}
		// Distinguish a missing row from a lost compare-and-set.
		if _, getErr := r.GetByReference(ctx, reference); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("transaction %s is no longer %s: %w", reference, *u.ExpectedStatus, repository.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

func (r *transactionRepository) SumBySourceExcludingStatuses(ctx context.Context, accountNumber string, excluded []models.TransactionStatus) (decimal.Decimal, error) {
	statuses := make([]string, len(excluded))
	for i, s := range excluded {
		statuses[i] = string(s)
	}

	var total decimal.Decimal
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE source_account_number = $1 AND NOT (transaction_status = ANY($2))`,
		accountNumber, pq.Array(statuses)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending transactions: %w", err)
	}
	return total, nil
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	var (
		tx       models.Transaction
		txType   string
		txStatus string
	)
	err := s.Scan(&tx.Reference, &tx.SourceAccountNumber, &tx.DestinationAccountNumber, &tx.Amount, &tx.Narration,
		&txType, &txStatus, &tx.IsDeleted, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.TransactionType = models.TransactionType(txType)
	tx.TransactionStatus = models.TransactionStatus(txStatus)
	return &tx, nil
}
