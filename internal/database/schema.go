package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id             UUID PRIMARY KEY,
		customer_id    TEXT NOT NULL,
		account_number CHAR(10) NOT NULL UNIQUE,
		is_enabled     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (customer_id)`,
	`CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		seq  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		reference                  TEXT PRIMARY KEY,
		source_account_number      TEXT NOT NULL,
		destination_account_number TEXT NOT NULL,
		amount                     NUMERIC(20, 2) NOT NULL CHECK (amount > 0),
		narration                  TEXT NOT NULL DEFAULT '',
		transaction_type           TEXT NOT NULL,
		transaction_status         TEXT NOT NULL,
		is_deleted                 BOOLEAN NOT NULL DEFAULT FALSE,
		created_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at                 TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions (source_account_number)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions (transaction_type)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions (transaction_status)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id               UUID PRIMARY KEY,
		reference        TEXT NOT NULL,
		account_number   TEXT NOT NULL,
		credit           NUMERIC(20, 2) NOT NULL DEFAULT 0 CHECK (credit >= 0),
		debit            NUMERIC(20, 2) NOT NULL DEFAULT 0 CHECK (debit >= 0),
		narration        TEXT NOT NULL DEFAULT '',
		transaction_type TEXT NOT NULL,
		is_reversed      BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_account_number ON ledger_entries (account_number, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_reference ON ledger_entries (reference)`,
}

// Migrate applies the schema idempotently in one transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	log.Printf("[DB] Schema up to date (%d statements)", len(schema))
	return nil
}
