package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accountCols     = []string{"id", "customer_id", "account_number", "is_enabled", "created_at", "updated_at"}
	transactionCols = []string{"reference", "source_account_number", "destination_account_number", "amount", "narration",
		"transaction_type", "transaction_status", "is_deleted", "created_at", "updated_at"}
	ledgerCols = []string{"id", "reference", "account_number", "credit", "debit", "narration", "transaction_type",
		"is_reversed", "is_deleted", "created_at"}
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(st repository.Store) error {
			return st.Accounts().Create(ctx, &models.Account{CustomerID: "cust1", AccountNumber: "1000000001", IsEnabled: true})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectRollback()

		boom := errors.New("funding failed")
		err := store.WithinTx(ctx, func(st repository.Store) error {
			if err := st.Accounts().Create(ctx, &models.Account{CustomerID: "cust1", AccountNumber: "1000000001"}); err != nil {
				return err
			}
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call reuses the open transaction", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(outer repository.Store) error {
			return outer.WithinTx(ctx, func(inner repository.Store) error {
				assert.Same(t, outer, inner)
				return nil
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCounterRepository_Increment(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO counters").
		WithArgs("accountNumber", int64(1000000001)).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(1000000007)))

	seq, err := store.Counters().Increment(context.Background(), "accountNumber", 1000000000)

	assert.NoError(t, err)
	assert.Equal(t, int64(1000000007), seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("duplicate account number is a conflict", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO accounts").WillReturnError(&pq.Error{Code: "23505"})

		err := store.Accounts().Create(ctx, &models.Account{CustomerID: "cust1", AccountNumber: "1000000001"})

		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("get by number", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE account_number").
			WithArgs("1000000001").
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow("a1", "cust1", "1000000001", true, now, now))

		account, err := store.Accounts().GetByNumber(ctx, "1000000001")

		require.NoError(t, err)
		assert.Equal(t, "cust1", account.CustomerID)
		assert.True(t, account.IsEnabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE account_number").
			WithArgs("999").
			WillReturnRows(sqlmock.NewRows(accountCols))

		_, err := store.Accounts().GetByNumber(ctx, "999")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list and count by customer", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE customer_id").
			WithArgs("cust1").
			WillReturnRows(sqlmock.NewRows(accountCols).
				AddRow("a1", "cust1", "1000000001", true, now, now).
				AddRow("a2", "cust1", "1000000002", true, now, now))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM accounts WHERE customer_id = $1")).
			WithArgs("cust1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		accounts, err := store.Accounts().ListByCustomer(ctx, "cust1")
		require.NoError(t, err)
		assert.Len(t, accounts, 2)

		count, err := store.Accounts().CountByCustomer(ctx, "cust1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	row := func(status string) *sqlmock.Rows {
		return sqlmock.NewRows(transactionCols).AddRow("mono-1", "1000000001", "1000000002", "300.00",
			"Funds transfer to 1000000002", "TRANSFER", status, false, now, now)
	}

	t.Run("create", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO transactions").
			WithArgs("mono-1", "1000000001", "1000000002", sqlmock.AnyArg(), "Funds transfer to 1000000002",
				"TRANSFER", "PENDING", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.Transactions().Create(ctx, &models.Transaction{
			Reference:                "mono-1",
			SourceAccountNumber:      "1000000001",
			DestinationAccountNumber: "1000000002",
			Amount:                   decimal.NewFromInt(300),
			Narration:                "Funds transfer to 1000000002",
			TransactionType:          models.TransactionTypeTransfer,
			TransactionStatus:        models.StatusPending,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("compare-and-set update", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE transactions SET transaction_status = $2, updated_at = NOW() WHERE reference = $1 AND transaction_status = $3")).
			WithArgs("mono-1", "SUCCESS", "PENDING").
			WillReturnRows(row("SUCCESS"))

		status, expected := models.StatusSuccess, models.StatusPending
		tx, err := store.Transactions().Update(ctx, "mono-1", models.TransactionUpdate{Status: &status, ExpectedStatus: &expected})

		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, tx.TransactionStatus)
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(300)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost compare-and-set is a conflict", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE transactions SET").WillReturnRows(sqlmock.NewRows(transactionCols))
		mock.ExpectQuery("SELECT (.+) FROM transactions WHERE reference").
			WithArgs("mono-1").
			WillReturnRows(row("SUCCESS"))

		status, expected := models.StatusSuccess, models.StatusPending
		_, err := store.Transactions().Update(ctx, "mono-1", models.TransactionUpdate{Status: &status, ExpectedStatus: &expected})

		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update of unknown reference", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE transactions SET").WillReturnRows(sqlmock.NewRows(transactionCols))

		status := models.StatusFailed
		_, err := store.Transactions().Update(ctx, "nope", models.TransactionUpdate{Status: &status})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("pending sum excludes non-reserving statuses", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM transactions")).
			WithArgs("1000000001", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("50.00"))

		total, err := store.Transactions().SumBySourceExcludingStatuses(ctx, "1000000001", models.NonReservingStatuses)

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(50)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("pair is written in one statement", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_entries (" + ledgerColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10), ($11,")).
			WillReturnResult(sqlmock.NewResult(0, 2))

		entries := []models.LedgerEntry{
			{Reference: "mono-1", AccountNumber: "1000000001", Debit: decimal.NewFromInt(300)},
			{Reference: "mono-1", AccountNumber: "1000000002", Credit: decimal.NewFromInt(300)},
		}
		err := store.Ledger().InsertMany(ctx, entries)

		require.NoError(t, err)
		assert.NotEmpty(t, entries[0].ID)
		assert.NotEqual(t, entries[0].ID, entries[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed insert surfaces an error", func(t *testing.T) {
		store, mock := newMockStore(t)
		connReset := errors.New("connection reset by peer")
		mock.ExpectExec("INSERT INTO ledger_entries").WillReturnError(connReset)

		err := store.Ledger().InsertMany(ctx, []models.LedgerEntry{{Reference: "mono-1"}})

		assert.ErrorIs(t, err, connReset)
	})

	t.Run("balance", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(credit), 0), COALESCE(SUM(debit), 0)")).
			WithArgs("1000000001").
			WillReturnRows(sqlmock.NewRows([]string{"credit", "debit"}).AddRow("500.00", "100.00"))

		b, err := store.Ledger().Balance(ctx, "1000000001")

		require.NoError(t, err)
		assert.True(t, b.Credit.Equal(decimal.NewFromInt(500)))
		assert.True(t, b.Debit.Equal(decimal.NewFromInt(100)))
		assert.True(t, b.Net().Equal(decimal.NewFromInt(400)))
	})

	t.Run("mark reversed", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("UPDATE ledger_entries SET is_reversed = TRUE").
			WithArgs("mono-1").
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := store.Ledger().MarkReversed(ctx, "mono-1")

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("history with date bounds and paging", func(t *testing.T) {
		store, mock := newMockStore(t)
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta("AND created_at >= $2 AND created_at <= $3 ORDER BY created_at DESC, id LIMIT $4 OFFSET $5")).
			WithArgs("1000000001", from, to, 20, 0).
			WillReturnRows(sqlmock.NewRows(ledgerCols).
				AddRow("e1", "mono-1", "1000000001", "0", "300.00", "Funds transfer to 1000000002", "TRANSFER", false, false, now))

		entries, err := store.Ledger().History(ctx, models.HistoryFilter{
			AccountNumber: "1000000001", From: &from, To: &to, Limit: 20,
		})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.TransactionTypeTransfer, entries[0].TransactionType)
		assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(300)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unbalanced references", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("GROUP BY reference").
			WillReturnRows(sqlmock.NewRows([]string{"reference", "count", "credit", "debit"}).
				AddRow("mono-9", 1, "0", "300.00"))

		out, err := store.Ledger().Unbalanced(ctx)

		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "mono-9", out[0].Reference)
		assert.Equal(t, 1, out[0].Entries)
	})
}

func TestCustomerRepository_GetByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM customers WHERE email").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow("cust1", "Ada Obi", "ada@example.com", "salt$hash", time.Now()))

	c, err := store.Customers().GetByEmail(context.Background(), "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_UpdateName(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the updated row", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE customers SET name = $1 WHERE id = $2 RETURNING")).
			WithArgs("Ada N. Obi", "cust1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
				AddRow("cust1", "Ada N. Obi", "ada@example.com", "salt$hash", time.Now()))

		c, err := store.Customers().UpdateName(ctx, "cust1", "Ada N. Obi")

		require.NoError(t, err)
		assert.Equal(t, "Ada N. Obi", c.Name)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE customers").
			WithArgs("Nobody", "missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

		_, err := store.Customers().UpdateName(ctx, "missing", "Nobody")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
