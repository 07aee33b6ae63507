package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	fundingNarration        = "Funding for account creation"
	transferNarrationPrefix = "Funds transfer to "
)

// TransactionService owns transaction records and drives ledger postings when
// a transfer settles.
type TransactionService struct {
	store  repository.Store
	ledger *LedgerService
	refs   *ReferenceGenerator
	audit  *audit.Logger
	cache  AccountInfoCache
}

func NewTransactionService(store repository.Store, ledger *LedgerService, refs *ReferenceGenerator,
	auditLogger *audit.Logger, cache AccountInfoCache) *TransactionService {
	return &TransactionService{
		store:  store,
		ledger: ledger,
		refs:   refs,
		audit:  auditLogger,
		cache:  cacheOrNoop(cache),
	}
}

func (t *TransactionService) bind(st repository.Store) *TransactionService {
	c := *t
	c.store = st
	c.ledger = t.ledger.bind(st)
	return &c
}

// Create assigns a fresh reference and persists draft. Balance is not checked here.
func (t *TransactionService) Create(ctx context.Context, draft models.Transaction) (*models.Transaction, error) {
	if !draft.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if draft.TransactionStatus == "" {
		draft.TransactionStatus = models.StatusNew
	}
	draft.Reference = t.refs.Generate()

	if err := t.store.Transactions().Create(ctx, &draft); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &draft, nil
}

func (t *TransactionService) Fetch(ctx context.Context, reference string) (*models.Transaction, error) {
	tx, err := t.store.Transactions().GetByReference(ctx, reference)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", reference, ErrTransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", reference, err)
	}
	return tx, nil
}

// Update persists the given field changes and returns the updated record.
func (t *TransactionService) Update(ctx context.Context, reference string, update models.TransactionUpdate) (*models.Transaction, error) {
	tx, err := t.store.Transactions().Update(ctx, reference, update)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", reference, ErrTransactionNotFound)
	case errors.Is(err, repository.ErrConflict):
		return nil, fmt.Errorf("%s: %w", reference, ErrSettlementRace)
	case err != nil:
		return nil, fmt.Errorf("failed to update transaction %s: %w", reference, err)
	}
	return tx, nil
}

// PendingDeduction is the total of the account's outgoing transactions that
// are still in flight.
func (t *TransactionService) PendingDeduction(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	total, err := t.store.Transactions().SumBySourceExcludingStatuses(ctx, accountNumber, models.NonReservingStatuses)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute pending deduction for %s: %w", accountNumber, err)
	}
	return total, nil
}

// AvailableBalance is credit - debit - pending deduction.
func (t *TransactionService) AvailableBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	balance, err := t.ledger.Balance(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	pending, err := t.PendingDeduction(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Net().Sub(pending), nil
}

// InitiateTransfer checks the available balance and records a PENDING
// transfer. The check is advisory: two transfers racing from the same account
// can both pass before either is reserved.
func (t *TransactionService) InitiateTransfer(ctx context.Context, source, destination string, amount decimal.Decimal) (*models.Transaction, error) {
	if source == "" || destination == "" {
		return nil, ValidationError("Source and destination accounts are required")
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if source == destination {
		return nil, ErrSameAccount
	}

	src, err := t.account(ctx, source)
	if err != nil {
		return nil, err
	}
	if !src.IsEnabled {
		return nil, fmt.Errorf("%s: %w", source, ErrAccountDisabled)
	}
	if _, err := t.account(ctx, destination); err != nil {
		return nil, err
	}

	available, err := t.AvailableBalance(ctx, source)
	if err != nil {
		return nil, err
	}
	if available.LessThan(amount) {
		log.Printf("[TRANSFER] Rejected %s from %s: available %s", amount, source, available)
		return nil, fmt.Errorf("transfer of %s from %s: %w", amount, source, ErrInsufficientBalance)
	}

	tx, err := t.Create(ctx, models.Transaction{
		SourceAccountNumber:      source,
		DestinationAccountNumber: destination,
		Amount:                   amount,
		Narration:                transferNarrationPrefix + destination,
		TransactionType:          models.TransactionTypeTransfer,
		TransactionStatus:        models.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[TRANSFER] Created %s: %s -> %s amount=%s", tx.Reference, source, destination, amount)
	return tx, nil
}

// SettleTransfer moves a transaction to status. SUCCESS posts the pair,
// REVERSED reverses it; the status change and its ledger effect commit together.
func (t *TransactionService) SettleTransfer(ctx context.Context, reference string, status models.TransactionStatus) (*models.Transaction, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := t.Fetch(ctx, reference)
	if err != nil {
		return nil, err
	}
	from := current.TransactionStatus
	if !from.CanTransitionTo(status) {
		return nil, fmt.Errorf("%s %s -> %s: %w", reference, from, status, ErrInvalidTransition)
	}

	var updated *models.Transaction
	err = t.store.WithinTx(ctx, func(st repository.Store) error {
		bound := t.bind(st)
		tx, err := bound.Update(ctx, reference, models.TransactionUpdate{Status: &status, ExpectedStatus: &from})
		if err != nil {
			return err
		}
		updated = tx

		switch status {
		case models.StatusSuccess:
			return bound.ledger.Post(ctx, tx)
		case models.StatusReversed:
			return bound.ledger.Reverse(ctx, tx)
		}
		return nil
	})
	if err != nil {
		log.Printf("[TRANSFER] Settlement of %s to %s failed: %v", reference, status, err)
		return nil, err
	}

	log.Printf("[TRANSFER] %s moved %s -> %s", reference, from, status)
	t.audit.LogStatusChange(reference, string(from), string(status))
	if status == models.StatusSuccess || status == models.StatusReversed {
		t.cache.Invalidate(ctx, updated.SourceAccountNumber, updated.DestinationAccountNumber)
	}
	return updated, nil
}

// Fund records a FUNDING transaction that settles immediately and posts it.
func (t *TransactionService) Fund(ctx context.Context, glAccount, destination string, amount decimal.Decimal) (*models.Transaction, error) {
	var funded *models.Transaction
	err := t.store.WithinTx(ctx, func(st repository.Store) error {
		bound := t.bind(st)
		tx, err := bound.Create(ctx, models.Transaction{
			SourceAccountNumber:      glAccount,
			DestinationAccountNumber: destination,
			Amount:                   amount,
			Narration:                fundingNarration,
			TransactionType:          models.TransactionTypeFunding,
			TransactionStatus:        models.StatusSuccess,
		})
		if err != nil {
			return err
		}
		funded = tx
		return bound.ledger.Post(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return funded, nil
}

func (t *TransactionService) account(ctx context.Context, accountNumber string) (*models.Account, error) {
	account, err := t.store.Accounts().GetByNumber(ctx, accountNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", accountNumber, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountNumber, err)
	}
	return account, nil
}
