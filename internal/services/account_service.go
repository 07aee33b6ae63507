package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/config"
	"github.com/django102/mono-test-api/internal/models"
	"github.com/django102/mono-test-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHistoryPage = 1
	defaultHistorySize = 20
	maxHistorySize     = 100
)

type HistoryQuery struct {
	FromDate string
	ToDate   string
	Page     int
	Size     int
}

type AccountService struct {
	store        repository.Store
	sequence     *SequenceAllocator
	transactions *TransactionService
	ledger       *LedgerService
	cfg          *config.Banking
	audit        *audit.Logger
	cache        AccountInfoCache
}

func NewAccountService(store repository.Store, sequence *SequenceAllocator, transactions *TransactionService,
	ledger *LedgerService, cfg *config.Banking, auditLogger *audit.Logger, cache AccountInfoCache) *AccountService {
	return &AccountService{
		store:        store,
		sequence:     sequence,
		transactions: transactions,
		ledger:       ledger,
		cfg:          cfg,
		audit:        auditLogger,
		cache:        cacheOrNoop(cache),
	}
}

// CreateAccount opens and funds a new account for customerID.
//
// The limit check and number allocation run concurrently, so a customer at
// the limit burns one counter value; no account row is written in that case.
// The account row and its funding posting commit together.
func (s *AccountService) CreateAccount(ctx context.Context, customerID string) (*models.Account, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrMissingCustomer
	}

	var (
		overLimit     bool
		accountNumber string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		over, err := s.IsOverLimit(gctx, customerID)
		overLimit = over
		return err
	})
	g.Go(func() error {
		number, err := s.sequence.NextAccountNumber(gctx)
		accountNumber = number
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if overLimit {
		log.Printf("[ACCOUNT] Customer %s is at the account limit, number %s discarded", customerID, accountNumber)
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrMaxAccounts)
	}

	account := &models.Account{
		CustomerID:    customerID,
		AccountNumber: accountNumber,
		IsEnabled:     true,
	}
	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		return s.open(ctx, st, account)
	})
	if err != nil {
		s.audit.LogError("", accountNumber, err)
		return nil, err
	}

	s.opened(account)
	return account, nil
}

// open writes the account row and its opening funding through st.
func (s *AccountService) open(ctx context.Context, st repository.Store, account *models.Account) error {
	if err := st.Accounts().Create(ctx, account); err != nil {
		return fmt.Errorf("failed to persist account %s: %w", account.AccountNumber, err)
	}
	if s.cfg.OpeningBalance.IsPositive() {
		if _, err := s.transactions.bind(st).Fund(ctx, s.cfg.FundingGLAccount, account.AccountNumber, s.cfg.OpeningBalance); err != nil {
			return fmt.Errorf("failed to fund account %s: %w", account.AccountNumber, err)
		}
	}
	return nil
}

func (s *AccountService) opened(account *models.Account) {
	log.Printf("[ACCOUNT] Opened %s for customer %s", account.AccountNumber, account.CustomerID)
	s.audit.LogAccountOpened(account.AccountNumber, account.CustomerID, s.cfg.OpeningBalance)
}

func (s *AccountService) AccountsOf(ctx context.Context, customerID string) ([]models.Account, error) {
	accounts, err := s.store.Accounts().ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for %s: %w", customerID, err)
	}
	return accounts, nil
}

// IsOverLimit reports whether the customer already holds the maximum number of accounts.
func (s *AccountService) IsOverLimit(ctx context.Context, customerID string) (bool, error) {
	count, err := s.store.Accounts().CountByCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("failed to count accounts for %s: %w", customerID, err)
	}
	return count >= s.cfg.MaxAccountsPerCustomer, nil
}

// GetAccount returns the account's public view with the owner's name and net balance.
func (s *AccountService) GetAccount(ctx context.Context, accountNumber string) (*models.AccountInfo, error) {
	if info, ok := s.cache.Get(ctx, accountNumber); ok {
		return info, nil
	}

	account, err := s.lookup(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	customer, err := s.store.Customers().GetByID(ctx, account.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", accountNumber, ErrNoAccountOwner)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load owner of %s: %w", accountNumber, err)
	}

	balance, err := s.ledger.Balance(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	info := &models.AccountInfo{
		AccountNumber: account.AccountNumber,
		AccountName:   customer.Name,
		IsEnabled:     account.IsEnabled,
		Balance:       balance.Net(),
	}
	s.cache.Set(ctx, info)
	return info, nil
}

// GetAccountHistory pages through the account's ledger entries, newest first.
func (s *AccountService) GetAccountHistory(ctx context.Context, accountNumber string, q HistoryQuery) (*models.HistoryPage, error) {
	from, to, err := ParseDateRange(q.FromDate, q.ToDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookup(ctx, accountNumber); err != nil {
		return nil, err
	}

	page, size := q.Page, q.Size
	if page < 1 {
		page = defaultHistoryPage
	}
	if size < 1 {
		size = defaultHistorySize
	}
	if size > maxHistorySize {
		size = maxHistorySize
	}

	entries, err := s.ledger.History(ctx, models.HistoryFilter{
		AccountNumber: accountNumber,
		From:          from,
		To:            to,
		Limit:         size,
		Offset:        (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}
	return &models.HistoryPage{Entries: entries, Page: page, Size: size}, nil
}

func (s *AccountService) lookup(ctx context.Context, accountNumber string) (*models.Account, error) {
	account, err := s.store.Accounts().GetByNumber(ctx, accountNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", accountNumber, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountNumber, err)
	}
	return account, nil
}
