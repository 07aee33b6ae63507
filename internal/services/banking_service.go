package services

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/django102/mono-test-api/internal/models"
	"github.com/shopspring/decimal"
)

// BankingService is the boundary of the ledger core. Every method returns a
// Result; no error escapes it.
type BankingService struct {
	accounts     *AccountService
	transactions *TransactionService
	customers    *CustomerService
}

func NewBankingService(accounts *AccountService, transactions *TransactionService, customers *CustomerService) *BankingService {
	return &BankingService{accounts: accounts, transactions: transactions, customers: customers}
}

func (b *BankingService) CreateAccount(ctx context.Context, customerID string) Result[*models.Account] {
	account, err := b.accounts.CreateAccount(ctx, customerID)
	if err != nil {
		return Failure[*models.Account](err)
	}
	return Ok(http.StatusCreated, "Account successfully created", account)
}

func (b *BankingService) AccountsOf(ctx context.Context, customerID string) Result[[]models.Account] {
	if customerID == "" {
		return Failure[[]models.Account](ErrMissingCustomer)
	}
	accounts, err := b.accounts.AccountsOf(ctx, customerID)
	if err != nil {
		return Failure[[]models.Account](err)
	}
	return Ok(http.StatusOK, "Accounts retrieved", accounts)
}

func (b *BankingService) GetAccount(ctx context.Context, accountNumber string) Result[*models.AccountInfo] {
	info, err := b.accounts.GetAccount(ctx, accountNumber)
	if err != nil {
		return Failure[*models.AccountInfo](err)
	}
	return Ok(http.StatusOK, "Account information found", info)
}

func (b *BankingService) GetAccountHistory(ctx context.Context, accountNumber string, q HistoryQuery) Result[*models.HistoryPage] {
	page, err := b.accounts.GetAccountHistory(ctx, accountNumber, q)
	if err != nil {
		return Failure[*models.HistoryPage](err)
	}
	return Ok(http.StatusOK, "Transaction history successfully retrieved", page)
}

func (b *BankingService) InitiateTransfer(ctx context.Context, source, destination string, amount decimal.Decimal) Result[*models.Transaction] {
	tx, err := b.transactions.InitiateTransfer(ctx, source, destination, amount)
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	return Ok(http.StatusCreated, "Transaction created. Please enter OTP", tx)
}

// InitiateCustomerTransfer is InitiateTransfer restricted to source accounts owned by customerID.
func (b *BankingService) InitiateCustomerTransfer(ctx context.Context, customerID, source, destination string, amount decimal.Decimal) Result[*models.Transaction] {
	account, err := b.accounts.lookup(ctx, source)
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	if account.CustomerID != customerID {
		return Failure[*models.Transaction](ErrNotAccountOwner)
	}
	return b.InitiateTransfer(ctx, source, destination, amount)
}

func (b *BankingService) UpdateTransfer(ctx context.Context, reference string, status models.TransactionStatus) Result[*models.Transaction] {
	tx, err := b.transactions.SettleTransfer(ctx, reference, status)
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	return Ok(http.StatusOK, "Transaction successfully updated", tx)
}

// UpdateCustomerTransfer is UpdateTransfer restricted to transfers whose source
// account is owned by customerID. Transactions drawn on accounts with no row,
// such as GL funding, belong to nobody.
func (b *BankingService) UpdateCustomerTransfer(ctx context.Context, customerID, reference string, status models.TransactionStatus) Result[*models.Transaction] {
	tx, err := b.transactions.Fetch(ctx, reference)
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	account, err := b.accounts.lookup(ctx, tx.SourceAccountNumber)
	if errors.Is(err, ErrAccountNotFound) {
		return Failure[*models.Transaction](ErrNotAccountOwner)
	}
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	if account.CustomerID != customerID {
		log.Printf("[TRANSFER] Customer %s may not update %s", customerID, reference)
		return Failure[*models.Transaction](ErrNotAccountOwner)
	}
	return b.UpdateTransfer(ctx, reference, status)
}

func (b *BankingService) GetTransfer(ctx context.Context, reference string) Result[*models.Transaction] {
	tx, err := b.transactions.Fetch(ctx, reference)
	if err != nil {
		return Failure[*models.Transaction](err)
	}
	return Ok(http.StatusOK, "Transaction found", tx)
}

func (b *BankingService) RegisterCustomer(ctx context.Context, req RegisterRequest) Result[*Registration] {
	reg, err := b.customers.Register(ctx, req)
	if err != nil {
		return Failure[*Registration](err)
	}
	return Ok(http.StatusCreated, "Customer successfully created", reg)
}

func (b *BankingService) UpdateCustomer(ctx context.Context, customerID string, req UpdateCustomerRequest) Result[*models.Customer] {
	customer, err := b.customers.Update(ctx, customerID, req)
	if err != nil {
		return Failure[*models.Customer](err)
	}
	return Ok(http.StatusOK, "Customer updated successfully", customer)
}

func (b *BankingService) Login(ctx context.Context, req LoginRequest) Result[*AuthResponse] {
	resp, err := b.customers.Login(ctx, req)
	if err != nil {
		return Failure[*AuthResponse](err)
	}
	return Ok(http.StatusOK, "Login successful", resp)
}
