package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a customer-owned ledger account. AccountNumber is immutable once
// assigned; accounts are disabled, never deleted.
type Account struct {
	ID            string    `json:"id" db:"id"`
	CustomerID    string    `json:"customerId" db:"customer_id"`
	AccountNumber string    `json:"accountNumber" db:"account_number"`
	IsEnabled     bool      `json:"isEnabled" db:"is_enabled"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// AccountInfo is the public view of an account.
type AccountInfo struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	IsEnabled     bool            `json:"isEnabled"`
	Balance       decimal.Decimal `json:"balance"`
}

type Counter struct {
	Name string `json:"name" db:"name"`
	Seq  int64  `json:"seq" db:"seq"`
}
