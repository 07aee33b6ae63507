package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one side of a double-entry posting. Entries are append-only;
// only IsReversed is ever flipped after insertion.
type LedgerEntry struct {
	ID              string          `json:"id" db:"id"`
	Reference       string          `json:"reference" db:"reference"`
	AccountNumber   string          `json:"accountNumber" db:"account_number"`
	Credit          decimal.Decimal `json:"credit" db:"credit"`
	Debit           decimal.Decimal `json:"debit" db:"debit"`
	Narration       string          `json:"narration" db:"narration"`
	TransactionType TransactionType `json:"transactionType" db:"transaction_type"`
	IsReversed      bool            `json:"isReversed" db:"is_reversed"`
	IsDeleted       bool            `json:"-" db:"is_deleted"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// Mirror returns the compensating entry for e: debit and credit swapped, flagged reversed.
func (e LedgerEntry) Mirror() LedgerEntry {
	return LedgerEntry{
		Reference:       e.Reference,
		AccountNumber:   e.AccountNumber,
		Credit:          e.Debit,
		Debit:           e.Credit,
		Narration:       e.Narration,
		TransactionType: e.TransactionType,
		IsReversed:      true,
	}
}

type Balance struct {
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
}

// Net is credit minus debit.
func (b Balance) Net() decimal.Decimal {
	return b.Credit.Sub(b.Debit)
}

// HistoryFilter bounds a ledger history query. From and To are inclusive.
type HistoryFilter struct {
	AccountNumber string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

type HistoryPage struct {
	Entries []LedgerEntry `json:"entries"`
	Page    int           `json:"page"`
	Size    int           `json:"size"`
}

// Imbalance describes a reference whose entries do not net to zero.
type Imbalance struct {
	Reference string          `json:"reference"`
	Entries   int             `json:"entries"`
	Credit    decimal.Decimal `json:"credit"`
	Debit     decimal.Decimal `json:"debit"`
}
