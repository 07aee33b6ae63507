package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeFunding  TransactionType = "FUNDING"
)

type TransactionStatus string

const (
	StatusNew                  TransactionStatus = "NEW"
	StatusPending              TransactionStatus = "PENDING"
	StatusAwaitingConfirmation TransactionStatus = "AWAITING_CONFIRMATION"
	StatusOngoing              TransactionStatus = "ONGOING"
	StatusSuccess              TransactionStatus = "SUCCESS"
	StatusFailed               TransactionStatus = "FAILED"
	StatusReversed             TransactionStatus = "REVERSED"
)

// NonReservingStatuses never hold funds against the source account's available balance.
var NonReservingStatuses = []TransactionStatus{StatusNew, StatusSuccess, StatusFailed, StatusReversed}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusAwaitingConfirmation, StatusOngoing,
		StatusSuccess, StatusFailed, StatusReversed:
		return true
	}
	return false
}

// Reserves reports whether a transaction in this status is in flight.
func (s TransactionStatus) Reserves() bool {
	for _, n := range NonReservingStatuses {
		if s == n {
			return false
		}
	}
	return s.Valid()
}

func (s TransactionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusReversed
}

// CanTransitionTo enforces the transaction lifecycle. SUCCESS may only move to
// REVERSED; FAILED and REVERSED are final; in-flight statuses never go back to
// NEW or PENDING.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s == next || !next.Valid() {
		return false
	}
	switch s {
	case StatusSuccess:
		return next == StatusReversed
	case StatusFailed, StatusReversed:
		return false
	}
	return next != StatusNew && next != StatusPending
}

// Transaction is a transfer or funding record. Reference is assigned once at creation.
type Transaction struct {
	Reference                string            `json:"reference" db:"reference"`
	SourceAccountNumber      string            `json:"sourceAccountNumber" db:"source_account_number"`
	DestinationAccountNumber string            `json:"destinationAccountNumber" db:"destination_account_number"`
	Amount                   decimal.Decimal   `json:"amount" db:"amount"`
	Narration                string            `json:"narration" db:"narration"`
	TransactionType          TransactionType   `json:"transactionType" db:"transaction_type"`
	TransactionStatus        TransactionStatus `json:"transactionStatus" db:"transaction_status"`
	IsDeleted                bool              `json:"-" db:"is_deleted"`
	CreatedAt                time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt                time.Time         `json:"updatedAt" db:"updated_at"`
}

// TransactionUpdate carries the fields to change. Nil fields are left alone.
// ExpectedStatus, when set, turns the update into a compare-and-set on the
// current status.
type TransactionUpdate struct {
	Status         *TransactionStatus
	Narration      *string
	IsDeleted      *bool
	ExpectedStatus *TransactionStatus
}

func (u TransactionUpdate) Empty() bool {
	return u.Status == nil && u.Narration == nil && u.IsDeleted == nil
}
