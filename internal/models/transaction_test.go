package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TransactionStatus
		want     bool
	}{
		{StatusPending, StatusSuccess, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusReversed, true},
		{StatusPending, StatusOngoing, true},
		{StatusPending, StatusAwaitingConfirmation, true},
		{StatusNew, StatusSuccess, true},
		{StatusNew, StatusPending, false},
		{StatusOngoing, StatusSuccess, true},
		{StatusAwaitingConfirmation, StatusFailed, true},
		{StatusOngoing, StatusPending, false},
		{StatusSuccess, StatusReversed, true},
		{StatusSuccess, StatusFailed, false},
		{StatusSuccess, StatusSuccess, false},
		{StatusFailed, StatusSuccess, false},
		{StatusFailed, StatusReversed, false},
		{StatusReversed, StatusSuccess, false},
		{StatusReversed, StatusReversed, false},
		{StatusPending, TransactionStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransactionStatus_Reserves(t *testing.T) {
	reserving := []TransactionStatus{StatusPending, StatusOngoing, StatusAwaitingConfirmation}
	for _, s := range reserving {
		assert.True(t, s.Reserves(), s)
	}
	for _, s := range NonReservingStatuses {
		assert.False(t, s.Reserves(), s)
	}
	assert.False(t, TransactionStatus("").Reserves())
}

func TestLedgerEntry_Mirror(t *testing.T) {
	entry := LedgerEntry{
		ID:              "e1",
		Reference:       "mono-1",
		AccountNumber:   "1000000001",
		Debit:           mustDecimal("250.50"),
		Narration:       "Funds transfer to 1000000002",
		TransactionType: TransactionTypeTransfer,
	}

	mirror := entry.Mirror()

	assert.Empty(t, mirror.ID)
	assert.Equal(t, entry.Reference, mirror.Reference)
	assert.Equal(t, entry.AccountNumber, mirror.AccountNumber)
	assert.True(t, mirror.Credit.Equal(entry.Debit))
	assert.True(t, mirror.Debit.IsZero())
	assert.True(t, mirror.IsReversed)
}
