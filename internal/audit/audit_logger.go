// Package audit writes one JSON line per ledger-affecting event.
package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPosting        = "POSTING"
	EventReversal       = "REVERSAL"
	EventReversalNoop   = "REVERSAL_NOOP"
	EventStatusChange   = "STATUS_CHANGE"
	EventAccountOpened  = "ACCOUNT_OPENED"
	EventPartialPosting = "PARTIAL_POSTING"
	EventError          = "ERROR"
)

type Event struct {
	Timestamp     time.Time         `json:"timestamp"`
	EventType     string            `json:"event_type"`
	Reference     string            `json:"reference,omitempty"`
	AccountNumber string            `json:"account_number,omitempty"`
	Amount        string            `json:"amount,omitempty"`
	Status        string            `json:"status"`
	Details       map[string]string `json:"details,omitempty"`
}

type Logger struct {
	sink func(Event)
}

func NewLogger() *Logger {
	return &Logger{sink: writeLog}
}

// NewLoggerWithSink routes events to sink instead of the process log.
func NewLoggerWithSink(sink func(Event)) *Logger {
	return &Logger{sink: sink}
}

func (a *Logger) LogPosting(reference, source, destination string, amount decimal.Decimal, txType string) {
	a.emit(Event{
		EventType: EventPosting,
		Reference: reference,
		Amount:    amount.String(),
		Status:    "SUCCESS",
		Details: map[string]string{
			"source":           source,
			"destination":      destination,
			"transaction_type": txType,
		},
	})
}

func (a *Logger) LogReversal(reference string, flagged int64, mirrored int) {
	a.emit(Event{
		EventType: EventReversal,
		Reference: reference,
		Status:    "SUCCESS",
		Details: map[string]string{
			"flagged":  decimal.NewFromInt(flagged).String(),
			"mirrored": decimal.NewFromInt(int64(mirrored)).String(),
		},
	})
}

func (a *Logger) LogReversalNoop(reference, reason string) {
	a.emit(Event{
		EventType: EventReversalNoop,
		Reference: reference,
		Status:    "SKIPPED",
		Details:   map[string]string{"reason": reason},
	})
}

func (a *Logger) LogStatusChange(reference, from, to string) {
	a.emit(Event{
		EventType: EventStatusChange,
		Reference: reference,
		Status:    to,
		Details:   map[string]string{"from": from},
	})
}

func (a *Logger) LogAccountOpened(accountNumber, customerID string, openingBalance decimal.Decimal) {
	a.emit(Event{
		EventType:     EventAccountOpened,
		AccountNumber: accountNumber,
		Amount:        openingBalance.String(),
		Status:        "SUCCESS",
		Details:       map[string]string{"customer_id": customerID},
	})
}

func (a *Logger) LogPartialPosting(reference string, entries int, credit, debit decimal.Decimal) {
	a.emit(Event{
		EventType: EventPartialPosting,
		Reference: reference,
		Status:    "UNBALANCED",
		Details: map[string]string{
			"entries": decimal.NewFromInt(int64(entries)).String(),
			"credit":  credit.String(),
			"debit":   debit.String(),
		},
	})
}

func (a *Logger) LogError(reference, accountNumber string, err error) {
	a.emit(Event{
		EventType:     EventError,
		Reference:     reference,
		AccountNumber: accountNumber,
		Status:        "FAILED",
		Details:       map[string]string{"error": err.Error()},
	})
}

func (a *Logger) emit(e Event) {
	if a == nil || a.sink == nil {
		return
	}
	e.Timestamp = time.Now().UTC()
	a.sink(e)
}

func writeLog(e Event) {
	data, _ := json.Marshal(e)
	log.Printf("AUDIT: %s", string(data))
}
