// Package jobs holds the background sweeps run by the scheduler.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/models"
)

// ImbalanceSource lists references whose ledger entries do not net to zero.
type ImbalanceSource interface {
	Unbalanced(ctx context.Context) ([]models.Imbalance, error)
}

// ReconciliationJob reports partial postings. It never repairs them.
type ReconciliationJob struct {
	ledger  ImbalanceSource
	audit   *audit.Logger
	timeout time.Duration
}

func NewReconciliationJob(ledger ImbalanceSource, auditLogger *audit.Logger, timeout time.Duration) *ReconciliationJob {
	return &ReconciliationJob{ledger: ledger, audit: auditLogger, timeout: timeout}
}

func (j *ReconciliationJob) Run(ctx context.Context) ([]models.Imbalance, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	imbalances, err := j.ledger.Unbalanced(ctx)
	if err != nil {
		log.Printf("[RECONCILE] Sweep failed: %v", err)
		return nil, err
	}

	for _, im := range imbalances {
		log.Printf("[RECONCILE] %s is unbalanced: %d entries, credit=%s debit=%s", im.Reference, im.Entries, im.Credit, im.Debit)
		j.audit.LogPartialPosting(im.Reference, im.Entries, im.Credit, im.Debit)
	}

	log.Printf("[RECONCILE] Sweep finished in %s, %d unbalanced references", time.Since(start).Round(time.Millisecond), len(imbalances))
	return imbalances, nil
}
