package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the reconciliation sweep on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	job  *ReconciliationJob
}

// NewScheduler registers job under spec, a six-field (seconds first) cron
// expression evaluated in UTC.
func NewScheduler(job *ReconciliationJob, spec string) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.PrintfLogger(log.Default()))),
	)

	s := &Scheduler{cron: c, job: job}
	if _, err := c.AddFunc(spec, s.reconcile); err != nil {
		return nil, fmt.Errorf("failed to register reconciliation job %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) reconcile() {
	if _, err := s.job.Run(context.Background()); err != nil {
		log.Printf("[SCHEDULER] Reconciliation run failed: %v", err)
	}
}

func (s *Scheduler) Start() {
	log.Println("[SCHEDULER] Starting cron scheduler")
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	log.Println("[SCHEDULER] Stopping cron scheduler")
	<-s.cron.Stop().Done()
	log.Println("[SCHEDULER] Cron scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
