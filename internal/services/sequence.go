package services

import (
	"context"
	"fmt"

	"github.com/django102/mono-test-api/internal/repository"
)

// SequenceAllocator hands out account numbers from a shared counter.
type SequenceAllocator struct {
	counters repository.CounterRepository
	name     string
	start    int64
}

func NewSequenceAllocator(counters repository.CounterRepository, name string, start int64) *SequenceAllocator {
	return &SequenceAllocator{counters: counters, name: name, start: start}
}

// NextAccountNumber returns the next counter value as a 10-digit zero-padded string.
func (s *SequenceAllocator) NextAccountNumber(ctx context.Context) (string, error) {
	seq, err := s.counters.Increment(ctx, s.name, s.start)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return fmt.Sprintf("%010d", seq), nil
}
