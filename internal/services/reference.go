package services

import (
	"fmt"
	"sync"
	"time"
)

const referenceLayout = "20060102150405"

// ReferenceGenerator issues transaction references of the form
// <prefix><yyyymmddhhmmss><nanoseconds>. References from one generator are
// strictly increasing, so they also sort by issue time within a day.
type ReferenceGenerator struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewReferenceGenerator(prefix string) *ReferenceGenerator {
	return &ReferenceGenerator{prefix: prefix, now: time.Now}
}

func (g *ReferenceGenerator) Generate() string {
	g.mu.Lock()
	t := g.now().UTC()
	if !t.After(g.last) {
		t = g.last.Add(time.Nanosecond)
	}
	g.last = t
	g.mu.Unlock()

	return fmt.Sprintf("%s%s%09d", g.prefix, t.Format(referenceLayout), t.Nanosecond())
}
