package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceGenerator_Format(t *testing.T) {
	g := NewReferenceGenerator("mono-")
	g.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 42, time.UTC) }

	assert.Equal(t, "mono-20240506070809000000042", g.Generate())
}

func TestReferenceGenerator_FrozenClockStillIncreases(t *testing.T) {
	g := NewReferenceGenerator("mono-")
	frozen := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	g.now = func() time.Time { return frozen }

	first, second := g.Generate(), g.Generate()

	assert.Equal(t, "mono-20240506070809000000000", first)
	assert.Equal(t, "mono-20240506070809000000001", second)
}

func TestReferenceGenerator_ConcurrentUnique(t *testing.T) {
	g := NewReferenceGenerator("mono-")
	const n = 200

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := g.Generate()
			mu.Lock()
			seen[ref] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
	for ref := range seen {
		assert.True(t, strings.HasPrefix(ref, "mono-"))
		assert.Len(t, ref, len("mono-")+14+9)
	}
}
