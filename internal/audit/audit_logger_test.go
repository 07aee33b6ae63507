package audit

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Sink(t *testing.T) {
	var got []Event
	a := NewLoggerWithSink(func(e Event) { got = append(got, e) })

	a.LogPosting("mono-1", "1000000001", "1000000002", decimal.RequireFromString("300.00"), "TRANSFER")
	a.LogError("mono-1", "1000000001", errors.New("insert failed"))

	require.Len(t, got, 2)
	assert.Equal(t, EventPosting, got[0].EventType)
	assert.Equal(t, "300", got[0].Amount)
	assert.Equal(t, "1000000002", got[0].Details["destination"])
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Equal(t, "insert failed", got[1].Details["error"])
}

func TestLogger_WritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	NewLogger().LogReversalNoop("mono-2", "no ledger entries")

	line := buf.String()
	assert.True(t, strings.Contains(line, "AUDIT: {"))
	assert.Contains(t, line, `"event_type":"REVERSAL_NOOP"`)
	assert.Contains(t, line, `"reference":"mono-2"`)
}

func TestLogger_NilSafe(t *testing.T) {
	var a *Logger
	assert.NotPanics(t, func() { a.LogStatusChange("mono-3", "PENDING", "SUCCESS") })
}
