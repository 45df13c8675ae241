package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/financial"
)

func TestRenderMonthly_NegativeMonth(t *testing.T) {
	buckets := []financial.MonthBucket{
		{Year: 2026, Month: time.June, Total: 50000},
		{Year: 2026, Month: time.July, Total: -20000},
		{Year: 2026, Month: time.August, Total: 0},
	}

	var out string

	require.NotPanics(t, func() {
		out = renderMonthly(buckets)
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[1], "█")
	assert.Contains(t, lines[1], "500.00")

	// A month netting below zero renders without a bar.
	assert.NotContains(t, lines[2], "█")
	assert.Contains(t, lines[2], "-200.00")

	assert.NotContains(t, lines[3], "█")
}

func TestRenderMonthly_AllZero(t *testing.T) {
	buckets := []financial.MonthBucket{
		{Year: 2026, Month: time.July},
		{Year: 2026, Month: time.August},
	}

	out := renderMonthly(buckets)
	assert.NotContains(t, out, "█")
}
