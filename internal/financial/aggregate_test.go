package financial_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/financial"
)

func entryOn(date time.Time, value int64) *financial.Entry {
	return &financial.Entry{ID: uuid.New(), EntryDate: date, Value: value}
}

func entryForType(date time.Time, value int64, serviceType string) *financial.Entry {
	e := entryOn(date, value)
	e.Service = &financial.ServiceRef{ID: uuid.New(), ServiceType: serviceType}

	return e
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		entryOn(time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), 100),
		entryOn(time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC), 50),
	}

	series := financial.MonthlySeries(entries, 6, now)
	require.Len(t, series, 6)

	// Oldest to newest: Mar..Aug.
	assert.Equal(t, time.March, series[0].Month)
	assert.Equal(t, time.August, series[5].Month)

	for i, bucket := range series {
		switch bucket.Month {
		case time.August:
			assert.Equal(t, int64(100), bucket.Total)
		case time.June:
			assert.Equal(t, int64(50), bucket.Total)
		default:
			assert.Zero(t, bucket.Total, "bucket %d (%s)", i, bucket.Label())
		}
	}
}

func TestMonthlySeries_YearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		entryOn(time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC), 70),
	}

	series := financial.MonthlySeries(entries, 6, now)
	require.Len(t, series, 6)

	assert.Equal(t, time.September, series[0].Month)
	assert.Equal(t, 2025, series[0].Year)
	assert.Equal(t, int64(70), series[2].Total)
	assert.Equal(t, time.November, series[2].Month)
}

func TestMonthlySeries_IgnoresEntriesOutsideWindow(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		entryOn(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 999),
	}

	series := financial.MonthlySeries(entries, 6, now)
	for _, bucket := range series {
		assert.Zero(t, bucket.Total)
	}
}

func TestCategorySeries(t *testing.T) {
	date := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		entryForType(date, 30, "cleaning"),
		entryForType(date, 20, "cleaning"),
		entryOn(date, 10),
	}

	series := financial.CategorySeries(entries, "other")
	require.Len(t, series, 2)

	assert.Equal(t, "cleaning", series[0].Name)
	assert.Equal(t, int64(50), series[0].Total)
	assert.Equal(t, "other", series[1].Name)
	assert.Equal(t, int64(10), series[1].Total)
}

func TestCategorySeries_OrderedDescending(t *testing.T) {
	date := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	entries := []*financial.Entry{
		entryForType(date, 10, "installation"),
		entryForType(date, 500, "maintenance"),
		entryForType(date, 80, "repair"),
	}

	series := financial.CategorySeries(entries, "other")
	require.Len(t, series, 3)
	assert.Equal(t, "maintenance", series[0].Name)
	assert.Equal(t, "repair", series[1].Name)
	assert.Equal(t, "installation", series[2].Name)
}

func TestCategorySeries_Empty(t *testing.T) {
	series := financial.CategorySeries(nil, "other")
	assert.Empty(t, series)
}
