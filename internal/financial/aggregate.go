package financial

import (
	"sort"
	"time"
)

// OtherCategory buckets entries that have no linked service ticket.
const OtherCategory = "other"

type MonthBucket struct {
	Year  int
	Month time.Month
	Total int64
}

// Label renders the bucket as e.g. "Jan 2026".
func (b MonthBucket) Label() string {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

type CategoryBucket struct {
	Name  string
	Total int64
}

// MonthlySeries reduces entries into `months` calendar-month buckets ending
// at now's month. Buckets with no entries stay at zero. The result is
// ordered oldest to newest. Entries outside the window are ignored.
func MonthlySeries(entries []*Entry, months int, now time.Time) []MonthBucket {
	if months < 1 {
		return nil
	}

	buckets := make([]MonthBucket, months)
	index := make(map[[2]int]int, months)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	for i := range months {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Year: m.Year(), Month: m.Month()}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, e := range entries {
		i, ok := index[[2]int{e.EntryDate.Year(), int(e.EntryDate.Month())}]
		if !ok {
			continue
		}

		buckets[i].Total += e.Value
	}

	return buckets
}

// CategorySeries groups entries by their linked service's type, summing
// values per group. Entries without a linked service fall into otherLabel.
// The result is ordered by total descending, name ascending on ties.
func CategorySeries(entries []*Entry, otherLabel string) []CategoryBucket {
	if otherLabel == "" {
		otherLabel = OtherCategory
	}

	totals := make(map[string]int64)

	for _, e := range entries {
		name := otherLabel
		if e.Service != nil && e.Service.ServiceType != "" {
			name = e.Service.ServiceType
		}

		totals[name] += e.Value
	}

	buckets := make([]CategoryBucket, 0, len(totals))
	for name, total := range totals {
		buckets = append(buckets, CategoryBucket{Name: name, Total: total})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Total != buckets[j].Total {
			return buckets[i].Total > buckets[j].Total
		}

		return buckets[i].Name < buckets[j].Name
	})

	return buckets
}
