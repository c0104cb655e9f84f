package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testIncome() []IncomeRecord {
	return []IncomeRecord{
		{Truck: "T1", Driver: "D1", PickupDate: date(2024, 1, 5)},
		{Truck: "T1", Driver: "D1", PickupDate: date(2024, 1, 10)},
		{Truck: "T2", Driver: "D2", PickupDate: date(2024, 2, 1)},
		{Truck: "T3", Driver: "D3"}, // no parseable pickup date
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{
			name:   "empty filter passes everything",
			filter: Filter{},
			want:   4,
		},
		{
			name:   "driver selection",
			filter: Filter{Drivers: []string{"D1"}},
			want:   2,
		},
		{
			name:   "driver selection keeps dateless records",
			filter: Filter{Drivers: []string{"D3"}},
			want:   1,
		},
		{
			name:   "full date range excludes dateless records",
			filter: Filter{From: date(2024, 1, 1), To: date(2024, 12, 31)},
			want:   3,
		},
		{
			name:   "inclusive bounds",
			filter: Filter{From: date(2024, 1, 5), To: date(2024, 1, 10)},
			want:   2,
		},
		{
			name:   "single endpoint disables date filtering",
			filter: Filter{From: date(2024, 2, 1)},
			want:   4,
		},
		{
			name:   "drivers and range combined",
			filter: Filter{Drivers: []string{"D1", "D2"}, From: date(2024, 2, 1), To: date(2024, 2, 28)},
			want:   1,
		},
		{
			name:   "unknown driver matches nothing",
			filter: Filter{Drivers: []string{"D9"}},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(testIncome())
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFilter_Apply_Idempotent(t *testing.T) {
	filter := Filter{Drivers: []string{"D1", "D2"}, From: date(2024, 1, 1), To: date(2024, 12, 31)}

	once := filter.Apply(testIncome())
	twice := filter.Apply(once)

	assert.Equal(t, once, twice)
}

func TestDrivers(t *testing.T) {
	records := []IncomeRecord{
		{Driver: "D2"},
		{Driver: "D1"},
		{Driver: ""},
		{Driver: "D2"},
	}

	assert.Equal(t, []string{"D2", "D1"}, Drivers(records))
}

func TestParsedDateRange(t *testing.T) {
	t.Run("spans parsed dates only", func(t *testing.T) {
		dr := ParsedDateRange(testIncome())
		assert.Equal(t, date(2024, 1, 5), dr.Min)
		assert.Equal(t, date(2024, 2, 1), dr.Max)
	})

	t.Run("no dates at all", func(t *testing.T) {
		dr := ParsedDateRange([]IncomeRecord{{Truck: "T1", Driver: "D1"}})
		assert.True(t, dr.Min.IsZero())
		assert.True(t, dr.Max.IsZero())
	})
}
