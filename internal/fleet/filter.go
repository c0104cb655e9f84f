package fleet

import "time"

// Filter restricts income records before aggregation. An empty driver set
// selects every driver. Date bounds apply only when both From and To are
// set; with fewer than two endpoints no date filtering happens at all,
// matching the dashboard's two-endpoint range picker.
type Filter struct {
	Drivers []string
	From    time.Time
	To      time.Time
}

// hasDateRange reports whether both endpoints were supplied.
func (f Filter) hasDateRange() bool {
	return !f.From.IsZero() && !f.To.IsZero()
}

// Apply returns the income records matching the filter. Records without a
// parsed pickup date survive driver filtering but are excluded once a full
// date range is in effect.
func (f Filter) Apply(records []IncomeRecord) []IncomeRecord {
	var selected map[string]struct{}
	if len(f.Drivers) > 0 {
		selected = make(map[string]struct{}, len(f.Drivers))
		for _, d := range f.Drivers {
			selected[d] = struct{}{}
		}
	}

	out := make([]IncomeRecord, 0, len(records))
	for _, rec := range records {
		if selected != nil {
			if _, ok := selected[rec.Driver]; !ok {
				continue
			}
		}
		if f.hasDateRange() {
			if rec.PickupDate.IsZero() ||
				rec.PickupDate.Before(f.From) ||
				rec.PickupDate.After(f.To) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// Drivers returns the distinct non-empty driver identifiers in first-seen
// order, the default selection for the driver filter.
func Drivers(records []IncomeRecord) []string {
	seen := make(map[string]struct{})
	var drivers []string
	for _, rec := range records {
		if rec.Driver == "" {
			continue
		}
		if _, ok := seen[rec.Driver]; ok {
			continue
		}
		seen[rec.Driver] = struct{}{}
		drivers = append(drivers, rec.Driver)
	}
	return drivers
}

// ParsedDateRange returns the span of parsed pickup dates, the default
// bounds for the date filter. Both fields are zero when no record carries
// a usable date.
func ParsedDateRange(records []IncomeRecord) DateRange {
	var dr DateRange
	for _, rec := range records {
		if rec.PickupDate.IsZero() {
			continue
		}
		if dr.Min.IsZero() || rec.PickupDate.Before(dr.Min) {
			dr.Min = rec.PickupDate
		}
		if dr.Max.IsZero() || rec.PickupDate.After(dr.Max) {
			dr.Max = rec.PickupDate
		}
	}
	return dr
}
