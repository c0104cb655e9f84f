package fleet

import (
	"strings"
	"time"
)

// pickupLayouts are tried in order when normalizing the Pickup field.
// Workbooks in the wild carry ISO dates, US dates, and Excel's default
// display formats.
var pickupLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"02 Jan 2006",
	"Jan 2 2006",
}

// NormalizePickup extracts a usable date from a composite Pickup value.
// Only the text before the first comma is considered; anything that does
// not parse yields the zero time. It never fails.
func NormalizePickup(raw string) time.Time {
	head, _, _ := strings.Cut(raw, ",")
	head = strings.TrimSpace(head)
	if head == "" {
		return time.Time{}
	}
	for _, layout := range pickupLayouts {
		if t, err := time.Parse(layout, head); err == nil {
			return t
		}
	}
	return time.Time{}
}
