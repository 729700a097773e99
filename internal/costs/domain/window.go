package domain

import "time"

// UsageWindow returns the trailing reporting window for "now": from UTC
// midnight of (now - days) up to, exclusively, the next UTC midnight after
// now. The partial current day is always included in full.
func UsageWindow(now time.Time, days int) Window {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		Start: midnight.AddDate(0, 0, -days),
		End:   midnight.AddDate(0, 0, 1),
	}
}
