package holiday

import (
	"sort"
	"strings"
	"time"
)

// Holiday is a public holiday as served by the backend. Date is an ISO
// day, "2006-01-02".
type Holiday struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

func (h Holiday) Day() (time.Time, bool) {
	// tolerate full timestamps from backends that serialize midnight
	raw := h.Date
	if i := strings.Index(raw, "T"); i > 0 {
		raw = raw[:i]
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// ForYear filters holidays falling in the given calendar year, sorted by
// date. Entries with unparseable dates are dropped.
func ForYear(list []Holiday, year int) []Holiday {
	var out []Holiday
	for _, h := range list {
		if day, ok := h.Day(); ok && day.Year() == year {
			out = append(out, h)
		}
	}
	sortByDate(out)
	return out
}

// Upcoming filters holidays on or after the given day, sorted by date.
func Upcoming(list []Holiday, now time.Time) []Holiday {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var out []Holiday
	for _, h := range list {
		if day, ok := h.Day(); ok && !day.Before(today) {
			out = append(out, h)
		}
	}
	sortByDate(out)
	return out
}

func sortByDate(list []Holiday) {
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
}
