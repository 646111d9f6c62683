package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// monthsFR maps the localized month tokens used in document date strings
// ("28 Avril 2023") onto English names parseable by time.Parse.
var monthsFR = map[string]string{
	"janvier": "January", "fevrier": "February", "février": "February",
	"mars": "March", "avril": "April", "mai": "May", "juin": "June",
	"juillet": "July", "aout": "August", "août": "August",
	"septembre": "September", "octobre": "October",
	"novembre": "November", "decembre": "December", "décembre": "December",
}

// ParseDate parses a "DD <Month> YYYY" date string with a French or English
// month name.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if t, err := time.Parse("02 January 2006", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2 January 2006", s); err == nil {
		return t, nil
	}

	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 3 {
		if en, ok := monthsFR[fields[1]]; ok {
			converted := fields[0] + " " + en + " " + fields[2]
			for _, layout := range []string{"02 January 2006", "2 January 2006"} {
				if t, err := time.Parse(layout, converted); err == nil {
					return t, nil
				}
			}
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", dateStr)
}

// SortDates orders date strings chronologically. Unparseable values sort
// last, keeping their relative order.
func SortDates(dates []string) []string {
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, erri := ParseDate(sorted[i])
		tj, errj := ParseDate(sorted[j])
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})
	return sorted
}
