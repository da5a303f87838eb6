package profile

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

// ParseDate parses an extracted date string permissively. It returns nil for
// empty input, "present"/"current" markers, and anything unparseable; dates
// are never invented.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "present", "current", "now", "ongoing":
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return monthIndex(a) == monthIndex(b)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
