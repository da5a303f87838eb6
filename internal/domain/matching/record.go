package matching

import (
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// MaxNameDistance tolerates "Inc."/"LLC" suffix drift and minor extraction
// noise in company names while still rejecting distinct companies.
const MaxNameDistance = 5

// RecordKey identifies an existing work history record for matching.
type RecordKey struct {
	Company   string
	StartDate *time.Time
	EndDate   *time.Time
}

// IncomingKey is the matchable subset of an extracted work experience fact.
type IncomingKey struct {
	Company   string
	StartDate *time.Time
	EndDate   *time.Time
}

// Matches reports whether an incoming fact refers to the same job as an
// existing record. All three signals must agree: fuzzy company name, exact
// start month, and exact (or both-open) end month. A false merge combines
// achievements from two different jobs, so the check is conservative.
func Matches(existing RecordKey, incoming IncomingKey) bool {
	if incoming.StartDate == nil || existing.StartDate == nil {
		return false
	}

	dist := levenshtein.ComputeDistance(
		normalizeCompany(existing.Company),
		normalizeCompany(incoming.Company),
	)
	if dist > MaxNameDistance {
		return false
	}

	if monthIndex(*existing.StartDate) != monthIndex(*incoming.StartDate) {
		return false
	}

	// Both open-ended means both are current positions.
	if existing.EndDate == nil && incoming.EndDate == nil {
		return true
	}
	if existing.EndDate == nil || incoming.EndDate == nil {
		return false
	}
	return monthIndex(*existing.EndDate) == monthIndex(*incoming.EndDate)
}

func normalizeCompany(name string) string {
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), "")
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
