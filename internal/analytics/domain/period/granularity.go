package period

import (
	"fmt"
	"strings"
)

// Granularity is the reporting period type of a ranking bucket.
// The ids are persisted by callers and must not change.
type Granularity int

const (
	Hourly    Granularity = 1
	Daily     Granularity = 2
	Weekly    Granularity = 3
	Monthly   Granularity = 4
	Quarterly Granularity = 5
	Yearly    Granularity = 6

	// Recently is the last 24 hours anchored to hour boundaries.
	Recently Granularity = 10
	// Total covers everything up to the end of the target day.
	Total Granularity = 11
)

var catalog = []Granularity{Hourly, Daily, Weekly, Monthly, Quarterly, Yearly, Total, Recently}

var names = map[Granularity]string{
	Hourly:    "hourly",
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Yearly:    "yearly",
	Recently:  "recently",
	Total:     "total",
}

// All returns every granularity in declaration order.
func All() []Granularity {
	out := make([]Granularity, len(catalog))
	copy(out, catalog)
	return out
}

// ID returns the persisted numeric id.
func (g Granularity) ID() int { return int(g) }

// String returns the lowercase name, or "granularity(<id>)" for unknown values.
func (g Granularity) String() string {
	if name, ok := names[g]; ok {
		return name
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// IsValid checks if the granularity is one of the catalog values.
func (g Granularity) IsValid() bool {
	_, ok := names[g]
	return ok
}

// ParseGranularity resolves a granularity by name, ignoring case and surrounding spaces.
func ParseGranularity(name string) (Granularity, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, g := range catalog {
		if names[g] == normalized {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedGranularity, name)
}

// GranularityByID resolves a granularity by its persisted id.
func GranularityByID(id int) (Granularity, error) {
	g := Granularity(id)
	if !g.IsValid() {
		return 0, fmt.Errorf("%w: id %d", ErrUnrecognizedGranularity, id)
	}
	return g, nil
}
