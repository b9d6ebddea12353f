package period

import (
	"fmt"
	"strconv"
	"strings"
)

// PeriodKey is the persisted identity of a ranking bucket: "<granularity>:<period>".
type PeriodKey string

// BuildPeriodKey creates a deterministic key for a granularity + resolved window.
func BuildPeriodKey(g Granularity, w Window) (PeriodKey, error) {
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedGranularity, g)
	}
	return PeriodKey(fmt.Sprintf("%s:%d", g, w.Period)), nil
}

// String returns the raw string for storage.
func (k PeriodKey) String() string { return string(k) }

// ParsePeriodKey splits a key back into its granularity and period timestamp.
func ParsePeriodKey(key string) (Granularity, int64, error) {
	name, raw, ok := strings.Cut(key, ":")
	if !ok || name == "" || raw == "" {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	g, err := ParseGranularity(name)
	if err != nil {
		return 0, 0, err
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	return g, ts, nil
}
