package period

import "fmt"

// DefaultWindowLimit caps Windows when the caller passes no limit.
const DefaultWindowLimit = 10000

// Windows returns the consecutive windows of g covering [from, to], starting with
// the window that contains from. Each next window is resolved at the previous
// EndAt + 1, so daily windows around LegacyTimezoneCutoff are returned exactly as
// Condition resolves them and may overlap.
func Windows(g Granularity, from, to int64, limit int) ([]Window, error) {
	switch g {
	case Total, Recently:
		return nil, fmt.Errorf("%w: calendar of %s", ErrUnsupportedOperation, g)
	}
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedGranularity, g)
	}
	if from > to {
		return nil, fmt.Errorf("%w: from %d after to %d", ErrInvalidRange, from, to)
	}
	if limit <= 0 {
		limit = DefaultWindowLimit
	}

	var windows []Window
	cursor := from
	for cursor <= to {
		if len(windows) == limit {
			return nil, fmt.Errorf("%w: more than %d %s windows", ErrTooManyWindows, limit, g)
		}
		w, err := Condition(g, cursor)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
		cursor = w.EndAt + 1
	}
	return windows, nil
}
