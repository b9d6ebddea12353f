package period

import (
	"fmt"
	"time"
)

// LegacyTimezoneCutoff is the moment ranking day keys moved from UTC+9 to UTC+0.
// Daily keys for timestamps at or before it were persisted with UTC+9 day
// boundaries and lookups against them must keep resolving the same way.
const LegacyTimezoneCutoff int64 = 1577545200

const legacyOffsetSeconds = 9 * 60 * 60

var legacyZone = time.FixedZone("UTC+9", legacyOffsetSeconds)

// yearlySpan ignores leap years. Stored yearly windows end at start + 365 days.
const yearlySpan int64 = 86400 * 365

const recentlyHours = 23

// Window is the bucket a timestamp belongs to, in Unix seconds.
// Period is the grouping key; StartAt and EndAt are inclusive bounds.
type Window struct {
	Period  int64 `json:"period"`
	StartAt int64 `json:"startAt"`
	EndAt   int64 `json:"endAt"`
}

// Contains reports whether ts falls within [StartAt, EndAt].
func (w Window) Contains(ts int64) bool {
	return ts >= w.StartAt && ts <= w.EndAt
}

// PeriodTime returns the period key as a UTC time.
func (w Window) PeriodTime() time.Time { return time.Unix(w.Period, 0).UTC() }

// StartTime returns StartAt as a UTC time.
func (w Window) StartTime() time.Time { return time.Unix(w.StartAt, 0).UTC() }

// EndTime returns EndAt as a UTC time.
func (w Window) EndTime() time.Time { return time.Unix(w.EndAt, 0).UTC() }

// Condition resolves the window of granularity g that contains targetTimestamp.
// Boundaries are computed on the UTC+0 calendar with seconds discarded; the only
// exception is Daily at or before LegacyTimezoneCutoff, which uses UTC+9.
// Total reports StartAt 0 and keeps the day start as Period. Recently spans the
// current hour and the 23 before it, with Period on the current hour.
func Condition(g Granularity, targetTimestamp int64) (Window, error) {
	at := instant(g, targetTimestamp)

	switch g {
	case Total:
		day := truncateToDay(at)
		return Window{
			Period:  day.Unix(),
			StartAt: 0,
			EndAt:   lastSecondBefore(day.AddDate(0, 0, 1)),
		}, nil
	case Yearly:
		start := time.Date(at.Year(), time.January, 1, 0, 0, 0, 0, at.Location()).Unix()
		return bucket(start, start+yearlySpan-1), nil
	case Quarterly:
		start := truncateToQuarter(at)
		return bucket(start.Unix(), lastSecondBefore(start.AddDate(0, 3, 0))), nil
	case Monthly:
		start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
		return bucket(start.Unix(), lastSecondBefore(start.AddDate(0, 1, 0))), nil
	case Weekly:
		start := truncateToISOWeek(at)
		return bucket(start.Unix(), lastSecondBefore(start.AddDate(0, 0, 7))), nil
	case Daily:
		start := truncateToDay(at)
		return bucket(start.Unix(), lastSecondBefore(start.AddDate(0, 0, 1))), nil
	case Hourly:
		start := truncateToHour(at)
		return bucket(start.Unix(), lastSecondBefore(start.Add(time.Hour))), nil
	case Recently:
		hour := truncateToHour(at)
		return Window{
			Period:  hour.Unix(),
			StartAt: hour.Add(-recentlyHours * time.Hour).Unix(),
			EndAt:   lastSecondBefore(hour.Add(time.Hour)),
		}, nil
	default:
		return Window{}, fmt.Errorf("%w: %s", ErrUnrecognizedGranularity, g)
	}
}

// instant converts the timestamp to the calendar it is resolved in and drops seconds.
func instant(g Granularity, ts int64) time.Time {
	loc := time.UTC
	if g == Daily && ts <= LegacyTimezoneCutoff {
		loc = legacyZone
	}
	t := time.Unix(ts, 0).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func bucket(start, end int64) Window {
	return Window{Period: start, StartAt: start, EndAt: end}
}

func lastSecondBefore(next time.Time) int64 { return next.Unix() - 1 }

func truncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// truncateToISOWeek moves back to Monday; Sunday belongs to the week before.
func truncateToISOWeek(t time.Time) time.Time {
	delta := (int(t.Weekday()) + 6) % 7
	return truncateToDay(t).AddDate(0, 0, -delta)
}

func truncateToQuarter(t time.Time) time.Time {
	m := int(t.Month())
	first := m - (m+2)%3
	return time.Date(t.Year(), time.Month(first), 1, 0, 0, 0, 0, t.Location())
}
