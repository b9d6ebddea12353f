package application

import (
	"errors"
	"log"
	"time"

	"ranking-period/internal/analytics/domain/period"
	"ranking-period/internal/observability/metrics"
)

// Resolution is a resolved ranking bucket together with its catalog properties.
// Interval and IntervalSeconds are empty for granularities without a fixed length.
type Resolution struct {
	Granularity     period.Granularity `json:"-"`
	Name            string             `json:"granularity"`
	Key             period.PeriodKey   `json:"key"`
	Window          period.Window      `json:"window"`
	Interval        string             `json:"interval,omitempty"`
	IntervalSeconds int64              `json:"intervalSeconds,omitempty"`
}

// CatalogEntry describes one granularity.
type CatalogEntry struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Interval        string `json:"interval,omitempty"`
	IntervalSeconds int64  `json:"intervalSeconds,omitempty"`
	FixedLength     bool   `json:"fixedLength"`
}

// ResolverService resolves ranking buckets for callers by granularity name.
type ResolverService struct {
	logger      *log.Logger
	windowLimit int
}

// NewResolverService constructs a ResolverService.
func NewResolverService(logger *log.Logger, windowLimit int) *ResolverService {
	if logger == nil {
		logger = log.Default()
	}
	if windowLimit <= 0 {
		windowLimit = period.DefaultWindowLimit
	}
	return &ResolverService{logger: logger, windowLimit: windowLimit}
}

// Resolve returns the bucket of the named granularity containing ts.
func (s *ResolverService) Resolve(name string, ts int64) (Resolution, error) {
	start := time.Now()
	g, err := period.ParseGranularity(name)
	if err != nil {
		metrics.ObserveResolve("unknown", metrics.ResultError, time.Since(start))
		s.logger.Printf("period resolve failed: granularity=%q ts=%d err=%v", name, ts, err)
		return Resolution{}, err
	}

	window, err := period.Condition(g, ts)
	if err != nil {
		metrics.ObserveResolve(g.String(), metrics.ResultError, time.Since(start))
		s.logger.Printf("period resolve failed: granularity=%s ts=%d err=%v", g, ts, err)
		return Resolution{}, err
	}
	res, err := newResolution(g, window)
	if err != nil {
		metrics.ObserveResolve(g.String(), metrics.ResultError, time.Since(start))
		return Resolution{}, err
	}
	metrics.ObserveResolve(g.String(), metrics.ResultSuccess, time.Since(start))
	return res, nil
}

// Calendar returns the consecutive buckets of the named granularity covering [from, to].
func (s *ResolverService) Calendar(name string, from, to int64) ([]Resolution, error) {
	g, err := period.ParseGranularity(name)
	if err != nil {
		metrics.IncCalendar("unknown", metrics.ResultError)
		s.logger.Printf("period calendar failed: granularity=%q from=%d to=%d err=%v", name, from, to, err)
		return nil, err
	}
	windows, err := period.Windows(g, from, to, s.windowLimit)
	if err != nil {
		metrics.IncCalendar(g.String(), metrics.ResultError)
		s.logger.Printf("period calendar failed: granularity=%s from=%d to=%d err=%v", g, from, to, err)
		return nil, err
	}

	out := make([]Resolution, 0, len(windows))
	for _, w := range windows {
		res, err := newResolution(g, w)
		if err != nil {
			metrics.IncCalendar(g.String(), metrics.ResultError)
			return nil, err
		}
		out = append(out, res)
	}
	metrics.IncCalendar(g.String(), metrics.ResultSuccess)
	metrics.AddCalendarWindows(g.String(), len(out))
	return out, nil
}

// Catalog lists every granularity with its interval properties.
func (s *ResolverService) Catalog() []CatalogEntry {
	all := period.All()
	out := make([]CatalogEntry, 0, len(all))
	for _, g := range all {
		entry := CatalogEntry{ID: g.ID(), Name: g.String()}
		code, codeErr := period.Interval(g)
		seconds, secondsErr := period.IntervalSeconds(g)
		if codeErr == nil && secondsErr == nil {
			entry.Interval = code
			entry.IntervalSeconds = seconds
			entry.FixedLength = true
		}
		out = append(out, entry)
	}
	return out
}

func newResolution(g period.Granularity, w period.Window) (Resolution, error) {
	key, err := period.BuildPeriodKey(g, w)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{
		Granularity: g,
		Name:        g.String(),
		Key:         key,
		Window:      w,
	}

	code, err := period.Interval(g)
	if err != nil && !errors.Is(err, period.ErrUnsupportedOperation) {
		return Resolution{}, err
	}
	res.Interval = code

	seconds, err := period.IntervalSeconds(g)
	if err != nil && !errors.Is(err, period.ErrUnsupportedOperation) {
		return Resolution{}, err
	}
	res.IntervalSeconds = seconds
	return res, nil
}
