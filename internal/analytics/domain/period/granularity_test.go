package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCatalogIDsAndNames(t *testing.T) {
	want := map[Granularity]struct {
		id   int
		name string
	}{
		Hourly:    {1, "hourly"},
		Daily:     {2, "daily"},
		Weekly:    {3, "weekly"},
		Monthly:   {4, "monthly"},
		Quarterly: {5, "quarterly"},
		Yearly:    {6, "yearly"},
		Recently:  {10, "recently"},
		Total:     {11, "total"},
	}
	require.Len(t, All(), len(want))
	for _, g := range All() {
		entry, ok := want[g]
		require.True(t, ok, "unexpected catalog entry %d", int(g))
		require.Equal(t, entry.id, g.ID())
		require.Equal(t, entry.name, g.String())
		require.True(t, g.IsValid())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0] = Total
	require.Equal(t, Hourly, All()[0])
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("  Weekly ")
	require.NoError(t, err)
	require.Equal(t, Weekly, g)

	_, err = ParseGranularity("fortnightly")
	require.True(t, errors.Is(err, ErrUnrecognizedGranularity))
}

func TestGranularityByID(t *testing.T) {
	g, err := GranularityByID(10)
	require.NoError(t, err)
	require.Equal(t, Recently, g)

	_, err = GranularityByID(7)
	require.True(t, errors.Is(err, ErrUnrecognizedGranularity))
	require.Equal(t, "granularity(7)", Granularity(7).String())
}

func TestInterval(t *testing.T) {
	want := map[Granularity]string{
		Hourly:    "1h",
		Daily:     "1d",
		Weekly:    "1w",
		Monthly:   "1M",
		Quarterly: "1q",
		Yearly:    "1y",
	}
	for g, code := range want {
		got, err := Interval(g)
		require.NoError(t, err)
		require.Equal(t, code, got)
	}
	for _, g := range []Granularity{Total, Recently, Granularity(42)} {
		_, err := Interval(g)
		require.True(t, errors.Is(err, ErrUnsupportedOperation), g.String())
	}
}

func TestIntervalSeconds(t *testing.T) {
	want := map[Granularity]int64{
		Hourly:    3600,
		Daily:     86400,
		Weekly:    592200,
		Monthly:   2592000,
		Quarterly: 7776000,
		Yearly:    31536000,
	}
	for g, seconds := range want {
		got, err := IntervalSeconds(g)
		require.NoError(t, err)
		require.Equal(t, seconds, got, g.String())
	}
	for _, g := range []Granularity{Total, Recently} {
		_, err := IntervalSeconds(g)
		require.True(t, errors.Is(err, ErrUnsupportedOperation), g.String())
	}
}

func TestIntervalCoversEveryFixedGranularity(t *testing.T) {
	for _, g := range All() {
		_, errCode := Interval(g)
		_, errSeconds := IntervalSeconds(g)
		if g == Total || g == Recently {
			require.Error(t, errCode)
			require.Error(t, errSeconds)
			continue
		}
		require.NoError(t, errCode, g.String())
		require.NoError(t, errSeconds, g.String())
	}
}

func TestPeriodKeyRoundTrip(t *testing.T) {
	w, err := Condition(Daily, time.Date(2021, time.March, 15, 14, 37, 0, 0, time.UTC).Unix())
	require.NoError(t, err)

	key, err := BuildPeriodKey(Daily, w)
	require.NoError(t, err)
	require.Equal(t, "daily:1615766400", key.String())

	g, ts, err := ParsePeriodKey(key.String())
	require.NoError(t, err)
	require.Equal(t, Daily, g)
	require.Equal(t, w.Period, ts)
}

func TestPeriodKeyErrors(t *testing.T) {
	_, err := BuildPeriodKey(Granularity(0), Window{})
	require.True(t, errors.Is(err, ErrUnrecognizedGranularity))

	for _, raw := range []string{"", "daily", "daily:", ":123", "daily:abc"} {
		_, _, err := ParsePeriodKey(raw)
		require.True(t, errors.Is(err, ErrInvalidPeriodKey), raw)
	}
	_, _, err = ParsePeriodKey("minutely:60")
	require.True(t, errors.Is(err, ErrUnrecognizedGranularity))
}
