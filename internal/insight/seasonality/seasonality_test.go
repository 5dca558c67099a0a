package seasonality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

func flat(start string, n int, v float64) analytics.Series {
	out := make(analytics.Series, n)
	for i := range out {
		m, _ := series.AddMonths(start, i)
		out[i] = analytics.TimePoint{Month: m, Value: v}
	}
	return out
}

func TestBuildIndex_Flat(t *testing.T) {
	got, err := BuildIndex(flat("2023-04", 36, 42))
	require.NoError(t, err)
	require.Len(t, got, 12)
	for i, e := range got {
		assert.Equal(t, Labels[i], e.Month)
		assert.Equal(t, 42.0, e.Average)
		assert.Equal(t, 1.0, e.Index)
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	got, err := BuildIndex(nil)
	require.NoError(t, err)
	require.Len(t, got, 12)
	assert.Equal(t, "Jan", got[0].Month)
	assert.Equal(t, "Dec", got[11].Month)
	for _, e := range got {
		assert.Equal(t, 0.0, e.Average)
		assert.Equal(t, 0.0, e.Index)
	}
}

func TestBuildIndex_PoolsYearsAndRounds(t *testing.T) {
	s := analytics.Series{
		{Month: "2024-01", Value: 10},
		{Month: "2025-01", Value: 20},
		{Month: "2024-07", Value: 21},
	}
	got, err := BuildIndex(s)
	require.NoError(t, err)

	// Averages: Jan 15, Jul 21, others 0; overall 36/12 = 3.
	assert.Equal(t, 15.0, got[0].Average)
	assert.Equal(t, 5.0, got[0].Index)
	assert.Equal(t, 21.0, got[6].Average)
	assert.Equal(t, 7.0, got[6].Index)
	assert.Equal(t, 0.0, got[3].Index)
}

func TestBuildIndex_TwoDecimalIndex(t *testing.T) {
	s := analytics.Series{{Month: "2025-02", Value: 1}, {Month: "2025-03", Value: 2}}
	got, err := BuildIndex(s)
	require.NoError(t, err)
	// Overall 3/12 = 0.25: Feb 4, Mar 8.
	assert.Equal(t, 4.0, got[1].Index)
	assert.Equal(t, 8.0, got[2].Index)

	s = analytics.Series{{Month: "2025-01", Value: 1}, {Month: "2025-02", Value: 2}, {Month: "2025-03", Value: 4}}
	got, err = BuildIndex(s)
	require.NoError(t, err)
	// Overall 7/12: Jan 12/7 = 1.714..., Feb 3.428..., Mar 6.857...
	assert.Equal(t, 1.71, got[0].Index)
	assert.Equal(t, 3.43, got[1].Index)
	assert.Equal(t, 6.86, got[2].Index)
}

func TestBuildIndex_Malformed(t *testing.T) {
	_, err := BuildIndex(analytics.Series{{Month: "2025-13", Value: 1}})
	assert.ErrorIs(t, err, series.ErrMalformedMonth)
}

func TestPeak(t *testing.T) {
	_, ok := Peak(nil)
	assert.False(t, ok)

	entries := []analytics.SeasonalIndexEntry{
		{Month: "Jan", Index: 0.8},
		{Month: "Feb", Index: 1.4},
		{Month: "Mar", Index: 1.4},
		{Month: "Apr", Index: 0.4},
	}
	peak, ok := Peak(entries)
	require.True(t, ok)
	assert.Equal(t, "Feb", peak.Month)
}
