package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// monthly returns a contiguous series starting at start with the given values.
func monthly(start string, values ...float64) analytics.Series {
	out := make(analytics.Series, len(values))
	for i, v := range values {
		m, err := series.AddMonths(start, i)
		if err != nil {
			panic(err)
		}
		out[i] = analytics.TimePoint{Month: m, Value: v}
	}
	return out
}

func months(s analytics.Series) []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Month
	}
	return out
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 3},
		{3.5, 4},
		{2.4999, 2},
		{0.5, 1},
		{-2.5, -2},
		{-2.6, -3},
		{7, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}

func TestMovingAverage_CascadingWindow(t *testing.T) {
	got, err := MovingAverage(monthly("2025-01", 10, 20, 30), 2)
	require.NoError(t, err)
	assert.Equal(t, analytics.Series{
		{Month: "2025-04", Value: 20},
		{Month: "2025-05", Value: 23}, // mean(20, 30, 20) = 23.33
	}, got)
}

func TestMovingAverage_ShortWindow(t *testing.T) {
	got, err := MovingAverage(monthly("2025-05", 7), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7}, got.Values())
}

func TestMovingAverage_HalfRoundsUp(t *testing.T) {
	got, err := MovingAverage(monthly("2025-01", 2, 3), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].Value, "2.5 must round to 3, not to even")
}

func TestMovingAverage_Empty(t *testing.T) {
	got, err := MovingAverage(nil, 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = MovingAverage(monthly("2025-01", 1, 2, 3), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMovingAverage_SortsInput(t *testing.T) {
	s := analytics.Series{
		{Month: "2025-03", Value: 30},
		{Month: "2025-01", Value: 10},
		{Month: "2025-02", Value: 20},
	}
	got, err := MovingAverage(s, 1)
	require.NoError(t, err)
	assert.Equal(t, analytics.Series{{Month: "2025-04", Value: 20}}, got)
}

func TestMovingAverage_FillsGaps(t *testing.T) {
	// The missing February counts as zero: mean(30, 0, 60) = 30.
	s := analytics.Series{{Month: "2025-01", Value: 30}, {Month: "2025-03", Value: 60}}
	got, err := MovingAverage(s, 1)
	require.NoError(t, err)
	assert.Equal(t, analytics.Series{{Month: "2025-04", Value: 30}}, got)
}

func TestMovingAverage_MalformedMonth(t *testing.T) {
	_, err := MovingAverage(analytics.Series{{Month: "2025-1", Value: 3}}, 1)
	assert.ErrorIs(t, err, series.ErrMalformedMonth)
}

func TestForecast_FallbackGate(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(10 + i%12)
	}

	short, err := Forecast(monthly("2023-01", values[:23]...), 3, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, analytics.ModelMovingAverage, short.Model)

	full, err := Forecast(monthly("2023-01", values...), 3, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, analytics.ModelHoltWinters, full.Model)
}

func TestForecast_GateCountsFilledMonths(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(10 + i%12)
	}
	s := monthly("2023-01", values...)
	// Drop 2023-07: 23 recorded points spanning 24 calendar months.
	gapped := append(append(analytics.Series{}, s[:6]...), s[7:]...)
	require.Len(t, gapped, 23)

	got, err := Forecast(gapped, 3, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, analytics.ModelHoltWinters, got.Model)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"}, months(got.Points))
}

func TestForecast_Length(t *testing.T) {
	long := make([]float64, 36)
	for i := range long {
		long[i] = float64(20 + (i%12)*3)
	}
	inputs := map[string]analytics.Series{
		"short": monthly("2024-01", 5, 6, 7),
		"long":  monthly("2022-01", long...),
	}
	for name, s := range inputs {
		for _, n := range []int{0, 1, 3, 12, 24} {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				got, err := Forecast(s, n, DefaultParams())
				require.NoError(t, err)
				assert.Len(t, got.Points, n)
			})
		}
	}
}

func TestForecast_NonNegative(t *testing.T) {
	// A steep decline that projects below zero without the floor.
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(240 - 10*i)
	}
	got, err := Forecast(monthly("2023-01", values...), 24, DefaultParams())
	require.NoError(t, err)
	require.Equal(t, analytics.ModelHoltWinters, got.Model)
	for _, p := range got.Points {
		assert.GreaterOrEqual(t, p.Value, 0.0, "month %s", p.Month)
	}
	last, _ := got.Points.Last()
	assert.Equal(t, 0.0, last.Value)

	ma, err := Forecast(monthly("2025-01", 0, 0, 1), 6, DefaultParams())
	require.NoError(t, err)
	for _, p := range ma.Points {
		assert.GreaterOrEqual(t, p.Value, 0.0)
	}
}

func TestForecast_MonthContinuity(t *testing.T) {
	got, err := Forecast(monthly("2025-01", 4, 5, 6, 7, 8, 9), 3, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07", "2025-08", "2025-09"}, months(got.Points))

	values := make([]float64, 24)
	for i := range values {
		values[i] = 50
	}
	hw, err := Forecast(monthly("2024-01", values...), 3, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03"}, months(hw.Points))
}

func TestForecast_Deterministic(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(100 + (i%12)*7 - i)
	}
	s := monthly("2023-06", values...)

	first, err := Forecast(s, 12, DefaultParams())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Forecast(s, 12, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestForecast_ConstantSeries(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 50
	}
	got, err := Forecast(monthly("2024-01", values...), 4, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 50, 50, 50}, got.Points.Values())
}

func TestForecast_HandComputed(t *testing.T) {
	// Season of two: init level 15, trend 1, seasonals [-5, 5], then four
	// smoothing steps with alpha 0.4, beta 0.2, gamma 0.3.
	p := Params{SeasonLength: 2, Alpha: 0.4, Beta: 0.2, Gamma: 0.3}
	got, err := Forecast(monthly("2025-01", 10, 20, 12, 22), 3, p)
	require.NoError(t, err)
	assert.Equal(t, analytics.ModelHoltWinters, got.Model)
	assert.Equal(t, analytics.Series{
		{Month: "2025-05", Value: 13}, // 13.2536
		{Month: "2025-06", Value: 24}, // 23.7917
		{Month: "2025-07", Value: 15}, // 14.8519
	}, got.Points)
}

func TestHoltWinters_State(t *testing.T) {
	hw := NewHoltWinters(Params{SeasonLength: 2, Alpha: 0.4, Beta: 0.2, Gamma: 0.3})
	assert.False(t, hw.IsInitialized())
	assert.Equal(t, 0.0, hw.Predict(1))

	require.NoError(t, hw.Fit([]float64{10, 20, 12, 22}))
	assert.True(t, hw.IsInitialized())
	assert.Equal(t, 4, hw.Samples)
	assert.InDelta(t, 17.5499648, hw.Level, 1e-9)
	assert.InDelta(t, 0.79911936, hw.Trend, 1e-9)
	assert.InDelta(t, -5.095472, hw.Seasonal[0], 1e-9)
	assert.InDelta(t, 4.64349056, hw.Seasonal[1], 1e-9)
	assert.InDelta(t, 17.5499648+4.64349056, hw.Fitted(), 1e-9)
	assert.InDelta(t, 13.25361216, hw.Predict(1), 1e-9)
}

func TestHoltWinters_FitTooShort(t *testing.T) {
	hw := NewHoltWinters(DefaultParams())
	err := hw.Fit(make([]float64, 23))
	assert.ErrorIs(t, err, ErrInsufficientHistory)
	assert.False(t, hw.IsInitialized())
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
	assert.NoError(t, Params{SeasonLength: 2, Alpha: 0, Beta: 1, Gamma: 0}.Validate())

	bad := []Params{
		{SeasonLength: 1, Alpha: 0.4, Beta: 0.2, Gamma: 0.3},
		{SeasonLength: 12, Alpha: 1.1, Beta: 0.2, Gamma: 0.3},
		{SeasonLength: 12, Alpha: 0.4, Beta: -0.1, Gamma: 0.3},
		{SeasonLength: 12, Alpha: 0.4, Beta: 0.2, Gamma: 2},
	}
	for _, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrInvalidParams, "%+v", p)
		_, err := Forecast(monthly("2025-01", 1, 2, 3), 3, p)
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
}

func TestLinearTrend(t *testing.T) {
	assert.Nil(t, LinearTrend(monthly("2025-01", 5)))

	// y = 2x + 1
	tr := LinearTrend(monthly("2025-01", 1, 3, 5, 7, 9))
	require.NotNil(t, tr)
	assert.InDelta(t, 2.0, tr.Slope, 1e-9)
	assert.InDelta(t, 1.0, tr.Intercept, 1e-9)
	assert.InDelta(t, 1.0, tr.RSquared, 1e-9)

	flat := LinearTrend(monthly("2025-01", 5, 5, 5))
	require.NotNil(t, flat)
	assert.InDelta(t, 0.0, flat.Slope, 1e-9)
	assert.Equal(t, 0.0, flat.RSquared)
}

func TestScenarios(t *testing.T) {
	history := []analytics.ScenarioPoint{
		{Month: "2025-01", Services: 100, Revenue: 1000},
		{Month: "2025-06", Services: 12, Revenue: 1200},
		{Month: "2025-04", Services: 10, Revenue: 1000},
		{Month: "2025-05", Services: 11, Revenue: 1100},
		{Month: "2025-02", Services: 100, Revenue: 1000},
		{Month: "2025-03", Services: 100, Revenue: 1000},
		{Month: "2024-12", Services: 999, Revenue: 9999}, // outside the 6-month window
	}
	got, err := Scenarios(history, 2, DefaultGrowth(), time.Time{})
	require.NoError(t, err)

	require.Len(t, got.History, ScenarioHistory)
	assert.Equal(t, "2025-01", got.History[0].Month)
	assert.Equal(t, analytics.ScenarioPoint{Services: 11, Revenue: 1100}, got.BaseAverage)

	require.Len(t, got.Projections, 3)
	moderate := got.Projections[1]
	assert.Equal(t, "Moderate", moderate.Name)
	assert.Equal(t, []analytics.ScenarioPoint{
		{Month: "2025-07", Services: 14, Revenue: 1375}, // 11 * 1.25 = 13.75
		{Month: "2025-08", Services: 17, Revenue: 1650}, // 11 * 1.5 = 16.5
	}, moderate.Items)
}

func TestScenarios_NoHistory(t *testing.T) {
	now := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	got, err := Scenarios(nil, 1, DefaultGrowth(), now)
	require.NoError(t, err)
	for _, sc := range got.Projections {
		require.Len(t, sc.Items, 1)
		assert.Equal(t, "2026-01", sc.Items[0].Month)
		assert.Equal(t, 0.0, sc.Items[0].Services)
	}
}
