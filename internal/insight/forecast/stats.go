package forecast

import (
	"gonum.org/v1/gonum/stat"

	"github.com/HerbHall/pitstop/pkg/analytics"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LinearTrend fits a least-squares line through the series, with x the
// month offset from the first point. Returns nil if fewer than 2 points
// are provided.
func LinearTrend(s analytics.Series) *analytics.Trend {
	if len(s) < 2 {
		return nil
	}
	xs := make([]float64, len(s))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := s.Values()

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	t := &analytics.Trend{Slope: slope, Intercept: intercept}
	// R-squared is undefined for a flat line.
	if stat.Variance(ys, nil) > 0 {
		t.RSquared = stat.RSquared(xs, ys, nil, intercept, slope)
	}
	return t
}
