// Package anomaly flags period-over-period swings in monthly series.
package anomaly

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// DefaultThreshold is the percent swing that raises an alert when the
// caller supplies none.
const DefaultThreshold = 25.0

// ErrInvalidThreshold is returned for negative, NaN or infinite thresholds.
var ErrInvalidThreshold = errors.New("threshold must be a finite non-negative number")

// PercentChange returns the change from previous to current in percent.
// A zero previous yields 0 when current is also zero and a flat 100
// otherwise.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// Evaluate sorts s by month and returns an alert for every pair of
// consecutive points whose absolute percent change is at least
// thresholdPercent. Malformed or duplicate month keys are rejected. Gaps are
// not filled; the builder's series already has one point per month.
func Evaluate(metric string, s analytics.Series, thresholdPercent float64) ([]analytics.Alert, error) {
	if thresholdPercent < 0 || math.IsNaN(thresholdPercent) || math.IsInf(thresholdPercent, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, thresholdPercent)
	}
	if err := series.Validate(s); err != nil {
		return nil, err
	}
	s = series.Sorted(s)

	var alerts []analytics.Alert
	for i := 1; i < len(s); i++ {
		prev, curr := s[i-1], s[i]
		change := PercentChange(curr.Value, prev.Value)
		if math.Abs(change) < thresholdPercent {
			continue
		}

		rounded := series.Exact(change).Round(1)
		direction, level := "down", analytics.LevelWarning
		if change > 0 {
			direction, level = "up", analytics.LevelPositive
		}
		alerts = append(alerts, analytics.Alert{
			Title:  fmt.Sprintf("%s %s", metric, direction),
			Detail: fmt.Sprintf("%s %s %s (%s%% vs %s).", curr.Month, strings.ToLower(metric), formatValue(curr.Value), rounded.StringFixed(1), prev.Month),
			Metric: metric,
			Month:  curr.Month,
			Change: rounded.InexactFloat64(),
			Level:  level,
		})
	}
	return alerts, nil
}

func formatValue(v float64) string {
	return decimal.NewFromFloat(v).String()
}
