// Package forecast projects monthly demand series into future months.
package forecast

import (
	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Window is the number of trailing points the moving average spans.
const Window = 3

// MovingAverage projects monthsAhead points, each the rounded mean of the
// trailing Window values. Every projected value is fed back into the window,
// so later steps average earlier forecasts.
func MovingAverage(s analytics.Series, monthsAhead int) (analytics.Series, error) {
	prepared, err := series.Prepare(s)
	if err != nil {
		return nil, err
	}
	return movingAverage(prepared, monthsAhead)
}

// movingAverage expects a prepared (validated, sorted, gap-filled) series.
func movingAverage(s analytics.Series, monthsAhead int) (analytics.Series, error) {
	last, ok := s.Last()
	if !ok || monthsAhead <= 0 {
		return analytics.Series{}, nil
	}

	values := s.Values()
	out := make(analytics.Series, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		window := values[max(0, len(values)-Window):]
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		next := project(sum / float64(len(window)))

		month, err := series.AddMonths(last.Month, i)
		if err != nil {
			return nil, err
		}
		out = append(out, analytics.TimePoint{Month: month, Value: next})
		values = append(values, next)
	}
	return out, nil
}
