package forecast

import (
	"errors"
	"fmt"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

var (
	// ErrInvalidParams is returned for smoothing constants outside [0,1]
	// or a season shorter than two points.
	ErrInvalidParams = errors.New("invalid holt-winters parameters")
	// ErrInsufficientHistory is returned by Fit when fewer than two full
	// seasons of values are supplied.
	ErrInsufficientHistory = errors.New("holt-winters needs two full seasons of history")
)

// Params are the Holt-Winters smoothing constants.
type Params struct {
	SeasonLength int     `mapstructure:"season_length"` // Points per season (12 for monthly data)
	Alpha        float64 `mapstructure:"alpha"`         // Level smoothing (0-1)
	Beta         float64 `mapstructure:"beta"`          // Trend smoothing (0-1)
	Gamma        float64 `mapstructure:"gamma"`         // Seasonal smoothing (0-1)
}

// DefaultParams returns the constants used for monthly workshop demand.
func DefaultParams() Params {
	return Params{SeasonLength: 12, Alpha: 0.4, Beta: 0.2, Gamma: 0.3}
}

// Validate checks that every constant is in range.
func (p Params) Validate() error {
	if p.SeasonLength < 2 {
		return fmt.Errorf("%w: season length %d < 2", ErrInvalidParams, p.SeasonLength)
	}
	for name, v := range map[string]float64{"alpha": p.Alpha, "beta": p.Beta, "gamma": p.Gamma} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidParams, name, v)
		}
	}
	return nil
}

// HoltWinters implements triple exponential smoothing with additive seasonality.
type HoltWinters struct {
	Alpha       float64   // Level smoothing (0-1)
	Beta        float64   // Trend smoothing (0-1)
	Gamma       float64   // Seasonal smoothing (0-1)
	SeasonLen   int       // Number of points in one season
	Level       float64   // Current level
	Trend       float64   // Current trend
	Seasonal    []float64 // Seasonal components
	Samples     int       // Total samples smoothed
	initialized bool
}

// NewHoltWinters creates an unfitted model. Params must already be valid.
func NewHoltWinters(p Params) *HoltWinters {
	return &HoltWinters{
		Alpha:     p.Alpha,
		Beta:      p.Beta,
		Gamma:     p.Gamma,
		SeasonLen: p.SeasonLength,
		Seasonal:  make([]float64, p.SeasonLength),
	}
}

// Fit initializes the model from the first two seasons of values and then
// smooths over every value, including those two seasons.
func (hw *HoltWinters) Fit(values []float64) error {
	if len(values) < 2*hw.SeasonLen {
		return fmt.Errorf("%w: have %d points, need %d", ErrInsufficientHistory, len(values), 2*hw.SeasonLen)
	}
	hw.initialize(values[:hw.SeasonLen], values[hw.SeasonLen:2*hw.SeasonLen])
	for _, v := range values {
		hw.Update(v)
	}
	return nil
}

// initialize sets level, trend and seasonal components from two seasons.
func (hw *HoltWinters) initialize(season1, season2 []float64) {
	avg1 := mean(season1)
	avg2 := mean(season2)
	for i, v := range season1 {
		hw.Seasonal[i] = v - avg1
	}
	hw.Level = avg1
	hw.Trend = (avg2 - avg1) / float64(hw.SeasonLen)
	hw.Samples = 0
	hw.initialized = true
}

// Update smooths one more value into level, trend and seasonal components.
// It is a no-op before the model has been fitted.
func (hw *HoltWinters) Update(value float64) {
	if !hw.initialized {
		return
	}
	idx := hw.Samples % hw.SeasonLen
	hw.Samples++

	prevLevel := hw.Level
	prevTrend := hw.Trend
	prevSeason := hw.Seasonal[idx]
	hw.Level = hw.Alpha*(value-prevSeason) + (1-hw.Alpha)*(prevLevel+prevTrend)
	hw.Trend = hw.Beta*(hw.Level-prevLevel) + (1-hw.Beta)*prevTrend
	// Seasonal update uses the level already updated above.
	hw.Seasonal[idx] = hw.Gamma*(value-hw.Level) + (1-hw.Gamma)*prevSeason
}

// Predict returns the raw forecast stepsAhead points past the last sample.
func (hw *HoltWinters) Predict(stepsAhead int) float64 {
	if !hw.initialized {
		return 0
	}
	idx := (hw.Samples + stepsAhead - 1) % hw.SeasonLen
	return hw.Level + float64(stepsAhead)*hw.Trend + hw.Seasonal[idx]
}

// Fitted returns the model's expected value for the most recent sample.
func (hw *HoltWinters) Fitted() float64 {
	if !hw.initialized || hw.Samples == 0 {
		return 0
	}
	idx := (hw.Samples - 1) % hw.SeasonLen
	return hw.Level + hw.Seasonal[idx]
}

// IsInitialized returns true once Fit has succeeded.
func (hw *HoltWinters) IsInitialized() bool {
	return hw.initialized
}

// Forecast projects monthsAhead points. Series shorter than two seasons are
// projected with MovingAverage and tagged accordingly; longer ones use
// Holt-Winters. Every value is rounded half-up and floored at zero.
func Forecast(s analytics.Series, monthsAhead int, p Params) (analytics.ForecastResult, error) {
	if err := p.Validate(); err != nil {
		return analytics.ForecastResult{}, err
	}
	prepared, err := series.Prepare(s)
	if err != nil {
		return analytics.ForecastResult{}, err
	}

	if len(prepared) < 2*p.SeasonLength {
		points, err := movingAverage(prepared, monthsAhead)
		if err != nil {
			return analytics.ForecastResult{}, err
		}
		return analytics.ForecastResult{Model: analytics.ModelMovingAverage, Points: points}, nil
	}

	hw := NewHoltWinters(p)
	if err := hw.Fit(prepared.Values()); err != nil {
		return analytics.ForecastResult{}, err
	}

	last, _ := prepared.Last()
	points := make(analytics.Series, 0, max(0, monthsAhead))
	for i := 1; i <= monthsAhead; i++ {
		month, err := series.AddMonths(last.Month, i)
		if err != nil {
			return analytics.ForecastResult{}, err
		}
		points = append(points, analytics.TimePoint{Month: month, Value: project(hw.Predict(i))})
	}
	return analytics.ForecastResult{Model: analytics.ModelHoltWinters, Points: points}, nil
}
