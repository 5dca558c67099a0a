package insight

import (
	"time"

	"github.com/HerbHall/pitstop/internal/insight/forecast"
)

// InsightConfig holds configuration for the analytics module.
type InsightConfig struct {
	ForecastMonths    int             `mapstructure:"forecast_months"`     // Default horizon for forecasts
	MaxForecastMonths int             `mapstructure:"max_forecast_months"` // Upper bound for ?months=
	AlertThreshold    float64         `mapstructure:"alert_threshold"`     // Default percent swing for alerts
	TopCategories     int             `mapstructure:"top_categories"`      // Part categories shown on the overview
	QueryTimeout      time.Duration   `mapstructure:"query_timeout"`       // Per-request data source timeout
	HoltWinters       forecast.Params `mapstructure:"holt_winters"`
}

// DefaultConfig returns sensible defaults for the analytics module.
func DefaultConfig() InsightConfig {
	return InsightConfig{
		ForecastMonths:    3,
		MaxForecastMonths: 24,
		AlertThreshold:    25,
		TopCategories:     4,
		QueryTimeout:      10 * time.Second,
		HoltWinters:       forecast.DefaultParams(),
	}
}
