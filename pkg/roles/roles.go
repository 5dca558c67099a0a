// Package roles defines typed contracts for module roles.
// Modules that fill a role (declared via PluginInfo.Roles) should implement
// the corresponding interface so callers can use type-safe access via
// PluginResolver.ResolveByRole followed by a type assertion.
package roles

import (
	"context"

	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Role name constants match the strings used in PluginInfo.Roles.
const (
	RoleAnalytics    = "analytics"
	RoleWorkshopData = "workshop_data"
)

// AnalyticsProvider is implemented by modules that project workshop demand.
// Resolve via PluginResolver.ResolveByRole(RoleAnalytics) then type-assert.
type AnalyticsProvider interface {
	// Forecast projects monthsAhead months of the named metric
	// ("service", "parts" or "revenue").
	Forecast(ctx context.Context, metric string, monthsAhead int) (analytics.ForecastResult, error)

	// Seasonality returns the 12-entry calendar-month index of the metric.
	Seasonality(ctx context.Context, metric string) ([]analytics.SeasonalIndexEntry, error)

	// Alerts returns period-over-period swings at or beyond thresholdPercent.
	Alerts(ctx context.Context, thresholdPercent float64) ([]analytics.Alert, error)
}
