// Package insight implements the business-intelligence module: demand
// forecasts, seasonality, swing alerts, customer segmentation and growth
// scenarios over the workshop's transactional data.
package insight

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/insight/forecast"
	"github.com/HerbHall/pitstop/internal/insight/seasonality"
	"github.com/HerbHall/pitstop/pkg/analytics"
	"github.com/HerbHall/pitstop/pkg/plugin"
	"github.com/HerbHall/pitstop/pkg/roles"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin           = (*Module)(nil)
	_ plugin.HTTPProvider     = (*Module)(nil)
	_ plugin.HealthChecker    = (*Module)(nil)
	_ plugin.Validator        = (*Module)(nil)
	_ roles.AnalyticsProvider = (*Module)(nil)
)

// ErrNoDataSource is returned when the workshop data is unavailable.
var ErrNoDataSource = errors.New("workshop data source unavailable")

// ErrUnknownMetric is returned for metrics other than service, parts and revenue.
var ErrUnknownMetric = errors.New("unknown metric")

// Module implements the analytics plugin.
type Module struct {
	logger *zap.Logger
	cfg    InsightConfig
	source DataSource
	bus    plugin.EventBus
	now    func() time.Time

	mu        sync.Mutex
	published map[string]struct{} // metric|month of alerts already announced
}

// Option configures a Module.
type Option func(*Module)

// WithDataSource sets the data source directly instead of resolving the
// workshop module during Init.
func WithDataSource(ds DataSource) Option {
	return func(m *Module) { m.source = ds }
}

// WithClock overrides the clock used to anchor month-relative responses.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// New creates a new analytics plugin instance.
func New(opts ...Option) *Module {
	m := &Module{now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:         "bi",
		Version:      "0.1.0",
		Description:  "Demand forecasting and business intelligence",
		Dependencies: []string{"workshop"},
		Roles:        []string{roles.RoleAnalytics},
		Required:     false,
		APIVersion:   plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("unmarshal bi config: %w", err)
		}
	}

	if m.source == nil && deps.Plugins != nil {
		if p, ok := deps.Plugins.Resolve("workshop"); ok {
			if sp, ok := p.(storeProvider); ok && sp.Store() != nil {
				m.source = sp.Store()
			}
		}
	}
	if m.source == nil {
		m.logger.Warn("bi module has no workshop data source; endpoints will report unavailable")
	}

	m.bus = deps.Bus

	m.logger.Info("bi module initialized",
		zap.Int("forecast_months", m.cfg.ForecastMonths),
		zap.Float64("alert_threshold", m.cfg.AlertThreshold),
		zap.Int("hw_season_length", m.cfg.HoltWinters.SeasonLength),
		zap.Float64("hw_alpha", m.cfg.HoltWinters.Alpha),
		zap.Float64("hw_beta", m.cfg.HoltWinters.Beta),
		zap.Float64("hw_gamma", m.cfg.HoltWinters.Gamma),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("bi module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("bi module stopped")
	return nil
}

// ValidateConfig implements plugin.Validator.
func (m *Module) ValidateConfig() error {
	if err := m.cfg.HoltWinters.Validate(); err != nil {
		return fmt.Errorf("bi config: %w", err)
	}
	if m.cfg.ForecastMonths < 0 || m.cfg.MaxForecastMonths < m.cfg.ForecastMonths {
		return fmt.Errorf("bi config: forecast_months %d must be within [0, max_forecast_months %d]",
			m.cfg.ForecastMonths, m.cfg.MaxForecastMonths)
	}
	if !validThreshold(m.cfg.AlertThreshold) {
		return fmt.Errorf("bi config: alert_threshold %v must be a finite non-negative number", m.cfg.AlertThreshold)
	}
	return nil
}

// -- plugin.HealthChecker --

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	if m.source == nil {
		return plugin.HealthStatus{Status: "degraded", Message: ErrNoDataSource.Error()}
	}
	return plugin.HealthStatus{
		Status: "healthy",
		Details: map[string]string{
			"forecast_months": fmt.Sprint(m.cfg.ForecastMonths),
		},
	}
}

// -- roles.AnalyticsProvider --

// Forecast implements roles.AnalyticsProvider.
func (m *Module) Forecast(ctx context.Context, metric string, monthsAhead int) (analytics.ForecastResult, error) {
	s, err := m.metricSeries(ctx, metric)
	if err != nil {
		return analytics.ForecastResult{}, err
	}
	return m.forecastSeries(metric, s, monthsAhead)
}

// Seasonality implements roles.AnalyticsProvider.
func (m *Module) Seasonality(ctx context.Context, metric string) ([]analytics.SeasonalIndexEntry, error) {
	s, err := m.metricSeries(ctx, metric)
	if err != nil {
		return nil, err
	}
	return seasonality.BuildIndex(s)
}

// Alerts implements roles.AnalyticsProvider. Alerts for the last complete
// month are published on the event bus once.
func (m *Module) Alerts(ctx context.Context, thresholdPercent float64) ([]analytics.Alert, error) {
	report, err := m.alertReport(ctx, thresholdPercent)
	if err != nil {
		return nil, err
	}
	return report.Alerts, nil
}

func (m *Module) alertReport(ctx context.Context, threshold float64) (analytics.AlertReport, error) {
	if m.source == nil {
		return analytics.AlertReport{}, ErrNoDataSource
	}
	services, err := m.source.ServiceRows(ctx)
	if err != nil {
		return analytics.AlertReport{}, fmt.Errorf("load service rows: %w", err)
	}
	parts, err := m.source.PartsRows(ctx)
	if err != nil {
		return analytics.AlertReport{}, fmt.Errorf("load parts rows: %w", err)
	}
	report, err := buildAlerts(services, parts, threshold, m.now())
	if err != nil {
		return analytics.AlertReport{}, err
	}
	m.publishAlerts(ctx, report.Latest.Month, report.Alerts)
	return report, nil
}

// publishAlerts announces the alerts of the last complete month. Each
// metric and month is announced once per process; older months are history
// and repeated reads stay silent.
func (m *Module) publishAlerts(ctx context.Context, month string, alerts []analytics.Alert) {
	var fresh []analytics.Alert
	m.mu.Lock()
	if m.published == nil {
		m.published = make(map[string]struct{})
	}
	for _, a := range alerts {
		if a.Month != month {
			continue
		}
		key := a.Metric + "|" + a.Month
		if _, done := m.published[key]; done {
			continue
		}
		m.published[key] = struct{}{}
		fresh = append(fresh, a)
	}
	m.mu.Unlock()

	for _, a := range fresh {
		alertsTotal.WithLabelValues(a.Metric, a.Level).Inc()
		if m.bus == nil {
			continue
		}
		m.bus.PublishAsync(ctx, plugin.Event{
			Topic:     TopicAlertRaised,
			Source:    "bi",
			Timestamp: m.now(),
			Payload:   a,
		})
	}
	if len(fresh) > 0 {
		m.logger.Debug("alerts raised", zap.Int("count", len(fresh)), zap.String("month", month))
	}
}

// validThreshold reports whether t is usable as a percent threshold.
func validThreshold(t float64) bool {
	return t >= 0 && !math.IsNaN(t) && !math.IsInf(t, 0)
}

func (m *Module) metricSeries(ctx context.Context, metric string) (analytics.Series, error) {
	if !validMetric(metric) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if m.source == nil {
		return nil, ErrNoDataSource
	}
	if metric == MetricParts {
		rows, err := m.source.PartsRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("load parts rows: %w", err)
		}
		return partsSeries(rows), nil
	}
	rows, err := m.source.ServiceRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service rows: %w", err)
	}
	if metric == MetricRevenue {
		return revenueSeries(rows), nil
	}
	return serviceSeries(rows), nil
}

func (m *Module) forecastSeries(metric string, s analytics.Series, monthsAhead int) (analytics.ForecastResult, error) {
	res, err := forecast.Forecast(s, max(0, monthsAhead), m.cfg.HoltWinters)
	if err != nil {
		return analytics.ForecastResult{}, fmt.Errorf("%s forecast: %w", metric, err)
	}
	countForecast(metric, res)
	m.logger.Debug("forecast computed",
		zap.String("metric", metric),
		zap.String("model", res.Model),
		zap.Int("history", len(s)),
		zap.Int("months", monthsAhead),
	)
	return res, nil
}
