package insight

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/config"
	"github.com/HerbHall/pitstop/internal/testutil"
	"github.com/HerbHall/pitstop/internal/workshop"
	"github.com/HerbHall/pitstop/pkg/analytics"
	"github.com/HerbHall/pitstop/pkg/plugin"
	"github.com/HerbHall/pitstop/pkg/plugin/plugintest"
	"github.com/HerbHall/pitstop/pkg/roles"
)

func TestPluginContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin {
		return New(WithDataSource(&testutil.FakeSource{}))
	}, nil)
}

func TestInit_WithConfig(t *testing.T) {
	v := viper.New()
	v.Set("forecast_months", 6)
	v.Set("alert_threshold", 40.0)
	v.Set("query_timeout", "2s")
	v.Set("holt_winters.alpha", 0.5)

	m := New(WithDataSource(&testutil.FakeSource{}))
	if err := m.Init(context.Background(), plugin.Dependencies{
		Logger: zap.NewNop(),
		Config: config.New(v),
	}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if m.cfg.ForecastMonths != 6 {
		t.Errorf("ForecastMonths = %d, want 6", m.cfg.ForecastMonths)
	}
	if m.cfg.AlertThreshold != 40 {
		t.Errorf("AlertThreshold = %v, want 40", m.cfg.AlertThreshold)
	}
	if m.cfg.QueryTimeout != 2*time.Second {
		t.Errorf("QueryTimeout = %v, want 2s", m.cfg.QueryTimeout)
	}
	if m.cfg.HoltWinters.Alpha != 0.5 || m.cfg.HoltWinters.SeasonLength != 12 {
		t.Errorf("HoltWinters = %+v, want alpha 0.5 with default season", m.cfg.HoltWinters)
	}
	if err := m.ValidateConfig(); err != nil {
		t.Errorf("ValidateConfig() = %v", err)
	}
}

func TestInit_NilConfigUsesDefaults(t *testing.T) {
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if m.cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", m.cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InsightConfig)
	}{
		{"alpha above one", func(c *InsightConfig) { c.HoltWinters.Alpha = 1.5 }},
		{"season too short", func(c *InsightConfig) { c.HoltWinters.SeasonLength = 1 }},
		{"negative months", func(c *InsightConfig) { c.ForecastMonths = -1 }},
		{"months above max", func(c *InsightConfig) { c.ForecastMonths = 30 }},
		{"negative threshold", func(c *InsightConfig) { c.AlertThreshold = -5 }},
		{"NaN threshold", func(c *InsightConfig) { c.AlertThreshold = math.NaN() }},
		{"infinite threshold", func(c *InsightConfig) { c.AlertThreshold = math.Inf(1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			m.cfg = DefaultConfig()
			tc.mutate(&m.cfg)
			if err := m.ValidateConfig(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

type workshopStub struct {
	plugin.Plugin
	store *workshop.Store
}

func (w workshopStub) Store() *workshop.Store { return w.store }

type resolver map[string]plugin.Plugin

func (r resolver) Resolve(name string) (plugin.Plugin, bool) {
	p, ok := r[name]
	return p, ok
}

func (r resolver) ResolveByRole(string) []plugin.Plugin { return nil }

func TestInit_ResolvesWorkshopStore(t *testing.T) {
	ctx := context.Background()
	ws, err := workshop.NewStore(ctx, testutil.NewStore(t))
	if err != nil {
		t.Fatalf("workshop.NewStore: %v", err)
	}

	m := New()
	if err := m.Init(ctx, plugin.Dependencies{
		Logger:  zap.NewNop(),
		Plugins: resolver{"workshop": workshopStub{store: ws}},
	}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if m.source == nil {
		t.Fatal("workshop store not resolved")
	}
	if got := m.Health(ctx).Status; got != "healthy" {
		t.Errorf("Health = %q, want healthy", got)
	}
}

func TestHealth_DegradedWithoutSource(t *testing.T) {
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	h := m.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", h.Status)
	}
	if _, err := m.Forecast(context.Background(), MetricService, 3); !errors.Is(err, ErrNoDataSource) {
		t.Errorf("Forecast error = %v, want ErrNoDataSource", err)
	}
}

func TestInfo_DeclaresAnalyticsRole(t *testing.T) {
	info := New().Info()
	if info.Name != "bi" {
		t.Errorf("Name = %q, want bi", info.Name)
	}
	if len(info.Dependencies) != 1 || info.Dependencies[0] != "workshop" {
		t.Errorf("Dependencies = %v", info.Dependencies)
	}
	var found bool
	for _, r := range info.Roles {
		found = found || r == roles.RoleAnalytics
	}
	if !found {
		t.Errorf("Roles = %v, want %q", info.Roles, roles.RoleAnalytics)
	}
}

func newModule(t *testing.T, src *testutil.FakeSource, bus plugin.EventBus) *Module {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC) }
	m := New(WithDataSource(src), WithClock(now))
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop(), Bus: bus}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return m
}

func TestAnalyticsProvider(t *testing.T) {
	src := &testutil.FakeSource{
		Services: testutil.ServiceRows(testutil.Month(2024, time.January), []int{10, 20, 15}, workshop.ServiceTuning, 100_000),
	}
	bus := testutil.NewMockBus()
	var provider roles.AnalyticsProvider = newModule(t, src, bus)
	ctx := context.Background()

	res, err := provider.Forecast(ctx, MetricService, 2)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if res.Model != analytics.ModelMovingAverage || len(res.Points) != 2 || res.Points[0].Month != "2024-04" {
		t.Errorf("Forecast = %+v", res)
	}
	if _, err := provider.Forecast(ctx, "tyres", 2); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("unknown metric error = %v", err)
	}

	idx, err := provider.Seasonality(ctx, MetricRevenue)
	if err != nil || len(idx) != 12 {
		t.Fatalf("Seasonality = %v, %v", idx, err)
	}

	alerts, err := provider.Alerts(ctx, 25)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alerts = %+v, want 2", alerts)
	}
	// Only the last complete month (2024-03) is announced.
	published := bus.Topic(TopicAlertRaised)
	if len(published) != 1 {
		t.Fatalf("published %d alert events, want 1", len(published))
	}
	if a, ok := published[0].Payload.(analytics.Alert); !ok || a.Month != "2024-03" || a.Level != analytics.LevelWarning {
		t.Errorf("payload = %#v, want 2024-03 warning", published[0].Payload)
	}
	if published[0].Source != "bi" {
		t.Errorf("event source = %q, want bi", published[0].Source)
	}

	if _, err := provider.Alerts(ctx, 10); err != nil {
		t.Fatalf("Alerts (repeat): %v", err)
	}
	if got := len(bus.Topic(TopicAlertRaised)); got != 1 {
		t.Errorf("repeat evaluation published again: %d events, want 1", got)
	}
}

func TestAnalyticsProvider_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	m := newModule(t, &testutil.FakeSource{Err: boom}, nil)

	if _, err := m.Forecast(context.Background(), MetricParts, 3); !errors.Is(err, boom) {
		t.Errorf("Forecast error = %v, want wrapped source error", err)
	}
	if _, err := m.Alerts(context.Background(), 10); !errors.Is(err, boom) {
		t.Errorf("Alerts error = %v, want wrapped source error", err)
	}
}
