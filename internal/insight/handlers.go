package insight

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/pkg/analytics"
	"github.com/HerbHall/pitstop/pkg/models"
	"github.com/HerbHall/pitstop/pkg/plugin"
)

// PermissionView is the permission every analytics route requires.
const PermissionView = "bi_view"

// ForecastResponse wraps a single forecast.
type ForecastResponse struct {
	Metric   string                   `json:"metric"`
	Forecast analytics.ForecastResult `json:"forecast"`
}

// SeasonalityResponse wraps a seasonality table.
type SeasonalityResponse struct {
	Metric      string                         `json:"metric"`
	Seasonality []analytics.SeasonalIndexEntry `json:"seasonality"`
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/overview", Permission: PermissionView, Handler: m.handleOverview},
		{Method: "GET", Path: "/forecast/{metric}", Permission: PermissionView, Handler: m.handleForecast},
		{Method: "GET", Path: "/seasonality/{metric}", Permission: PermissionView, Handler: m.handleSeasonality},
		{Method: "GET", Path: "/alerts", Permission: PermissionView, Handler: m.handleAlerts},
		{Method: "GET", Path: "/segmentation", Permission: PermissionView, Handler: m.handleSegmentation},
		{Method: "GET", Path: "/expansion", Permission: PermissionView, Handler: m.handleExpansion},
		{Method: "GET", Path: "/recommendations", Permission: PermissionView, Handler: m.handleRecommendations},
	}
}

// handleOverview returns the combined analytics dashboard.
//
//	@Summary		Analytics overview
//	@Description	Monthly service, parts and revenue series with seasonality, forecasts, totals and insights.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} analytics.Overview
//	@Failure		401 {object} models.APIProblem
//	@Failure		403 {object} models.APIProblem
//	@Failure		503 {object} models.APIProblem
//	@Router			/bi/overview [get]
func (m *Module) handleOverview(w http.ResponseWriter, r *http.Request) {
	if m.source == nil {
		m.writeFailure(w, r, ErrNoDataSource)
		return
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	services, err := m.source.ServiceRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	parts, err := m.source.PartsRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	ov, err := buildOverview(services, parts, m.cfg)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	countForecast(MetricService, ov.Forecast.Service)
	countForecast(MetricParts, ov.Forecast.Parts)
	countForecast(MetricRevenue, ov.Forecast.Revenue)
	writeJSON(w, http.StatusOK, ov)
}

// handleForecast projects one metric into future months.
//
//	@Summary		Metric forecast
//	@Description	Holt-Winters forecast of a monthly metric, falling back to a moving average when less than two years of history exist.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Param			metric path string true "Metric" Enums(service, parts, revenue)
//	@Param			months query int false "Months ahead" default(3) maximum(24)
//	@Success		200 {object} ForecastResponse
//	@Failure		400 {object} models.APIProblem
//	@Failure		404 {object} models.APIProblem
//	@Router			/bi/forecast/{metric} [get]
func (m *Module) handleForecast(w http.ResponseWriter, r *http.Request) {
	metric := r.PathValue("metric")
	months, ok := m.parseMonths(w, r)
	if !ok {
		return
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	res, err := m.Forecast(ctx, metric, months)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ForecastResponse{Metric: metric, Forecast: res})
}

// handleSeasonality returns the calendar-month index of one metric.
//
//	@Summary		Metric seasonality
//	@Description	Twelve calendar-month buckets with average and index relative to the mean month.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Param			metric path string true "Metric" Enums(service, parts, revenue)
//	@Success		200 {object} SeasonalityResponse
//	@Failure		404 {object} models.APIProblem
//	@Router			/bi/seasonality/{metric} [get]
func (m *Module) handleSeasonality(w http.ResponseWriter, r *http.Request) {
	metric := r.PathValue("metric")
	ctx, cancel := m.queryContext(r)
	defer cancel()

	entries, err := m.Seasonality(ctx, metric)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SeasonalityResponse{Metric: metric, Seasonality: entries})
}

// handleAlerts returns month-over-month swings in service and parts volume.
//
//	@Summary		Swing alerts
//	@Description	Flags every month whose service count or outgoing parts moved by at least the threshold percent.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Param			threshold query number false "Percent threshold, finite and non-negative" default(25) minimum(0)
//	@Success		200 {object} analytics.AlertReport
//	@Failure		400 {object} models.APIProblem
//	@Router			/bi/alerts [get]
func (m *Module) handleAlerts(w http.ResponseWriter, r *http.Request) {
	threshold := m.cfg.AlertThreshold
	if s := r.URL.Query().Get("threshold"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !validThreshold(v) {
			writeError(w, http.StatusBadRequest, "threshold must be a finite non-negative number")
			return
		}
		threshold = v
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	report, err := m.alertReport(ctx, threshold)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleSegmentation returns customer tiers and per-type and per-brand
// visit forecasts.
//
//	@Summary		Customer segmentation
//	@Description	Frequency and value tiers, customer type and vehicle brand counts, plus monthly distinct visitors per customer type and leading brand with a moving-average projection.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} analytics.Segmentation
//	@Router			/bi/segmentation [get]
func (m *Module) handleSegmentation(w http.ResponseWriter, r *http.Request) {
	if m.source == nil {
		m.writeFailure(w, r, ErrNoDataSource)
		return
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	visits, err := m.source.VisitRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	stats, err := m.source.CustomerStats(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	vehicles, err := m.source.VehicleRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	seg, err := buildSegmentation(visits, stats, vehicles, m.cfg.ForecastMonths)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// handleExpansion returns growth scenarios for capacity planning.
//
//	@Summary		Growth scenarios
//	@Description	Projects service volume and revenue under conservative, moderate and aggressive growth.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Param			months query int false "Months ahead" default(3) maximum(24)
//	@Success		200 {object} analytics.Expansion
//	@Failure		400 {object} models.APIProblem
//	@Router			/bi/expansion [get]
func (m *Module) handleExpansion(w http.ResponseWriter, r *http.Request) {
	months, ok := m.parseMonths(w, r)
	if !ok {
		return
	}
	if m.source == nil {
		m.writeFailure(w, r, ErrNoDataSource)
		return
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	services, err := m.source.ServiceRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	exp, err := buildExpansion(services, months, m.now())
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// handleRecommendations suggests service offerings from demand and part sales.
//
//	@Summary		Service recommendations
//	@Description	Upsells for the busiest service packages, new services where part sales outpace bookings, and recurring offers.
//	@Tags			bi
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} analytics.Recommendations
//	@Failure		503 {object} models.APIProblem
//	@Router			/bi/recommendations [get]
func (m *Module) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if m.source == nil {
		m.writeFailure(w, r, ErrNoDataSource)
		return
	}
	ctx, cancel := m.queryContext(r)
	defer cancel()

	services, err := m.source.ServiceRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	parts, err := m.source.PartsRows(ctx)
	if err != nil {
		m.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildRecommendations(services, parts))
}

func (m *Module) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	if m.cfg.QueryTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), m.cfg.QueryTimeout)
}

// parseMonths reads ?months=, defaulting to the configured horizon and
// capping at the configured maximum. It writes a 400 and returns false for
// anything that is not a non-negative integer.
func (m *Module) parseMonths(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("months")
	if s == "" {
		return m.cfg.ForecastMonths, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "months must be a non-negative integer")
		return 0, false
	}
	return min(n, m.cfg.MaxForecastMonths), true
}

// writeFailure maps module errors onto problem responses.
func (m *Module) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnknownMetric):
		writeError(w, http.StatusNotFound, "unknown metric; use service, parts or revenue")
	case errors.Is(err, ErrNoDataSource):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		m.logger.Error("bi request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to compute analytics")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIProblem{
		Type:   models.ProblemBaseURL + strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "-"),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
