package insight

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HerbHall/pitstop/internal/insight/anomaly"
	"github.com/HerbHall/pitstop/internal/insight/forecast"
	"github.com/HerbHall/pitstop/internal/insight/seasonality"
	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/internal/workshop"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Forecastable metrics.
const (
	MetricService = "service"
	MetricParts   = "parts"
	MetricRevenue = "revenue"
)

// Display names used in alert titles.
const (
	alertMetricService = "Service"
	alertMetricParts   = "Parts out"
)

func validMetric(metric string) bool {
	switch metric {
	case MetricService, MetricParts, MetricRevenue:
		return true
	}
	return false
}

func serviceSeries(rows []workshop.ServiceRow) analytics.Series {
	recs := make([]series.Record, len(rows))
	for i, r := range rows {
		recs[i] = series.Count(r.ScheduledAt)
	}
	return series.Build(recs)
}

func revenueSeries(rows []workshop.ServiceRow) analytics.Series {
	recs := make([]series.Record, len(rows))
	for i, r := range rows {
		recs[i] = series.Record{At: r.ScheduledAt, Value: r.TotalCost}
	}
	return series.Build(recs)
}

func partsSeries(rows []workshop.PartsRow) analytics.Series {
	recs := make([]series.Record, len(rows))
	for i, r := range rows {
		recs[i] = series.Record{At: r.At, Value: r.Quantity}
	}
	return series.Build(recs)
}

// topPartsSeries sums only the quantities of the given categories. Months
// with outgoing parts from other categories stay in the series as zero.
func topPartsSeries(rows []workshop.PartsRow, top []analytics.CategoryShare) analytics.Series {
	keep := make(map[string]struct{}, len(top))
	for _, c := range top {
		keep[c.Category] = struct{}{}
	}
	recs := make([]series.Record, len(rows))
	for i, r := range rows {
		recs[i] = series.Record{At: r.At}
		if _, ok := keep[r.Category]; ok {
			recs[i].Value = r.Quantity
		}
	}
	return series.Build(recs)
}

// serviceMix counts orders per normalised service type for every month of
// months, which must be the gap-filled service series.
func serviceMix(rows []workshop.ServiceRow, months analytics.Series) []analytics.ServiceMix {
	type bucket struct {
		counts  map[string]float64
		revenue decimal.Decimal
	}
	byMonth := make(map[string]*bucket, len(months))
	for _, p := range months {
		counts := make(map[string]float64, len(workshop.ServiceTypes))
		for _, st := range workshop.ServiceTypes {
			counts[st] = 0
		}
		byMonth[p.Month] = &bucket{counts: counts}
	}
	for _, r := range rows {
		b, ok := byMonth[series.FormatMonth(r.ScheduledAt)]
		if !ok {
			continue
		}
		b.counts[r.ServiceType]++
		b.revenue = b.revenue.Add(r.TotalCost)
	}

	out := make([]analytics.ServiceMix, 0, len(months))
	for _, p := range months {
		b := byMonth[p.Month]
		out = append(out, analytics.ServiceMix{
			Month:   p.Month,
			Counts:  b.counts,
			Total:   p.Value,
			Revenue: b.revenue.InexactFloat64(),
		})
	}
	return out
}

// topCategories returns the n categories with the most outgoing quantity,
// ties broken by name.
func topCategories(rows []workshop.PartsRow, n int) []analytics.CategoryShare {
	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.Category] = totals[r.Category].Add(r.Quantity)
	}
	out := make([]analytics.CategoryShare, 0, len(totals))
	for cat, qty := range totals {
		out = append(out, analytics.CategoryShare{Category: cat, Quantity: qty.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func total(s analytics.Series) float64 {
	sum := decimal.Zero
	for _, p := range s {
		sum = sum.Add(decimal.NewFromFloat(p.Value))
	}
	return sum.InexactFloat64()
}

func buildOverview(services []workshop.ServiceRow, parts []workshop.PartsRow, cfg InsightConfig) (analytics.Overview, error) {
	top := topCategories(parts, cfg.TopCategories)
	ov := analytics.Overview{
		Service:       serviceSeries(services),
		Parts:         topPartsSeries(parts, top),
		Revenue:       revenueSeries(services),
		TopCategories: top,
	}
	ov.ServiceMix = serviceMix(services, ov.Service)

	var err error
	if ov.Seasonality, err = seasonality.BuildIndex(ov.Service); err != nil {
		return analytics.Overview{}, fmt.Errorf("service seasonality: %w", err)
	}
	if ov.Forecast.Service, err = forecast.Forecast(ov.Service, cfg.ForecastMonths, cfg.HoltWinters); err != nil {
		return analytics.Overview{}, fmt.Errorf("service forecast: %w", err)
	}
	if ov.Forecast.Parts, err = forecast.Forecast(ov.Parts, cfg.ForecastMonths, cfg.HoltWinters); err != nil {
		return analytics.Overview{}, fmt.Errorf("parts forecast: %w", err)
	}
	if ov.Forecast.Revenue, err = forecast.Forecast(ov.Revenue, cfg.ForecastMonths, cfg.HoltWinters); err != nil {
		return analytics.Overview{}, fmt.Errorf("revenue forecast: %w", err)
	}
	ov.RevenueTrend = forecast.LinearTrend(ov.Revenue)

	ov.Summary = analytics.Summary{
		TotalServices:   total(ov.Service),
		TotalParts:      total(ov.Parts),
		TotalRevenue:    total(ov.Revenue),
		PeakSeasonMonth: "-",
	}
	peak, hasPeak := seasonality.Peak(ov.Seasonality)
	hasPeak = hasPeak && len(ov.Service) > 0
	if hasPeak {
		ov.Summary.PeakSeasonMonth = peak.Month
	}

	categories := make([]string, len(ov.TopCategories))
	for i, c := range ov.TopCategories {
		categories[i] = c.Category
	}
	ov.Insights = []analytics.Insight{
		{Title: "Dominant part categories", Level: "info", Detail: "No outgoing parts recorded yet."},
		{Title: "Busiest month", Level: "highlight", Detail: "No seasonal data yet."},
		{Title: "Forecast", Level: "neutral", Detail: "Not enough data to forecast yet."},
	}
	if len(categories) > 0 {
		ov.Insights[0].Detail = "Top categories: " + strings.Join(categories, ", ")
	}
	if hasPeak {
		ov.Insights[1].Detail = fmt.Sprintf("Activity peaks in %s (index %s)", peak.Month, strconv.FormatFloat(peak.Index, 'f', -1, 64))
	}
	if pts := ov.Forecast.Service.Points; len(pts) > 0 {
		ov.Insights[2].Detail = fmt.Sprintf("Estimate for %s - %s (%s).", pts[0].Month, pts[len(pts)-1].Month, ov.Forecast.Service.Model)
	}
	if t := ov.RevenueTrend; t != nil {
		ov.Insights = append(ov.Insights, trendInsight(t))
	}
	return ov, nil
}

func trendInsight(t *analytics.Trend) analytics.Insight {
	in := analytics.Insight{Title: "Revenue trend", Level: "info", Detail: "Revenue is flat month over month."}
	slope := forecast.RoundHalfUp(t.Slope)
	switch {
	case slope > 0:
		in.Detail = fmt.Sprintf("Revenue is rising by about %s per month.", strconv.FormatFloat(slope, 'f', -1, 64))
	case slope < 0:
		in.Detail = fmt.Sprintf("Revenue is falling by about %s per month.", strconv.FormatFloat(-slope, 'f', -1, 64))
	}
	return in
}

func lookup(s analytics.Series, month string) float64 {
	for _, p := range s {
		if p.Month == month {
			return p.Value
		}
	}
	return 0
}

func buildAlerts(services []workshop.ServiceRow, parts []workshop.PartsRow, threshold float64, now time.Time) (analytics.AlertReport, error) {
	svc := serviceSeries(services)
	prt := partsSeries(parts)

	alerts, err := anomaly.Evaluate(alertMetricService, svc, threshold)
	if err != nil {
		return analytics.AlertReport{}, fmt.Errorf("service alerts: %w", err)
	}
	partsAlerts, err := anomaly.Evaluate(alertMetricParts, prt, threshold)
	if err != nil {
		return analytics.AlertReport{}, fmt.Errorf("parts alerts: %w", err)
	}
	alerts = append(alerts, partsAlerts...)
	if alerts == nil {
		alerts = []analytics.Alert{}
	}

	latest, err := series.AddMonths(series.FormatMonth(now), -1)
	if err != nil {
		return analytics.AlertReport{}, err
	}
	return analytics.AlertReport{
		Threshold: threshold,
		Alerts:    alerts,
		Latest: analytics.MonthTotals{
			Month:   latest,
			Service: lookup(svc, latest),
			Parts:   lookup(prt, latest),
		},
	}, nil
}

// Customer frequency and value tiers.
const (
	frequencyLoyal  = "Loyal"
	frequencyRepeat = "Repeat"
	frequencyNew    = "New"

	valueHigh = "High Value"
	valueMid  = "Mid Value"
	valueLow  = "Low Value"
)

var (
	highValueFloor = decimal.NewFromInt(1_500_000)
	midValueFloor  = decimal.NewFromInt(500_000)
)

func frequencyTier(orders int) string {
	switch {
	case orders >= 6:
		return frequencyLoyal
	case orders >= 3:
		return frequencyRepeat
	default:
		return frequencyNew
	}
}

func valueTier(revenue decimal.Decimal) string {
	switch {
	case revenue.GreaterThanOrEqual(highValueFloor):
		return valueHigh
	case revenue.GreaterThanOrEqual(midValueFloor):
		return valueMid
	default:
		return valueLow
	}
}

// Brand limits of the segmentation response.
const (
	topBrandCount      = 5
	forecastBrandCount = 3
)

// buildSegmentation counts distinct visiting customers per type and month,
// aligns every type onto the same gap-filled month range and projects each
// with the moving average. The most common vehicle brands get the same
// treatment, counting customers who own a vehicle of the brand.
func buildSegmentation(visits []workshop.VisitRow, stats []workshop.CustomerStats, vehicles []workshop.VehicleRow, monthsAhead int) (analytics.Segmentation, error) {
	seg := analytics.Segmentation{
		TotalCustomers: len(stats),
		ByFrequency:    map[string]int{frequencyLoyal: 0, frequencyRepeat: 0, frequencyNew: 0},
		ByValue:        map[string]int{valueHigh: 0, valueMid: 0, valueLow: 0},
		Types:          make([]analytics.Segment, 0, len(workshop.CustomerTypes)),
		Brands:         []analytics.BrandSegment{},
	}
	perTypeCount := make(map[string]int, len(workshop.CustomerTypes))
	for _, cs := range stats {
		seg.ByFrequency[frequencyTier(cs.Orders)]++
		seg.ByValue[valueTier(cs.Revenue)]++
		perTypeCount[cs.CustomerType]++
	}
	seg.TypeSegments = typeShares(perTypeCount)
	seg.TopBrands = topBrands(vehicles, topBrandCount)

	// Distinct customers per (type, month).
	seen := make(map[string]struct{}, len(visits))
	perType := make(map[string][]series.Record, len(workshop.CustomerTypes))
	all := make([]series.Record, 0, len(visits))
	for _, v := range visits {
		key := v.CustomerType + "|" + series.FormatMonth(v.At) + "|" + v.CustomerID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		perType[v.CustomerType] = append(perType[v.CustomerType], series.Count(v.At))
		all = append(all, series.Count(v.At))
	}
	months := series.Build(all)

	for _, ct := range workshop.CustomerTypes {
		history, projected, err := alignedForecast(months, perType[ct], monthsAhead)
		if err != nil {
			return analytics.Segmentation{}, fmt.Errorf("%s forecast: %w", ct, err)
		}
		seg.Types = append(seg.Types, analytics.Segment{CustomerType: ct, History: history, Forecast: projected})
	}

	// Distinct customers per (brand, month) for the leading brands.
	owners := make(map[string][]string, len(vehicles))
	for _, v := range vehicles {
		owners[v.CustomerID] = append(owners[v.CustomerID], v.Brand)
	}
	forecastBrands := make(map[string]bool, forecastBrandCount)
	for i, b := range seg.TopBrands {
		if i == forecastBrandCount {
			break
		}
		forecastBrands[b.Brand] = true
	}
	perBrand := make(map[string][]series.Record, len(forecastBrands))
	seen = make(map[string]struct{}, len(visits))
	for _, v := range visits {
		for _, brand := range owners[v.CustomerID] {
			if !forecastBrands[brand] {
				continue
			}
			key := brand + "|" + series.FormatMonth(v.At) + "|" + v.CustomerID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			perBrand[brand] = append(perBrand[brand], series.Count(v.At))
		}
	}
	for _, b := range seg.TopBrands {
		if !forecastBrands[b.Brand] {
			continue
		}
		history, projected, err := alignedForecast(months, perBrand[b.Brand], monthsAhead)
		if err != nil {
			return analytics.Segmentation{}, fmt.Errorf("%s forecast: %w", b.Brand, err)
		}
		seg.Brands = append(seg.Brands, analytics.BrandSegment{Brand: b.Brand, History: history, Forecast: projected})
	}
	return seg, nil
}

// alignedForecast places recs onto the month range of months, zero-filling
// months without records, and projects the result with the moving average.
func alignedForecast(months analytics.Series, recs []series.Record, monthsAhead int) (analytics.Series, analytics.Series, error) {
	byMonth := series.BuildRaw(recs)
	history := make(analytics.Series, len(months))
	for i, p := range months {
		history[i] = analytics.TimePoint{Month: p.Month, Value: lookup(byMonth, p.Month)}
	}
	projected, err := forecast.MovingAverage(history, monthsAhead)
	if err != nil {
		return nil, nil, err
	}
	return history, projected, nil
}

// typeShares lists the customer count of every known customer type that has
// customers, largest first. Customers without a type are left out.
func typeShares(counts map[string]int) []analytics.TypeShare {
	out := make([]analytics.TypeShare, 0, len(counts))
	for _, ct := range workshop.CustomerTypes {
		if ct == workshop.CustomerUnknown || counts[ct] == 0 {
			continue
		}
		out = append(out, analytics.TypeShare{CustomerType: ct, Customers: counts[ct]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Customers > out[j].Customers })
	return out
}

// topBrands returns the n brands with the most vehicles, ties broken by name.
func topBrands(vehicles []workshop.VehicleRow, n int) []analytics.BrandShare {
	counts := make(map[string]int)
	for _, v := range vehicles {
		counts[v.Brand]++
	}
	out := make([]analytics.BrandShare, 0, len(counts))
	for brand, c := range counts {
		out = append(out, analytics.BrandShare{Brand: brand, Vehicles: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vehicles != out[j].Vehicles {
			return out[i].Vehicles > out[j].Vehicles
		}
		return out[i].Brand < out[j].Brand
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func buildExpansion(services []workshop.ServiceRow, months int, now time.Time) (analytics.Expansion, error) {
	svc := serviceSeries(services)
	rev := revenueSeries(services)
	history := make([]analytics.ScenarioPoint, len(svc))
	for i, p := range svc {
		history[i] = analytics.ScenarioPoint{Month: p.Month, Services: p.Value, Revenue: lookup(rev, p.Month)}
	}
	return forecast.Scenarios(history, months, forecast.DefaultGrowth(), now)
}
