// Package analytics provides public SDK types for the Pitstop analytics system.
// Every type here is built fresh per request; none of them are persisted.
package analytics

// Forecast model tags reported in ForecastResult.Model.
const (
	ModelHoltWinters   = "holt_winters"
	ModelMovingAverage = "moving_average"
)

// Alert levels reported in Alert.Level.
const (
	LevelPositive = "positive"
	LevelWarning  = "warning"
)

// TimePoint is a single monthly observation. Month is a "YYYY-MM" key.
type TimePoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Series is an ordered run of TimePoints, unique by month and sorted ascending.
type Series []TimePoint

// Values returns the point values in series order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Last returns the final point and false when the series is empty.
func (s Series) Last() (TimePoint, bool) {
	if len(s) == 0 {
		return TimePoint{}, false
	}
	return s[len(s)-1], true
}

// ForecastResult is a projection tagged with the model that produced it.
type ForecastResult struct {
	Model  string `json:"model"` // "holt_winters" or "moving_average"
	Points Series `json:"points"`
}

// SeasonalIndexEntry is one calendar-month bucket of a seasonality table.
type SeasonalIndexEntry struct {
	Month   string  `json:"month"` // "Jan" .. "Dec"
	Average float64 `json:"average"`
	Index   float64 `json:"index"`
}

// Alert flags a period-over-period swing beyond a threshold.
type Alert struct {
	Title  string  `json:"title"`
	Detail string  `json:"detail"`
	Metric string  `json:"metric"`
	Month  string  `json:"month"`
	Change float64 `json:"change"` // signed percent, 1 decimal
	Level  string  `json:"level"`  // "positive" or "warning"
}

// Trend summarises the linear direction of a monthly series.
type Trend struct {
	Slope     float64 `json:"slope"` // change in value per month
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// ScenarioPoint is one projected month of a growth scenario.
type ScenarioPoint struct {
	Month    string  `json:"month"`
	Services float64 `json:"services"`
	Revenue  float64 `json:"revenue"`
}

// Scenario is one growth assumption projected over future months.
type Scenario struct {
	Name   string          `json:"scenario"`
	Growth float64         `json:"growth"` // fractional growth per month
	Items  []ScenarioPoint `json:"items"`
}

// Expansion is the response of the growth scenario endpoint.
type Expansion struct {
	History     []ScenarioPoint `json:"history"`
	BaseAverage ScenarioPoint   `json:"base_average"` // Month is empty
	Projections []Scenario      `json:"projections"`
}

// CategoryShare is the parts volume of one product category.
type CategoryShare struct {
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
}

// ServiceMix is the monthly count of each normalised service type.
type ServiceMix struct {
	Month   string             `json:"month"`
	Counts  map[string]float64 `json:"counts"`
	Total   float64            `json:"total"`
	Revenue float64            `json:"revenue"`
}

// Summary carries headline totals over the whole history window.
type Summary struct {
	TotalServices   float64 `json:"total_services"`
	TotalParts      float64 `json:"total_parts"`
	TotalRevenue    float64 `json:"total_revenue"`
	PeakSeasonMonth string  `json:"peak_season_month"`
}

// Insight is a short human-readable finding shown on the overview.
type Insight struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Level  string `json:"level"` // "info", "highlight", "neutral"
}

// OverviewForecast bundles the per-metric forecasts shown on the overview.
type OverviewForecast struct {
	Service ForecastResult `json:"service"`
	Parts   ForecastResult `json:"parts"`
	Revenue ForecastResult `json:"revenue"`
}

// Overview is the response of the analytics overview endpoint.
type Overview struct {
	Service       Series               `json:"service"`
	Parts         Series               `json:"parts"`
	Revenue       Series               `json:"revenue"`
	ServiceMix    []ServiceMix         `json:"service_mix"`
	TopCategories []CategoryShare      `json:"top_categories"`
	Seasonality   []SeasonalIndexEntry `json:"seasonality"`
	Forecast      OverviewForecast     `json:"forecast"`
	RevenueTrend  *Trend               `json:"revenue_trend,omitempty"`
	Summary       Summary              `json:"summary"`
	Insights      []Insight            `json:"insights"`
}

// Segment is the visit history and projection of one customer type.
type Segment struct {
	CustomerType string `json:"customer_type"`
	History      Series `json:"history"`
	Forecast     Series `json:"forecast"`
}

// BrandSegment is the visit history and projection of one vehicle brand.
type BrandSegment struct {
	Brand    string `json:"brand"`
	History  Series `json:"history"`
	Forecast Series `json:"forecast"`
}

// BrandShare is the number of registered vehicles of one brand.
type BrandShare struct {
	Brand    string `json:"brand"`
	Vehicles int    `json:"vehicles"`
}

// TypeShare is the number of customers of one customer type.
type TypeShare struct {
	CustomerType string `json:"customer_type"`
	Customers    int    `json:"customers"`
}

// Segmentation is the response of the customer segmentation endpoint.
type Segmentation struct {
	TotalCustomers int            `json:"total_customers"`
	ByFrequency    map[string]int `json:"by_frequency"` // "Loyal", "Repeat", "New"
	ByValue        map[string]int `json:"by_value"`     // "High Value", "Mid Value", "Low Value"
	TypeSegments   []TypeShare    `json:"type_segments"`
	TopBrands      []BrandShare   `json:"top_brands"`
	Types          []Segment      `json:"types"`
	Brands         []BrandSegment `json:"brands"`
}

// Recommendation kinds reported in Recommendation.Type.
const (
	RecommendUpsell     = "upsell"
	RecommendNewService = "new_service"
	RecommendRecurring  = "recurring"
	RecommendInfo       = "info"
)

// Recommendation is a suggested service offering.
type Recommendation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
}

// Recommendations is the response of the service recommendation endpoint.
type Recommendations struct {
	TopParts        []CategoryShare  `json:"top_parts"`
	Recommendations []Recommendation `json:"recommendations"`
}

// MonthTotals are the service and parts totals of a single month.
type MonthTotals struct {
	Month   string  `json:"month"`
	Service float64 `json:"service"`
	Parts   float64 `json:"parts"`
}

// AlertReport is the response of the alerts endpoint.
type AlertReport struct {
	Threshold float64     `json:"threshold"`
	Alerts    []Alert     `json:"alerts"`
	Latest    MonthTotals `json:"latest"` // the month before the current one
}
