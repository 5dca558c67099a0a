package insight

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/HerbHall/pitstop/pkg/analytics"
)

var forecastsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pitstop_forecasts_total",
		Help: "Forecasts computed, by metric and model.",
	},
	[]string{"metric", "model"},
)

var alertsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pitstop_alerts_total",
		Help: "Alerts announced for the last complete month, by metric and level.",
	},
	[]string{"metric", "level"},
)

func init() {
	prometheus.MustRegister(forecastsTotal)
	prometheus.MustRegister(alertsTotal)
}

func countForecast(metric string, res analytics.ForecastResult) {
	forecastsTotal.WithLabelValues(metric, res.Model).Inc()
}
