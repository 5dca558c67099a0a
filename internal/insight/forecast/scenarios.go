package forecast

import (
	"sort"
	"time"

	"github.com/HerbHall/pitstop/internal/insight/series"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Scenario history and base window lengths, in months.
const (
	ScenarioHistory = 6
	ScenarioBase    = 3
)

// Growth is a named linear growth rate applied per projected month.
type Growth struct {
	Name string
	Rate float64
}

// DefaultGrowth lists the growth scenarios offered for expansion planning.
func DefaultGrowth() []Growth {
	return []Growth{
		{Name: "Conservative", Rate: 0.1},
		{Name: "Moderate", Rate: 0.25},
		{Name: "Aggressive", Rate: 0.4},
	}
}

// Scenarios projects months future points for every growth rate. The base
// is the average of the last ScenarioBase of the last ScenarioHistory months
// of history; month i is base * (1 + rate*i), rounded half-up. With no
// history, projections start after the month containing now.
func Scenarios(history []analytics.ScenarioPoint, months int, growth []Growth, now time.Time) (analytics.Expansion, error) {
	sorted := append([]analytics.ScenarioPoint{}, history...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Month < sorted[j].Month })
	if len(sorted) > ScenarioHistory {
		sorted = sorted[len(sorted)-ScenarioHistory:]
	}

	lastMonth := series.FormatMonth(now)
	if len(sorted) > 0 {
		lastMonth = sorted[len(sorted)-1].Month
		if _, err := series.ParseMonth(lastMonth); err != nil {
			return analytics.Expansion{}, err
		}
	}

	base := sorted[max(0, len(sorted)-ScenarioBase):]
	var avgServices, avgRevenue float64
	if len(base) > 0 {
		services := make([]float64, len(base))
		revenue := make([]float64, len(base))
		for i, p := range base {
			services[i] = p.Services
			revenue[i] = p.Revenue
		}
		avgServices = mean(services)
		avgRevenue = mean(revenue)
	}

	out := analytics.Expansion{
		History: sorted,
		BaseAverage: analytics.ScenarioPoint{
			Services: RoundHalfUp(avgServices),
			Revenue:  RoundHalfUp(avgRevenue),
		},
		Projections: make([]analytics.Scenario, 0, len(growth)),
	}
	for _, g := range growth {
		sc := analytics.Scenario{Name: g.Name, Growth: g.Rate, Items: make([]analytics.ScenarioPoint, 0, max(0, months))}
		for i := 1; i <= months; i++ {
			month, err := series.AddMonths(lastMonth, i)
			if err != nil {
				return analytics.Expansion{}, err
			}
			factor := 1 + g.Rate*float64(i)
			sc.Items = append(sc.Items, analytics.ScenarioPoint{
				Month:    month,
				Services: RoundHalfUp(avgServices * factor),
				Revenue:  RoundHalfUp(avgRevenue * factor),
			})
		}
		out.Projections = append(out.Projections, sc)
	}
	return out, nil
}
