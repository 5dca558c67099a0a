package insight

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/pitstop/internal/testutil"
	"github.com/HerbHall/pitstop/internal/workshop"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

func labelled(label string, n int) []workshop.ServiceRow {
	rows := make([]workshop.ServiceRow, n)
	for i := range rows {
		rows[i] = workshop.ServiceRow{
			ScheduledAt: testutil.Month(2024, time.January),
			ServiceType: workshop.NormalizeServiceType(label),
			Label:       label,
			TotalCost:   decimal.NewFromInt(100_000),
		}
	}
	return rows
}

func TestServicePackage(t *testing.T) {
	tests := map[string]string{
		"Dyno tuning":          packageTuning,
		"Race day prep":        packageRacePrep,
		"Full engine overhaul": packageEngineRebuild,
		"Ganti kampas rem":     packageBrake,
		"Brake bleed":          packageBrake,
		"Setting kaki-kaki":    packageSuspension,
		"Suspension service":   packageSuspension,
		"Ganti oli":            packageOil,
		"Oil change":           packageOil,
		"General check":        packageMaintenance,
		"":                     packageMaintenance,
		// Rows without a label fall back to the normalised type.
		workshop.ServiceRacePreparation: packageRacePrep,
	}
	for label, want := range tests {
		assert.Equal(t, want, servicePackage(label), label)
	}
}

func TestBuildRecommendations(t *testing.T) {
	services := append(labelled("Dyno tuning", 5), labelled("Oil change", 3)...)
	services = append(services, labelled("General check", 1)...)
	start := testutil.Month(2024, time.January)
	parts := append(testutil.PartsRows(start, "engine", []int64{50}), testutil.PartsRows(start, "oil", []int64{40})...)
	parts = append(parts, testutil.PartsRows(start, "brakes", []int64{10})...)
	parts = append(parts, testutil.PartsRows(start, "filters", []int64{5})...)

	recs := buildRecommendations(services, parts)

	require.Len(t, recs.TopParts, 3)
	assert.Equal(t, []string{"engine", "oil", "brakes"},
		[]string{recs.TopParts[0].Category, recs.TopParts[1].Category, recs.TopParts[2].Category})

	require.Len(t, recs.Recommendations, 4)
	assert.Equal(t, analytics.Recommendation{
		Title:  "Tuning & Performance Package",
		Detail: "High demand (5 services). Offer a premium package with add-ons.",
		Type:   analytics.RecommendUpsell,
	}, recs.Recommendations[0])
	assert.Equal(t, "Oil Subscription Service", recs.Recommendations[1].Title)
	assert.Equal(t, analytics.RecommendUpsell, recs.Recommendations[1].Type)
	assert.Equal(t, "Engine Rebuild/Overhaul", recs.Recommendations[2].Title)
	assert.Equal(t, analytics.RecommendNewService, recs.Recommendations[2].Type)
	assert.Equal(t, analytics.RecommendRecurring, recs.Recommendations[3].Type)
}

func TestBuildRecommendations_EnoughRebuildsSkipsNewService(t *testing.T) {
	services := labelled("Engine rebuild", 2)
	parts := testutil.PartsRows(testutil.Month(2024, time.January), "Mesin", []int64{30})

	recs := buildRecommendations(services, parts)

	for _, r := range recs.Recommendations {
		assert.NotEqual(t, analytics.RecommendNewService, r.Type, r.Title)
	}
}

func TestBuildRecommendations_Suspension(t *testing.T) {
	parts := testutil.PartsRows(testutil.Month(2024, time.January), "Kaki-kaki", []int64{12})

	recs := buildRecommendations(labelled("Servis berkala", 1), parts)

	require.Len(t, recs.Recommendations, 2)
	assert.Equal(t, "Scheduled Maintenance", recs.Recommendations[0].Title)
	assert.Equal(t, analytics.Recommendation{
		Title:  "Suspension Setup",
		Detail: "Suspension parts dominate sales. Offer a suspension set-up package.",
		Type:   analytics.RecommendNewService,
	}, recs.Recommendations[1])
}

func TestBuildRecommendations_NoData(t *testing.T) {
	recs := buildRecommendations(nil, nil)

	assert.NotNil(t, recs.TopParts)
	assert.Empty(t, recs.TopParts)
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, analytics.RecommendInfo, recs.Recommendations[0].Type)
}
