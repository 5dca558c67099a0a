package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HerbHall/pitstop/internal/workshop"
	"github.com/HerbHall/pitstop/pkg/analytics"
)

// Service packages the recommendations reason about. They are finer than
// the normalised service types.
const (
	packageTuning        = "tuning"
	packageRacePrep      = "race_prep"
	packageEngineRebuild = "engine_rebuild"
	packageBrake         = "brake"
	packageSuspension    = "suspension"
	packageOil           = "oil"
	packageMaintenance   = "maintenance"
)

var packageOrder = []string{
	packageTuning, packageRacePrep, packageEngineRebuild, packageBrake,
	packageSuspension, packageOil, packageMaintenance,
}

var packageTitles = map[string]string{
	packageTuning:        "Tuning & Performance Package",
	packageRacePrep:      "Race Preparation Package",
	packageEngineRebuild: "Engine Rebuild/Overhaul",
	packageBrake:         "Brake Performance Package",
	packageSuspension:    "Suspension Setup",
	packageOil:           "Oil Subscription Service",
	packageMaintenance:   "Scheduled Maintenance",
}

const (
	upsellCount          = 2
	recommendPartsCount  = 3
	lowPresenceThreshold = 2
)

// servicePackage buckets a service description by keyword. Indonesian
// shop terms (rem, kaki-kaki, oli) are matched alongside English ones.
func servicePackage(label string) string {
	s := strings.ToLower(label)
	switch {
	case strings.Contains(s, "tuning"):
		return packageTuning
	case strings.Contains(s, "race"):
		return packageRacePrep
	case strings.Contains(s, "engine"), strings.Contains(s, "rebuild"):
		return packageEngineRebuild
	case strings.Contains(s, "rem"), strings.Contains(s, "brake"):
		return packageBrake
	case strings.Contains(s, "suspension"), strings.Contains(s, "kaki"):
		return packageSuspension
	case strings.Contains(s, "oli"), strings.Contains(s, "oil"):
		return packageOil
	default:
		return packageMaintenance
	}
}

func categoryMatches(parts []analytics.CategoryShare, keywords ...string) bool {
	for _, p := range parts {
		c := strings.ToLower(p.Category)
		for _, k := range keywords {
			if strings.Contains(c, k) {
				return true
			}
		}
	}
	return false
}

// buildRecommendations suggests upsells for the two busiest service
// packages, new services where part sales outpace the matching service, and
// a subscription when oil sells well.
func buildRecommendations(services []workshop.ServiceRow, parts []workshop.PartsRow) analytics.Recommendations {
	counts := make(map[string]int, len(packageOrder))
	for _, r := range services {
		label := r.Label
		if label == "" {
			label = r.ServiceType
		}
		counts[servicePackage(label)]++
	}

	out := analytics.Recommendations{
		TopParts:        topCategories(parts, recommendPartsCount),
		Recommendations: []analytics.Recommendation{},
	}

	busiest := make([]string, 0, len(counts))
	for _, p := range packageOrder {
		if counts[p] > 0 {
			busiest = append(busiest, p)
		}
	}
	sort.SliceStable(busiest, func(i, j int) bool { return counts[busiest[i]] > counts[busiest[j]] })
	if len(busiest) > upsellCount {
		busiest = busiest[:upsellCount]
	}
	for _, p := range busiest {
		out.Recommendations = append(out.Recommendations, analytics.Recommendation{
			Title:  packageTitles[p],
			Detail: fmt.Sprintf("High demand (%d services). Offer a premium package with add-ons.", counts[p]),
			Type:   analytics.RecommendUpsell,
		})
	}

	if categoryMatches(out.TopParts, "mesin", "engine") && counts[packageEngineRebuild] < lowPresenceThreshold {
		out.Recommendations = append(out.Recommendations, analytics.Recommendation{
			Title:  packageTitles[packageEngineRebuild],
			Detail: "Engine parts sell strongly but few rebuilds are booked. Offer an overhaul package.",
			Type:   analytics.RecommendNewService,
		})
	}
	if categoryMatches(out.TopParts, "kaki", "suspension") && counts[packageSuspension] < lowPresenceThreshold {
		out.Recommendations = append(out.Recommendations, analytics.Recommendation{
			Title:  packageTitles[packageSuspension],
			Detail: "Suspension parts dominate sales. Offer a suspension set-up package.",
			Type:   analytics.RecommendNewService,
		})
	}
	if categoryMatches(out.TopParts, "oli", "oil") {
		out.Recommendations = append(out.Recommendations, analytics.Recommendation{
			Title:  packageTitles[packageOil],
			Detail: "Oil sells well. Start a scheduled oil change subscription.",
			Type:   analytics.RecommendRecurring,
		})
	}

	if len(out.Recommendations) == 0 {
		out.Recommendations = append(out.Recommendations, analytics.Recommendation{
			Title:  "More data needed",
			Detail: "Not enough service history to recommend new services yet.",
			Type:   analytics.RecommendInfo,
		})
	}
	return out
}
