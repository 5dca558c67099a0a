package workshop

import "strings"

// Normalised service types.
const (
	ServiceTuning          = "tuning"
	ServiceEngineRebuild   = "engine_rebuild"
	ServiceRacePreparation = "race_preparation"
	ServiceOther           = "other"
)

// ServiceTypes lists the normalised service types in display order.
var ServiceTypes = []string{ServiceTuning, ServiceEngineRebuild, ServiceRacePreparation, ServiceOther}

// Normalised customer types.
const (
	CustomerIndividual = "INDIVIDU"
	CustomerCommunity  = "KOMUNITAS"
	CustomerRacingTeam = "RACING_TEAM"
	CustomerUnknown    = "UNKNOWN"
)

// CustomerTypes lists the normalised customer types in display order.
var CustomerTypes = []string{CustomerIndividual, CustomerCommunity, CustomerRacingTeam, CustomerUnknown}

// NormalizeServiceType maps free-text service descriptions onto one of
// ServiceTypes by keyword.
func NormalizeServiceType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "tuning"):
		return ServiceTuning
	case strings.Contains(s, "engine"), strings.Contains(s, "rebuild"):
		return ServiceEngineRebuild
	case strings.Contains(s, "race"), strings.Contains(s, "preparation"):
		return ServiceRacePreparation
	default:
		return ServiceOther
	}
}

// NormalizeCustomerType maps a stored customer type onto CustomerTypes.
func NormalizeCustomerType(raw string) string {
	switch t := strings.ToUpper(strings.TrimSpace(raw)); t {
	case CustomerIndividual, CustomerCommunity, CustomerRacingTeam:
		return t
	default:
		return CustomerUnknown
	}
}
