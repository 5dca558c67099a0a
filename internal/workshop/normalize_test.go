package workshop

import "testing"

func TestNormalizeServiceType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Stage 2 Tuning", ServiceTuning},
		{"  ENGINE swap", ServiceEngineRebuild},
		{"top-end rebuild", ServiceEngineRebuild},
		{"Race day", ServiceRacePreparation},
		{"track preparation", ServiceRacePreparation},
		{"oil change", ServiceOther},
		{"", ServiceOther},
		// Keyword order matters: tuning wins over engine.
		{"engine tuning", ServiceTuning},
	}
	for _, tt := range tests {
		if got := NormalizeServiceType(tt.in); got != tt.want {
			t.Errorf("NormalizeServiceType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCustomerType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"individu", CustomerIndividual},
		{"KOMUNITAS", CustomerCommunity},
		{" racing_team ", CustomerRacingTeam},
		{"corporate", CustomerUnknown},
		{"", CustomerUnknown},
	}
	for _, tt := range tests {
		if got := NormalizeCustomerType(tt.in); got != tt.want {
			t.Errorf("NormalizeCustomerType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
