package mqtt

import "testing"

func TestTopics_EntityTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"climate state", topics.ClimateState("3432522"), "evobridge/climate/3432522/state"},
		{"climate command", topics.ClimateCommand("3432522"), "evobridge/climate/3432522/set"},
		{"water heater state", topics.WaterHeaterState("3933910"), "evobridge/water_heater/3933910/state"},
		{"water heater command", topics.WaterHeaterCommand("3933910"), "evobridge/water_heater/3933910/set"},
		{"system status", topics.SystemStatus(), "evobridge/system/status"},
		{"all commands", topics.AllCommands(), "evobridge/+/+/set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
