package evohome

import (
	"encoding/json"
	"testing"
)

func TestInstallation_Redact(t *testing.T) {
	var installations []Installation
	if err := json.Unmarshal([]byte(testInstallationsJSON), &installations); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	inst := installations[0]

	inst.Redact()

	if inst.LocationInfo.LocationID != Redacted {
		t.Errorf("LocationID = %q, want %q", inst.LocationInfo.LocationID, Redacted)
	}
	if inst.LocationInfo.StreetAddress != Redacted {
		t.Errorf("StreetAddress = %q, want %q", inst.LocationInfo.StreetAddress, Redacted)
	}
	if inst.LocationInfo.City != Redacted {
		t.Errorf("City = %q, want %q", inst.LocationInfo.City, Redacted)
	}
	if inst.LocationInfo.Postcode != Redacted {
		t.Errorf("Postcode = %q, want %q", inst.LocationInfo.Postcode, Redacted)
	}
	if owner, ok := inst.LocationInfo.LocationOwner.(string); !ok || owner != Redacted {
		t.Errorf("LocationOwner = %v, want %q", inst.LocationInfo.LocationOwner, Redacted)
	}
	if gwInfo, ok := inst.Gateways[0].GatewayInfo.(string); !ok || gwInfo != Redacted {
		t.Errorf("GatewayInfo = %v, want %q", inst.Gateways[0].GatewayInfo, Redacted)
	}

	// Redaction must not touch fields the bridge still needs.
	if inst.LocationInfo.Name != "Home" {
		t.Errorf("Name = %q, want %q (must survive redaction)", inst.LocationInfo.Name, "Home")
	}
	if inst.Gateways[0].TemperatureControlSystems[0].SystemID != "tcs-1" {
		t.Error("SystemID must survive redaction")
	}
}
