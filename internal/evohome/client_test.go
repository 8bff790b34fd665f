package evohome

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testTokenJSON = `{"access_token":"test-token","token_type":"bearer","expires_in":3600}`

const testInstallationsJSON = `[
  {
    "locationInfo": {
      "locationId": "loc-1",
      "name": "Home",
      "streetAddress": "1 Example Street",
      "city": "Exampleton",
      "postcode": "EX1 1EX",
      "locationOwner": {"userId": "user123", "username": "user@example.com"}
    },
    "gateways": [
      {
        "gatewayInfo": {"gatewayId": "gw-1", "mac": "00:11:22:33:44:55"},
        "temperatureControlSystems": [
          {
            "systemId": "tcs-1",
            "modelType": "EvoTouch",
            "allowedSystemModes": [
              {"systemMode": "Auto", "canBePermanent": true, "canBeTemporary": false},
              {"systemMode": "HeatingOff", "canBePermanent": true, "canBeTemporary": false}
            ],
            "zones": [
              {"zoneId": "z-1", "name": "Living Room", "zoneType": "RadiatorZone", "modelType": "HeatingZone"},
              {"zoneId": "z-2", "name": "Bedroom", "zoneType": "RadiatorZone", "modelType": "HeatingZone"}
            ],
            "dhw": {"dhwId": "dhw-1"}
          }
        ]
      }
    ]
  }
]`

const testStatusJSON = `{
  "locationId": "loc-1",
  "gateways": [
    {
      "temperatureControlSystems": [
        {
          "systemId": "tcs-1",
          "systemModeStatus": {"mode": "Auto", "isPermanent": true},
          "zones": [
            {
              "zoneId": "z-1",
              "name": "Living Room",
              "temperatureStatus": {"temperature": 21.5, "isAvailable": true},
              "setpointStatus": {"targetHeatTemperature": 20.0, "setpointMode": "FollowSchedule"}
            },
            {
              "zoneId": "z-2",
              "name": "Bedroom",
              "temperatureStatus": {"temperature": 18.0, "isAvailable": true},
              "setpointStatus": {"targetHeatTemperature": 16.0, "setpointMode": "PermanentOverride"}
            }
          ],
          "dhw": {
            "dhwId": "dhw-1",
            "temperatureStatus": {"temperature": 52.0, "isAvailable": true},
            "stateStatus": {"state": "On", "mode": "FollowSchedule"}
          }
        }
      ]
    }
  ]
}`

// newTestVendor starts a fake vendor API serving the fixture topology.
func newTestVendor(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testTokenJSON))
	})
	mux.HandleFunc("/userAccount", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId": "user123"}`))
	})
	mux.HandleFunc("/location/installationInfo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userId") != "user123" {
			http.Error(w, "unknown user", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testInstallationsJSON))
	})
	mux.HandleFunc("/location/loc-1/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testStatusJSON))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConnect(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	client, err := Connect(context.Background(), Config{
		Username: "user@example.com",
		Password: "hunter2",
		BaseURL:  srv.URL,
		TokenURL: srv.URL + "/auth/token",
	})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return client
}

func TestConnect_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := Connect(context.Background(), Config{
		Username: "user@example.com",
		Password: "wrong",
		BaseURL:  srv.URL,
		TokenURL: srv.URL + "/auth/token",
	})
	if !errors.Is(err, ErrBadCredentials) {
		t.Errorf("Connect() error = %v, want ErrBadCredentials", err)
	}
}

func TestConnect_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Connect(context.Background(), Config{
		Username: "user@example.com",
		Password: "hunter2",
		TokenURL: srv.URL + "/auth/token",
	})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("Connect() error = %v, want ErrServiceUnavailable", err)
	}
}

func TestConnect_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := Connect(context.Background(), Config{
		Username: "user@example.com",
		Password: "hunter2",
		TokenURL: srv.URL + "/auth/token",
	})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Connect() error = %v, want ErrRateLimited", err)
	}
}

func TestBootstrap(t *testing.T) {
	srv := newTestVendor(t)
	client := testConnect(t, srv)

	topo, err := client.Bootstrap(context.Background(), 0)
	if err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	if topo.SystemID != "tcs-1" {
		t.Errorf("SystemID = %q, want %q", topo.SystemID, "tcs-1")
	}
	if topo.LocationName != "Home" {
		t.Errorf("LocationName = %q, want %q", topo.LocationName, "Home")
	}
	if len(topo.Zones) != 2 {
		t.Fatalf("len(Zones) = %d, want 2", len(topo.Zones))
	}
	if topo.Zones[0].Name != "Living Room" {
		t.Errorf("Zones[0].Name = %q, want %q", topo.Zones[0].Name, "Living Room")
	}
	if topo.DHW == nil || topo.DHW.ID != "dhw-1" {
		t.Errorf("DHW = %+v, want ID dhw-1", topo.DHW)
	}
}

func TestBootstrap_LocationIndexOutOfRange(t *testing.T) {
	srv := newTestVendor(t)
	client := testConnect(t, srv)

	_, err := client.Bootstrap(context.Background(), 5)
	if !errors.Is(err, ErrLocationIndex) {
		t.Errorf("Bootstrap(idx=5) error = %v, want ErrLocationIndex", err)
	}
}

func TestSystemStatus(t *testing.T) {
	srv := newTestVendor(t)
	client := testConnect(t, srv)

	if _, err := client.Bootstrap(context.Background(), 0); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	status, err := client.SystemStatus(context.Background())
	if err != nil {
		t.Fatalf("SystemStatus() error = %v", err)
	}

	if status.SystemModeStatus.Mode != "Auto" {
		t.Errorf("SystemModeStatus.Mode = %q, want %q", status.SystemModeStatus.Mode, "Auto")
	}
	if len(status.Zones) != 2 {
		t.Fatalf("len(Zones) = %d, want 2", len(status.Zones))
	}
	if status.Zones[0].TemperatureStatus.Temperature != 21.5 {
		t.Errorf("Zones[0] temperature = %v, want 21.5", status.Zones[0].TemperatureStatus.Temperature)
	}
	if status.DHW == nil || status.DHW.StateStatus.State != "On" {
		t.Errorf("DHW status = %+v, want state On", status.DHW)
	}
}

func TestSystemStatus_BeforeBootstrap(t *testing.T) {
	srv := newTestVendor(t)
	client := testConnect(t, srv)

	if _, err := client.SystemStatus(context.Background()); err == nil {
		t.Error("SystemStatus() before Bootstrap() = nil error, want error")
	}
}

func TestSystemStatus_RateLimited(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testTokenJSON))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := testConnect(t, srv)
	client.locationID = "loc-1"

	_, err := client.SystemStatus(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("SystemStatus() error = %v, want ErrRateLimited", err)
	}
}

func TestStatusError_Taxonomy(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{"bad request", http.StatusBadRequest, ErrBadCredentials},
		{"unauthorized", http.StatusUnauthorized, ErrBadCredentials},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"service unavailable", http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusError(tt.code); !errors.Is(got, tt.want) {
				t.Errorf("statusError(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestStatusError_UnexpectedStatus(t *testing.T) {
	err := statusError(http.StatusBadGateway)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("statusError(502) = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
}

func TestSetCommands_NotSupported(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	if err := client.SetSystemMode(ctx, "Auto"); !errors.Is(err, ErrNotSupported) {
		t.Errorf("SetSystemMode() error = %v, want ErrNotSupported", err)
	}
	if err := client.SetZoneMode(ctx, "z-1", "PermanentOverride"); !errors.Is(err, ErrNotSupported) {
		t.Errorf("SetZoneMode() error = %v, want ErrNotSupported", err)
	}
	if err := client.SetZoneTemperature(ctx, "z-1", 21.0); !errors.Is(err, ErrNotSupported) {
		t.Errorf("SetZoneTemperature() error = %v, want ErrNotSupported", err)
	}
}
