package influxdb

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/evobridge/internal/infrastructure/config"
)

func TestConnect_Disabled(t *testing.T) {
	cfg := config.InfluxDBConfig{Enabled: false}

	_, err := Connect(cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestClose_NilClient(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v, want nil", err)
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	client := &Client{}

	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestRecord_NotConnectedIsNoop(t *testing.T) {
	// Records on a disconnected client must drop silently, not panic;
	// telemetry is best-effort and never blocks a poll.
	client := &Client{}

	client.RecordZoneTemperature("z1", "Living Room", 21.5, 20.0)
	client.RecordDHWTemperature("dhw1", 52.0)
	client.RecordSystemMode("tcs1", "Auto")
}

func TestFlush_SafeWhenDisconnected(t *testing.T) {
	client := &Client{}
	client.Flush()
}
