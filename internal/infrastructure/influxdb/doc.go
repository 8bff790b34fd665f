// Package influxdb provides optional temperature telemetry for evobridge.
//
// It wraps the official influxdb-client-go v2 library for recording
// time-series climate data after each successful vendor poll:
//   - Zone temperatures and setpoints
//   - Hot-water temperature
//   - Controller operating mode changes
//
// Telemetry is disabled by default; the bridge runs fine without it.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.RecordZoneTemperature("3432522", "Living Room", 21.5, 20.0)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly.
package influxdb
