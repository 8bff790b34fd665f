package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RecordZoneTemperature writes a heating zone temperature sample.
//
// Called after every successful vendor poll, one point per zone.
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - zoneID: Vendor zone identifier
//   - name: Human-readable zone name (e.g., "Living Room")
//   - current: Measured temperature in °C
//   - target: Setpoint temperature in °C
func (c *Client) RecordZoneTemperature(zoneID string, name string, current float64, target float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"climate",
		map[string]string{
			"device_id":   zoneID,
			"device_type": "zone",
			"name":        name,
		},
		map[string]interface{}{
			"temperature_c": current,
			"setpoint_c":    target,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// RecordDHWTemperature writes a hot-water temperature sample.
//
// The vendor does not report a target temperature for the hot-water
// device, so only the measured value is recorded.
func (c *Client) RecordDHWTemperature(dhwID string, current float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"climate",
		map[string]string{
			"device_id":   dhwID,
			"device_type": "dhw",
		},
		map[string]interface{}{
			"temperature_c": current,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// RecordSystemMode writes the controller's operating mode as a tag-indexed
// event point. Mode changes are rare, so this stays cheap to query.
func (c *Client) RecordSystemMode(systemID string, mode string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"system_mode",
		map[string]string{
			"device_id": systemID,
			"mode":      mode,
		},
		map[string]interface{}{
			"active": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
