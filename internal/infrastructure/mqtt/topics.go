package mqtt

import "fmt"

// Topic prefixes for the evobridge platform surface.
//
// The bridge exposes each heating device as a platform entity with a
// retained state topic and a command topic:
//
//	evobridge/{entity_class}/{device_id}/state
//	evobridge/{entity_class}/{device_id}/set
const (
	// TopicPrefix is the base for all evobridge topics.
	TopicPrefix = "evobridge"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "evobridge/system"
)

// Entity classes used in topic paths.
const (
	ClassClimate     = "climate"
	ClassWaterHeater = "water_heater"
)

// Topics provides builders for evobridge MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// ClimateState returns the retained state topic for a climate entity
// (the controller or a heating zone).
//
// Example: evobridge/climate/3432522/state
func (Topics) ClimateState(deviceID string) string {
	return fmt.Sprintf("%s/%s/%s/state", TopicPrefix, ClassClimate, deviceID)
}

// ClimateCommand returns the command topic for a climate entity.
//
// Example: evobridge/climate/3432522/set
func (Topics) ClimateCommand(deviceID string) string {
	return fmt.Sprintf("%s/%s/%s/set", TopicPrefix, ClassClimate, deviceID)
}

// WaterHeaterState returns the retained state topic for the hot-water entity.
//
// Example: evobridge/water_heater/3933910/state
func (Topics) WaterHeaterState(deviceID string) string {
	return fmt.Sprintf("%s/%s/%s/state", TopicPrefix, ClassWaterHeater, deviceID)
}

// WaterHeaterCommand returns the command topic for the hot-water entity.
//
// Example: evobridge/water_heater/3933910/set
func (Topics) WaterHeaterCommand(deviceID string) string {
	return fmt.Sprintf("%s/%s/%s/set", TopicPrefix, ClassWaterHeater, deviceID)
}

// SystemStatus returns the bridge status topic (online/offline, LWT).
//
// Example: evobridge/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllCommands returns a pattern matching every entity command topic.
//
// Pattern: evobridge/+/+/set
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/+/+/set", TopicPrefix)
}
