package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Scan interval bounds for the vendor API.
//
// The vendor rate-limits aggressively, so the bridge refuses to poll more
// often than once every three minutes. The effective interval is always
// rounded up to whole minutes (see VendorConfig.EffectiveScanInterval).
const (
	// DefaultScanInterval is the poll interval used when none is configured.
	DefaultScanInterval = 5 * time.Minute

	// MinimumScanInterval is the shortest poll interval the bridge accepts.
	MinimumScanInterval = 3 * time.Minute
)

// Domestic hot water target temperature bounds (degrees Celsius).
const (
	DefaultDHWTargetTemp = 54.0
	MinDHWTargetTemp     = 35.0
	MaxDHWTargetTemp     = 85.0
)

// Redacted is the placeholder written over sensitive values once they are
// no longer needed. Credentials and location details must never survive
// bootstrap in plaintext.
const Redacted = "REDACTED"

// Config is the root configuration structure for the evobridge service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Vendor   VendorConfig   `yaml:"vendor"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// VendorConfig contains credentials and polling settings for the vendor
// cloud API (the heating system's hosted service).
type VendorConfig struct {
	// Username and Password authenticate against the vendor cloud.
	// Both are redacted in place once the session is established.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// LocationIdx selects which installation to bridge when the account
	// has more than one. Default: 0 (first).
	LocationIdx int `yaml:"location_idx"`

	// ScanInterval is the poll interval in seconds. Minimum 180, default 300.
	// Rounded up to whole minutes before use.
	ScanInterval int `yaml:"scan_interval"`

	// DHWTargetTemp is the assumed target temperature for the hot-water
	// device in °C. The vendor API does not report one.
	DHWTargetTemp float64 `yaml:"dhw_target_temp"`
}

// ScanIntervalDuration returns the configured scan interval as a Duration.
func (v VendorConfig) ScanIntervalDuration() time.Duration {
	return time.Duration(v.ScanInterval) * time.Second
}

// EffectiveScanInterval returns the interval actually used for scheduling:
// the configured interval rounded up to the next whole minute.
//
// A configured interval of 200s therefore schedules every 4 minutes.
func (v VendorConfig) EffectiveScanInterval() time.Duration {
	secs := int64(v.ScanIntervalDuration() / time.Second)
	mins := (secs + 59) / 60
	return time.Duration(mins) * time.Minute
}

// Redact overwrites the vendor credentials in place.
// Called once the session bootstrap has consumed them.
func (v *VendorConfig) Redact() {
	v.Username = Redacted
	v.Password = Redacted
}

// MQTTConfig contains MQTT broker connection settings for the platform
// surface (entity state and command topics).
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for optional
// temperature telemetry. Disabled by default.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: EVOBRIDGE_SECTION_KEY
// For example: EVOBRIDGE_VENDOR_USERNAME, EVOBRIDGE_MQTT_HOST
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Vendor: VendorConfig{
			LocationIdx:   0,
			ScanInterval:  int(DefaultScanInterval / time.Second),
			DHWTargetTemp: DefaultDHWTargetTemp,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "evobridge",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: EVOBRIDGE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Vendor credentials (preferred over storing them in the file)
	if v := os.Getenv("EVOBRIDGE_VENDOR_USERNAME"); v != "" {
		cfg.Vendor.Username = v
	}
	if v := os.Getenv("EVOBRIDGE_VENDOR_PASSWORD"); v != "" {
		cfg.Vendor.Password = v
	}

	// MQTT
	if v := os.Getenv("EVOBRIDGE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("EVOBRIDGE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("EVOBRIDGE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("EVOBRIDGE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Vendor validation
	if c.Vendor.Username == "" {
		errs = append(errs, "vendor.username is required (set EVOBRIDGE_VENDOR_USERNAME environment variable)")
	}
	if c.Vendor.Password == "" {
		errs = append(errs, "vendor.password is required (set EVOBRIDGE_VENDOR_PASSWORD environment variable)")
	}
	if c.Vendor.LocationIdx < 0 {
		errs = append(errs, "vendor.location_idx must not be negative")
	}
	if c.Vendor.ScanIntervalDuration() < MinimumScanInterval {
		errs = append(errs, fmt.Sprintf("vendor.scan_interval must be at least %d seconds",
			int(MinimumScanInterval/time.Second)))
	}
	if c.Vendor.DHWTargetTemp < MinDHWTargetTemp || c.Vendor.DHWTargetTemp > MaxDHWTargetTemp {
		errs = append(errs, fmt.Sprintf("vendor.dhw_target_temp must be between %.1f and %.1f",
			MinDHWTargetTemp, MaxDHWTargetTemp))
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// InfluxDB validation (only when enabled)
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set EVOBRIDGE_INFLUXDB_TOKEN)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
