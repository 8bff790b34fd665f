// evobridge - Evohome Cloud to MQTT Bridge
//
// This is the main entry point for the evobridge application.
// evobridge exposes a Honeywell evohome heating installation as MQTT
// entities for a smart-home platform:
//   - One controller (the temperature control system)
//   - Up to twelve heating zones
//   - An optional stored hot water tank
//
// The controller polls the vendor cloud on a fixed cadence; every other
// device re-derives its state from the controller's snapshot, so one
// installation costs one API call per cycle.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/entity"
	"github.com/nerrad567/evobridge/internal/evohome"
	"github.com/nerrad567/evobridge/internal/infrastructure/config"
	"github.com/nerrad567/evobridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/evobridge/internal/infrastructure/logging"
	"github.com/nerrad567/evobridge/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting evobridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Authenticate against the vendor cloud. Startup failures here are
	// the ones an operator actually hits, so each gets its own message.
	vendor, err := evohome.Connect(ctx, evohome.Config{
		Username: cfg.Vendor.Username,
		Password: cfg.Vendor.Password,
	})
	if err != nil {
		return startupDiagnostic(err, log)
	}
	log.Info("vendor cloud authenticated")

	// Discover the installation and build the redacted topology.
	topology, err := vendor.Bootstrap(ctx, cfg.Vendor.LocationIdx)
	if err != nil {
		return startupDiagnostic(err, log)
	}

	// Credentials have done their job; scrub them from the loaded config
	// so later logging or debugging can never leak them.
	cfg.Vendor.Redact()

	log.Info("installation bootstrapped",
		"location", topology.LocationName,
		"system_id", topology.SystemID,
		"model", topology.ModelType,
		"zones", len(topology.Zones),
		"hot_water", topology.DHW != nil,
	)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var recorder entity.Recorder
	if cfg.InfluxDB.Enabled {
		influxClient, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		recorder = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the device tree: shared snapshot store, suspension table,
	// internal bus, then the facades.
	store := entity.NewStore()
	timers := entity.NewTimers()
	deviceBus := bus.New()

	// The backoff window scales from the interval as configured; only the
	// ticker cadence is rounded up to whole minutes.
	controller := entity.NewController(entity.ControllerConfig{
		Topology:     topology,
		Poller:       vendor,
		Commander:    vendor,
		Store:        store,
		Timers:       timers,
		Bus:          deviceBus,
		Publisher:    mqttClient,
		Recorder:     recorder,
		Logger:       log,
		ScanInterval: cfg.Vendor.ScanIntervalDuration(),
	})
	controller.Attach(deviceBus)

	zones := make([]*entity.Zone, 0, len(topology.Zones))
	for _, info := range topology.Zones {
		zone := entity.NewZone(info, store, mqttClient, vendor, log)
		zone.Attach(deviceBus)
		zones = append(zones, zone)
	}

	var dhw *entity.DHW
	if topology.DHW != nil {
		dhw = entity.NewDHW(*topology.DHW, store, mqttClient, vendor, log)
		dhw.Attach(deviceBus)
	}

	log.Info("devices registered",
		"controller", controller.ID(),
		"zones", len(zones),
		"hot_water", dhw != nil,
	)

	// Wire command topics
	if err := subscribeCommands(ctx, mqttClient, cfg, controller, zones, dhw, log); err != nil {
		return fmt.Errorf("subscribing to command topics: %w", err)
	}

	// Verify connections are healthy before starting the refresh cycle
	if err := healthCheck(ctx, mqttClient, recorder); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// Drive the refresh cycle until shutdown. The broadcaster fires one
	// refresh immediately, so retained state appears without waiting a
	// full interval.
	scanInterval := cfg.Vendor.EffectiveScanInterval()
	broadcaster := bus.NewBroadcaster(deviceBus, scanInterval, log)
	log.Info("initialisation complete, starting refresh cycle",
		"interval", scanInterval,
	)
	if err := broadcaster.Run(ctx); err != nil {
		return fmt.Errorf("refresh cycle: %w", err)
	}

	log.Info("shutdown signal received, cleaning up")
	log.Info("evobridge stopped")
	return nil
}

// commandDevice is anything that accepts platform command documents.
type commandDevice interface {
	HandleCommand(ctx context.Context, payload []byte) error
}

// subscribeCommands wires each device's command topic to its handler.
// Handler failures are logged, never returned: a malformed or refused
// command must not tear down the MQTT callback path.
func subscribeCommands(ctx context.Context, client *mqtt.Client, cfg *config.Config, controller *entity.Controller, zones []*entity.Zone, dhw *entity.DHW, log *logging.Logger) error {
	topics := mqtt.Topics{}
	qos := byte(cfg.MQTT.QoS)

	subscribe := func(topic string, dev commandDevice) error {
		return client.Subscribe(topic, qos, func(t string, payload []byte) error {
			if err := dev.HandleCommand(ctx, payload); err != nil {
				log.Warn("command rejected",
					"topic", t,
					"error", err,
				)
			}
			return nil
		})
	}

	if err := subscribe(topics.ClimateCommand(controller.ID()), controller); err != nil {
		return err
	}
	for _, zone := range zones {
		if err := subscribe(topics.ClimateCommand(zone.ID()), zone); err != nil {
			return err
		}
	}
	if dhw != nil {
		if err := subscribe(topics.WaterHeaterCommand(dhw.ID()), dhw); err != nil {
			return err
		}
	}
	return nil
}

// startupDiagnostic logs a distinguishable message for each known
// startup failure before handing the error back to main.
func startupDiagnostic(err error, log *logging.Logger) error {
	switch {
	case errors.Is(err, evohome.ErrBadCredentials):
		log.Error("vendor rejected the configured credentials; check vendor.username and vendor.password")
	case errors.Is(err, evohome.ErrServiceUnavailable):
		log.Error("vendor cloud is unavailable; it usually recovers on its own, retry shortly")
	case errors.Is(err, evohome.ErrRateLimited):
		log.Error("vendor api request limit exceeded; wait before restarting")
	case errors.Is(err, evohome.ErrLocationIndex):
		log.Error("vendor.location_idx does not match any location on this account")
	case errors.Is(err, evohome.ErrBadTopology):
		log.Error("installation layout is not one gateway with one controller; this setup is not supported")
	default:
		log.Error("vendor startup failed", "error", err)
	}
	return fmt.Errorf("vendor startup: %w", err)
}

// getConfigPath returns the configuration file path.
// Uses EVOBRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("EVOBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - mqttClient: MQTT client to check
//   - recorder: telemetry recorder (nil when InfluxDB is disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, mqttClient *mqtt.Client, recorder entity.Recorder) error {
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if influxClient, ok := recorder.(*influxdb.Client); ok {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
