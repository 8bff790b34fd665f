package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/evohome"
	"github.com/nerrad567/evobridge/internal/infrastructure/config"
	"github.com/nerrad567/evobridge/internal/infrastructure/mqtt"
)

// backoffFactor scales the polling interval into a suspension window
// after the vendor rate-limits us. Three skipped cycles has proven
// enough for the limiter to cool off.
const backoffFactor = 3

// Recorder writes temperature and mode samples to the telemetry store.
// *influxdb.Client satisfies this interface. A nil Recorder disables
// telemetry.
type Recorder interface {
	RecordZoneTemperature(zoneID, name string, current, target float64)
	RecordDHWTemperature(dhwID string, current float64)
	RecordSystemMode(systemID, mode string)
}

// ControllerConfig carries the dependencies for NewController.
type ControllerConfig struct {
	Topology     *evohome.Topology
	Poller       Poller
	Commander    Commander
	Store        *Store
	Timers       *Timers
	Bus          *bus.Bus
	Publisher    Publisher
	Recorder     Recorder
	Logger Logger

	// ScanInterval is the poll interval as configured, before any
	// rounding for the ticker. The rate-limit backoff window is
	// max(ScanInterval, default) * 3.
	ScanInterval time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Controller is the parent device: the single installation-wide unit
// that polls the vendor cloud. It owns the status store, honours its
// suspension window, and fans a child refresh out on the internal bus
// after every successful poll so zones read the snapshot it just
// installed.
type Controller struct {
	device
	poller       Poller
	commander    Commander
	store        *Store
	timers       *Timers
	bus          *bus.Bus
	recorder     Recorder
	scanInterval time.Duration
	now          func() time.Time
	available    bool
}

// NewController builds the controller facade from a bootstrapped
// topology.
func NewController(cfg ControllerConfig) *Controller {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		device: device{
			id:         cfg.Topology.SystemID,
			name:       cfg.Topology.LocationName,
			icon:       "mdi:thermostat",
			kind:       bus.Parent,
			stateTopic: mqtt.Topics{}.ClimateState(cfg.Topology.SystemID),
			publisher:  cfg.Publisher,
			logger:     cfg.Logger,
			operations: ControllerOperations,
		},
		poller:       cfg.Poller,
		commander:    cfg.Commander,
		store:        cfg.Store,
		timers:       cfg.Timers,
		bus:          cfg.Bus,
		recorder:     cfg.Recorder,
		scanInterval: cfg.ScanInterval,
		now:          now,
	}
}

// Attach subscribes the controller to parent-addressed bus traffic.
func (c *Controller) Attach(b *bus.Bus) {
	b.Subscribe(bus.Parent, c.Refresh)
}

// Available reports whether the controller considers itself reachable.
func (c *Controller) Available() bool { return c.available }

// Refresh handles a parent-addressed refresh: poll the cloud, install
// the snapshot, publish controller state, record telemetry, then wake
// the children. A device inside its suspension window skips the cycle
// quietly.
func (c *Controller) Refresh(ctx context.Context, pkt bus.Packet) error {
	if pkt.Signal != bus.SignalRefresh {
		return nil
	}
	now := c.now()
	if !c.timers.PollAllowed(c.id, now) {
		until, _ := c.timers.SuspendedUntil(c.id)
		c.logger.Debug("polling suspended, skipping cycle",
			"device_id", c.id, "until", until)
		return nil
	}

	status, err := c.poller.SystemStatus(ctx)
	if err != nil {
		return c.handlePollError(err, now)
	}

	c.store.Replace(status, now)
	c.available = true

	if err := c.publish(status); err != nil {
		return err
	}
	c.record(status)

	// Children read the snapshot just installed, never the network.
	return c.bus.Broadcast(ctx, bus.Packet{
		Sender: c.id,
		Signal: bus.SignalRefresh,
		To:     bus.Child,
	})
}

// handlePollError turns a rate limit into a suspension window and lets
// every other failure propagate to the broadcaster's log.
func (c *Controller) handlePollError(err error, now time.Time) error {
	if !errors.Is(err, evohome.ErrRateLimited) {
		return err
	}

	window := c.scanInterval
	if window < config.DefaultScanInterval {
		window = config.DefaultScanInterval
	}
	until := now.Add(window * backoffFactor)
	c.timers.Suspend(c.id, until)
	c.available = false

	c.logger.Warn("vendor api rate limit hit, suspending polling",
		"device_id", c.id,
		"until", until,
		"window", window*backoffFactor)

	if err := c.publishUnavailable(); err != nil {
		c.logger.Error("failed to publish unavailable state",
			"device_id", c.id, "error", err)
	}
	return nil
}

// publish emits the controller's retained state document.
func (c *Controller) publish(status *evohome.SystemStatus) error {
	operation, err := ControllerModeToDisplay(status.SystemModeStatus.Mode)
	if err != nil {
		return err
	}
	return c.publishState(State{
		Name:             c.name,
		Icon:             c.icon,
		Available:        true,
		CurrentOperation: operation,
		OperationList:    c.operations,
		TemperatureUnit:  TemperatureUnit,
		Precision:        TemperaturePrecision,
	})
}

// record forwards the full snapshot to the telemetry store.
func (c *Controller) record(status *evohome.SystemStatus) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordSystemMode(c.id, status.SystemModeStatus.Mode)
	for _, z := range status.Zones {
		if !z.TemperatureStatus.IsAvailable {
			continue
		}
		c.recorder.RecordZoneTemperature(z.ZoneID, z.Name,
			z.TemperatureStatus.Temperature,
			z.SetpointStatus.TargetHeatTemperature)
	}
	if status.DHW != nil && status.DHW.TemperatureStatus.IsAvailable {
		c.recorder.RecordDHWTemperature(status.DHW.DHWID,
			status.DHW.TemperatureStatus.Temperature)
	}
}

// HandleCommand applies a command document to the controller: only
// mode changes are meaningful at this level.
func (c *Controller) HandleCommand(ctx context.Context, payload []byte) error {
	cmd, err := decodeCommand(payload)
	if err != nil {
		return err
	}
	if cmd.AwayMode != nil {
		return fmt.Errorf("%w: controller away mode", evohome.ErrNotSupported)
	}
	if cmd.Operation == "" {
		return ErrEmptyCommand
	}
	mode, err := ControllerModeFromDisplay(cmd.Operation)
	if err != nil {
		return err
	}
	return c.commander.SetSystemMode(ctx, mode)
}
