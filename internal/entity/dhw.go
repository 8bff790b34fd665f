package entity

import (
	"context"
	"fmt"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/evohome"
	"github.com/nerrad567/evobridge/internal/infrastructure/config"
	"github.com/nerrad567/evobridge/internal/infrastructure/mqtt"
)

// DHW is the child device for the stored hot water tank. The vendor
// API never reports the tank's target temperature, so state documents
// carry the configurable min/max band and the current temperature
// only.
type DHW struct {
	device
	store     *Store
	commander Commander
}

// NewDHW builds the hot water facade from its bootstrapped identity.
func NewDHW(info evohome.DHWInfo, store *Store, publisher Publisher, commander Commander, logger Logger) *DHW {
	return &DHW{
		device: device{
			id:         info.ID,
			name:       "DHW controller",
			icon:       "mdi:thermometer-lines",
			kind:       bus.Child,
			stateTopic: mqtt.Topics{}.WaterHeaterState(info.ID),
			publisher:  publisher,
			logger:     logger,
			operations: ZoneOperations,
		},
		store:     store,
		commander: commander,
	}
}

// Attach subscribes the hot water device to child-addressed bus traffic.
func (d *DHW) Attach(b *bus.Bus) {
	b.Subscribe(bus.Child, d.Refresh)
}

// Refresh re-derives the tank's state from the stored snapshot and
// publishes it.
func (d *DHW) Refresh(ctx context.Context, pkt bus.Packet) error {
	if pkt.Signal != bus.SignalRefresh {
		return nil
	}
	status, ok := d.store.DHW()
	system, sysOK := d.store.System()
	if !ok || !sysOK {
		d.logger.Warn("hot water missing from status snapshot", "device_id", d.id)
		return d.publishUnavailable()
	}

	operation, err := ZoneModeToDisplay(status.StateStatus.Mode, system.Mode)
	if err != nil {
		return err
	}

	minTemp := config.MinDHWTargetTemp
	maxTemp := config.MaxDHWTargetTemp
	st := State{
		Name:             d.name,
		Icon:             d.icon,
		Available:        status.TemperatureStatus.IsAvailable,
		CurrentOperation: operation,
		OperationList:    d.operations,
		MinTemp:          &minTemp,
		MaxTemp:          &maxTemp,
		TemperatureUnit:  TemperatureUnit,
		Precision:        TemperaturePrecision,
	}
	if status.TemperatureStatus.IsAvailable {
		temp := status.TemperatureStatus.Temperature
		st.CurrentTemperature = &temp
	}

	return d.publishState(st)
}

// HandleCommand applies a command document to the hot water device.
// The vendor addresses the tank with the same mode and setpoint calls
// as a zone.
func (d *DHW) HandleCommand(ctx context.Context, payload []byte) error {
	cmd, err := decodeCommand(payload)
	if err != nil {
		return err
	}
	if cmd.AwayMode != nil {
		// Declared for platform compatibility; the vendor layer has no
		// away toggle for the tank.
		return fmt.Errorf("%w: hot water away mode", evohome.ErrNotSupported)
	}
	if cmd.Operation != "" {
		mode, err := ZoneModeFromDisplay(cmd.Operation)
		if err != nil {
			return err
		}
		if err := d.commander.SetZoneMode(ctx, d.id, mode); err != nil {
			return err
		}
	}
	if cmd.Temperature != nil {
		return d.commander.SetZoneTemperature(ctx, d.id, *cmd.Temperature)
	}
	return nil
}
