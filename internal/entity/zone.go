package entity

import (
	"context"
	"fmt"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/evohome"
	"github.com/nerrad567/evobridge/internal/infrastructure/mqtt"
)

// Zone is a child device for a single heating zone. It never talks to
// the vendor cloud for state: refreshes read the zone's slice of the
// controller's snapshot and re-publish it.
type Zone struct {
	device
	store     *Store
	commander Commander
}

// NewZone builds a zone facade from its bootstrapped identity.
func NewZone(info evohome.ZoneInfo, store *Store, publisher Publisher, commander Commander, logger Logger) *Zone {
	return &Zone{
		device: device{
			id:         info.ID,
			name:       info.Name,
			icon:       "mdi:radiator",
			kind:       bus.Child,
			stateTopic: mqtt.Topics{}.ClimateState(info.ID),
			publisher:  publisher,
			logger:     logger,
			operations: ZoneOperations,
		},
		store:     store,
		commander: commander,
	}
}

// Attach subscribes the zone to child-addressed bus traffic.
func (z *Zone) Attach(b *bus.Bus) {
	b.Subscribe(bus.Child, z.Refresh)
}

// Refresh re-derives the zone's state from the stored snapshot and
// publishes it. A zone missing from the snapshot publishes as
// unavailable rather than holding a stale retained document.
func (z *Zone) Refresh(ctx context.Context, pkt bus.Packet) error {
	if pkt.Signal != bus.SignalRefresh {
		return nil
	}
	status, ok := z.store.Zone(z.id)
	system, sysOK := z.store.System()
	if !ok || !sysOK {
		z.logger.Warn("zone missing from status snapshot", "device_id", z.id)
		return z.publishUnavailable()
	}

	operation, err := ZoneModeToDisplay(status.SetpointStatus.SetpointMode, system.Mode)
	if err != nil {
		return err
	}

	st := State{
		Name:             z.name,
		Icon:             z.icon,
		Available:        status.TemperatureStatus.IsAvailable,
		CurrentOperation: operation,
		OperationList:    z.operations,
		TemperatureUnit:  TemperatureUnit,
		Precision:        TemperaturePrecision,
	}
	if status.TemperatureStatus.IsAvailable {
		temp := status.TemperatureStatus.Temperature
		st.CurrentTemperature = &temp
	}
	target := status.SetpointStatus.TargetHeatTemperature
	st.TargetTemperature = &target

	return z.publishState(st)
}

// HandleCommand applies a command document to the zone: a mode change,
// a setpoint change, or both.
func (z *Zone) HandleCommand(ctx context.Context, payload []byte) error {
	cmd, err := decodeCommand(payload)
	if err != nil {
		return err
	}
	if cmd.AwayMode != nil {
		return fmt.Errorf("%w: zone away mode", evohome.ErrNotSupported)
	}
	if cmd.Operation != "" {
		mode, err := ZoneModeFromDisplay(cmd.Operation)
		if err != nil {
			return err
		}
		if err := z.commander.SetZoneMode(ctx, z.id, mode); err != nil {
			return err
		}
	}
	if cmd.Temperature != nil {
		return z.commander.SetZoneTemperature(ctx, z.id, *cmd.Temperature)
	}
	return nil
}
