package entity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/evohome"
)

func newTestZone(t *testing.T) (*Zone, *Store, *fakePublisher, *fakeCommander) {
	t.Helper()
	store := NewStore()
	publisher := newFakePublisher()
	commander := newFakeCommander()
	zone := NewZone(
		evohome.ZoneInfo{ID: "z-1", Name: "Living Room", Type: "RadiatorZone"},
		store, publisher, commander, nopLogger{},
	)
	return zone, store, publisher, commander
}

func childRefreshPacket() bus.Packet {
	return bus.Packet{Sender: "tcs-1", Signal: bus.SignalRefresh, To: bus.Child}
}

// ====== Refresh Tests ======

func TestZone_OnlyControllerPolls(t *testing.T) {
	zone, _, _, _ := newTestZone(t)
	if zone.ShouldPoll() {
		t.Error("zones must never poll the vendor cloud")
	}
}

func TestZone_RefreshPublishesFromSnapshot(t *testing.T) {
	zone, store, publisher, _ := newTestZone(t)
	store.Replace(testStatus(), time.Now())

	if err := zone.Refresh(context.Background(), childRefreshPacket()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	st := publisher.lastState(t, "evobridge/climate/z-1/state")
	if !st.Available {
		t.Error("zone should be available")
	}
	if st.CurrentOperation != OpAuto {
		t.Errorf("current_operation = %q, want %q", st.CurrentOperation, OpAuto)
	}
	if st.CurrentTemperature == nil || *st.CurrentTemperature != 20.5 {
		t.Errorf("current_temperature = %v, want 20.5", st.CurrentTemperature)
	}
	if st.TargetTemperature == nil || *st.TargetTemperature != 21.0 {
		t.Errorf("target_temperature = %v, want 21.0", st.TargetTemperature)
	}
	if st.TemperatureUnit != TemperatureUnit {
		t.Errorf("temperature_unit = %q, want %q", st.TemperatureUnit, TemperatureUnit)
	}
}

func TestZone_RefreshShowsManualForOverride(t *testing.T) {
	zone, store, publisher, _ := newTestZone(t)
	status := testStatus()
	status.Zones[0].SetpointStatus.SetpointMode = ZoneModePermanentOverride
	// Override must read as manual even while the controller runs eco.
	status.SystemModeStatus.Mode = SystemModeEco
	store.Replace(status, time.Now())

	if err := zone.Refresh(context.Background(), childRefreshPacket()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	st := publisher.lastState(t, "evobridge/climate/z-1/state")
	if st.CurrentOperation != OpManual {
		t.Errorf("current_operation = %q, want %q", st.CurrentOperation, OpManual)
	}
}

func TestZone_RefreshHidesResetPulse(t *testing.T) {
	zone, store, publisher, _ := newTestZone(t)
	status := testStatus()
	status.SystemModeStatus.Mode = SystemModeReset
	store.Replace(status, time.Now())

	if err := zone.Refresh(context.Background(), childRefreshPacket()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	st := publisher.lastState(t, "evobridge/climate/z-1/state")
	if st.CurrentOperation != OpAuto {
		t.Errorf("scheduled zone under reset shows %q, want %q", st.CurrentOperation, OpAuto)
	}
}

func TestZone_RefreshUnavailableSensor(t *testing.T) {
	zone, store, publisher, _ := newTestZone(t)
	status := testStatus()
	status.Zones[0].TemperatureStatus.IsAvailable = false
	store.Replace(status, time.Now())

	if err := zone.Refresh(context.Background(), childRefreshPacket()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	st := publisher.lastState(t, "evobridge/climate/z-1/state")
	if st.Available {
		t.Error("zone with a faulted sensor should be unavailable")
	}
	if st.CurrentTemperature != nil {
		t.Errorf("current_temperature = %v, want omitted", *st.CurrentTemperature)
	}
}

func TestZone_RefreshBeforeFirstPoll(t *testing.T) {
	zone, _, publisher, _ := newTestZone(t)

	if err := zone.Refresh(context.Background(), childRefreshPacket()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	st := publisher.lastState(t, "evobridge/climate/z-1/state")
	if st.Available {
		t.Error("zone with no snapshot should be unavailable")
	}
}

func TestZone_RefreshIgnoresOtherSignals(t *testing.T) {
	zone, _, publisher, _ := newTestZone(t)

	pkt := bus.Packet{Sender: "tcs-1", Signal: "shutdown", To: bus.Child}
	if err := zone.Refresh(context.Background(), pkt); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Error("non-refresh signal should publish nothing")
	}
}

// ====== Command Tests ======

func TestZone_HandleCommandMode(t *testing.T) {
	zone, _, _, commander := newTestZone(t)

	if err := zone.HandleCommand(context.Background(), []byte(`{"operation":"manual"}`)); err != nil {
		t.Fatalf("HandleCommand failed: %v", err)
	}
	if got := commander.zoneModes["z-1"]; got != ZoneModePermanentOverride {
		t.Errorf("commanded mode = %q, want %q", got, ZoneModePermanentOverride)
	}
}

func TestZone_HandleCommandSetpoint(t *testing.T) {
	zone, _, _, commander := newTestZone(t)

	if err := zone.HandleCommand(context.Background(), []byte(`{"temperature":19.5}`)); err != nil {
		t.Fatalf("HandleCommand failed: %v", err)
	}
	if got := commander.zoneTemps["z-1"]; got != 19.5 {
		t.Errorf("commanded setpoint = %v, want 19.5", got)
	}
}

func TestZone_HandleCommandRejectsControllerOnlyOperation(t *testing.T) {
	zone, _, _, _ := newTestZone(t)

	err := zone.HandleCommand(context.Background(), []byte(`{"operation":"eco"}`))
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestZone_HandleCommandSurfacesVendorRefusal(t *testing.T) {
	zone, _, _, commander := newTestZone(t)
	commander.err = evohome.ErrNotSupported

	err := zone.HandleCommand(context.Background(), []byte(`{"operation":"auto"}`))
	if !errors.Is(err, evohome.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}
