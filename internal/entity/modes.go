package entity

import "fmt"

// Vendor operating modes as the cloud API spells them.
const (
	SystemModeReset      = "AutoWithReset"
	SystemModeAuto       = "Auto"
	SystemModeEco        = "AutoWithEco"
	SystemModeAway       = "Away"
	SystemModeDayOff     = "DayOff"
	SystemModeCustom     = "Custom"
	SystemModeHeatingOff = "HeatingOff"

	ZoneModeFollowSchedule    = "FollowSchedule"
	ZoneModeTemporaryOverride = "TemporaryOverride"
	ZoneModePermanentOverride = "PermanentOverride"
)

// Display operations as the automation platform spells them.
const (
	OpAuto   = "auto"
	OpEco    = "eco"
	OpOff    = "off"
	OpManual = "manual"
)

// systemModeDisplay is total over every vendor controller mode: the
// holiday-style modes collapse onto "auto" because the platform has no
// richer vocabulary for them.
var systemModeDisplay = map[string]string{
	SystemModeReset:      OpAuto,
	SystemModeAuto:       OpAuto,
	SystemModeEco:        OpEco,
	SystemModeAway:       OpAuto,
	SystemModeDayOff:     OpAuto,
	SystemModeCustom:     OpAuto,
	SystemModeHeatingOff: OpOff,
}

// systemModeVendor is the deliberately partial inverse: only the display
// operations a user may request map back. The collapsed modes (Away,
// DayOff, Custom) are unreachable from the platform side.
var systemModeVendor = map[string]string{
	OpAuto: SystemModeAuto,
	OpEco:  SystemModeEco,
	OpOff:  SystemModeHeatingOff,
}

var zoneModeVendor = map[string]string{
	OpAuto:   ZoneModeFollowSchedule,
	OpManual: ZoneModePermanentOverride,
}

// Operation lists advertised in retained state documents.
var (
	ControllerOperations = []string{OpAuto, OpEco, OpOff}
	ZoneOperations       = []string{OpAuto, OpManual}
)

// ControllerModeToDisplay converts a vendor controller mode into the
// display operation shown to the platform.
//
// Parameters:
//   - mode: vendor controller mode, e.g. "AutoWithEco"
//
// Returns:
//   - string: display operation, e.g. "eco"
//   - error: ErrUnknownMode when the vendor mode is unrecognised
func ControllerModeToDisplay(mode string) (string, error) {
	display, ok := systemModeDisplay[mode]
	if !ok {
		return "", fmt.Errorf("%w: controller mode %q", ErrUnknownMode, mode)
	}
	return display, nil
}

// ZoneModeToDisplay converts a zone setpoint mode into a display
// operation. A zone following its schedule inherits the controller's
// display operation, with one substitution: the transient
// "AutoWithReset" reads as plain "Auto" so zones never surface the
// reset pulse. Either override flavour reads as "manual" regardless of
// what the controller is doing.
func ZoneModeToDisplay(zoneMode, controllerMode string) (string, error) {
	switch zoneMode {
	case ZoneModeFollowSchedule:
		if controllerMode == SystemModeReset {
			controllerMode = SystemModeAuto
		}
		return ControllerModeToDisplay(controllerMode)
	case ZoneModeTemporaryOverride, ZoneModePermanentOverride:
		return OpManual, nil
	default:
		return "", fmt.Errorf("%w: zone mode %q", ErrUnknownMode, zoneMode)
	}
}

// ControllerModeFromDisplay converts a requested display operation into
// the vendor controller mode to command. Returns ErrUnknownMode for
// operations outside ControllerOperations.
func ControllerModeFromDisplay(operation string) (string, error) {
	mode, ok := systemModeVendor[operation]
	if !ok {
		return "", fmt.Errorf("%w: controller operation %q", ErrUnknownMode, operation)
	}
	return mode, nil
}

// ZoneModeFromDisplay converts a requested display operation into the
// vendor zone mode to command. "manual" always means a permanent
// override. Returns ErrUnknownMode for operations outside
// ZoneOperations.
func ZoneModeFromDisplay(operation string) (string, error) {
	mode, ok := zoneModeVendor[operation]
	if !ok {
		return "", fmt.Errorf("%w: zone operation %q", ErrUnknownMode, operation)
	}
	return mode, nil
}
