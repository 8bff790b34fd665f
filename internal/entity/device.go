package entity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nerrad567/evobridge/internal/bus"
	"github.com/nerrad567/evobridge/internal/evohome"
)

// Temperature presentation shared by every device.
const (
	TemperatureUnit      = "°C"
	TemperaturePrecision = 0.5
)

// Publisher publishes retained state documents to the platform bus.
// *mqtt.Client satisfies this interface.
type Publisher interface {
	PublishRetained(topic string, payload []byte) error
}

// Poller fetches a live status snapshot from the vendor cloud.
// *evohome.Client satisfies this interface.
type Poller interface {
	SystemStatus(ctx context.Context) (*evohome.SystemStatus, error)
}

// Commander issues write commands against the vendor cloud.
// *evohome.Client satisfies this interface.
type Commander interface {
	SetSystemMode(ctx context.Context, mode string) error
	SetZoneMode(ctx context.Context, zoneID, mode string) error
	SetZoneTemperature(ctx context.Context, zoneID string, target float64) error
}

// Logger abstracts structured logging for devices.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// State is the retained JSON document a device publishes after each
// refresh. Pointer fields are omitted when the device has no value to
// report, rather than published as zero.
type State struct {
	Name               string   `json:"name"`
	Icon               string   `json:"icon"`
	Available          bool     `json:"available"`
	CurrentOperation   string   `json:"current_operation,omitempty"`
	OperationList      []string `json:"operation_list"`
	CurrentTemperature *float64 `json:"current_temperature,omitempty"`
	TargetTemperature  *float64 `json:"target_temperature,omitempty"`
	MinTemp            *float64 `json:"min_temp,omitempty"`
	MaxTemp            *float64 `json:"max_temp,omitempty"`
	TemperatureUnit    string   `json:"temperature_unit"`
	Precision          float64  `json:"precision"`
}

// Command is the JSON document accepted on a device's command topic.
type Command struct {
	Operation   string   `json:"operation,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	AwayMode    *bool    `json:"away_mode,omitempty"`
}

// decodeCommand parses a raw command payload and rejects documents
// that carry nothing actionable.
func decodeCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("entity: invalid command payload: %w", err)
	}
	if cmd.Operation == "" && cmd.Temperature == nil && cmd.AwayMode == nil {
		return Command{}, ErrEmptyCommand
	}
	return cmd, nil
}

// device carries the identity and plumbing shared by the controller,
// zones, and the hot water facade.
type device struct {
	id         string
	name       string
	icon       string
	kind       bus.Mask
	stateTopic string
	publisher  Publisher
	logger     Logger
	operations []string
}

// ID returns the vendor identifier for the device.
func (d *device) ID() string { return d.id }

// Name returns the human-readable device name.
func (d *device) Name() string { return d.name }

// Kind returns the bus address class the device listens on.
func (d *device) Kind() bus.Mask { return d.kind }

// ShouldPoll reports whether the device polls the vendor cloud itself.
// Only the parent does; children read the shared snapshot.
func (d *device) ShouldPoll() bool { return d.kind == bus.Parent }

// OperationList returns the display operations the device accepts.
func (d *device) OperationList() []string { return d.operations }

// publishState marshals and publishes a retained state document.
func (d *device) publishState(st State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("entity: marshal state for %s: %w", d.id, err)
	}
	if err := d.publisher.PublishRetained(d.stateTopic, payload); err != nil {
		return fmt.Errorf("entity: publish state for %s: %w", d.id, err)
	}
	return nil
}

// publishUnavailable publishes a bare unavailable document, keeping
// name and icon so the platform can still render the device.
func (d *device) publishUnavailable() error {
	return d.publishState(State{
		Name:            d.name,
		Icon:            d.icon,
		Available:       false,
		OperationList:   d.operations,
		TemperatureUnit: TemperatureUnit,
		Precision:       TemperaturePrecision,
	})
}
