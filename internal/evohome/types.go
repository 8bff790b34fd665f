package evohome

// Redacted is written over sensitive installation fields once bootstrap
// has extracted what it needs. Location identity, owner, and address are
// never retained in plaintext.
const Redacted = "REDACTED"

// Installation is one location as returned by the vendor's
// installationInfo endpoint: a location containing one gateway containing
// one temperature control system.
type Installation struct {
	LocationInfo LocationInfo `json:"locationInfo"`
	Gateways     []Gateway    `json:"gateways"`
}

// LocationInfo holds the location's identity and address details.
// All sensitive fields are redacted after bootstrap.
type LocationInfo struct {
	LocationID    string `json:"locationId"`
	Name          string `json:"name"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`

	// LocationOwner is an account details object; the bridge never needs
	// it, so it is replaced wholesale during redaction.
	LocationOwner any `json:"locationOwner"`
}

// Gateway is the physical internet gateway for a location.
type Gateway struct {
	// GatewayInfo carries hardware identifiers the bridge never needs;
	// replaced wholesale during redaction.
	GatewayInfo any `json:"gatewayInfo"`

	TemperatureControlSystems []TCS `json:"temperatureControlSystems"`
}

// TCS is the temperature control system (controller), the parent device
// of every zone and the optional hot-water device.
type TCS struct {
	SystemID           string              `json:"systemId"`
	ModelType          string              `json:"modelType"`
	AllowedSystemModes []AllowedSystemMode `json:"allowedSystemModes"`
	Zones              []ZoneConfig        `json:"zones"`
	DHW                *DHWConfig          `json:"dhw,omitempty"`
}

// AllowedSystemMode describes one operating mode the controller accepts.
type AllowedSystemMode struct {
	SystemMode     string `json:"systemMode"`
	CanBePermanent bool   `json:"canBePermanent"`
	CanBeTemporary bool   `json:"canBeTemporary"`
}

// ZoneConfig is the static configuration of one heating zone.
type ZoneConfig struct {
	ZoneID    string `json:"zoneId"`
	Name      string `json:"name"`
	ZoneType  string `json:"zoneType"`
	ModelType string `json:"modelType"`
}

// DHWConfig is the static configuration of the domestic hot-water device.
type DHWConfig struct {
	DHWID string `json:"dhwId"`
}

// Redact overwrites every sensitive field of the installation in place.
// Called during bootstrap, before the installation is retained or logged.
func (inst *Installation) Redact() {
	inst.LocationInfo.LocationID = Redacted
	inst.LocationInfo.StreetAddress = Redacted
	inst.LocationInfo.City = Redacted
	inst.LocationInfo.Postcode = Redacted
	inst.LocationInfo.LocationOwner = Redacted

	for i := range inst.Gateways {
		inst.Gateways[i].GatewayInfo = Redacted
	}
}

// Topology is the redacted, immutable view of the bridged installation
// retained after bootstrap. It carries only what entity construction
// needs; the client keeps the location identifier for status polls
// privately.
type Topology struct {
	LocationName string
	SystemID     string
	ModelType    string
	Zones        []ZoneInfo
	DHW          *DHWInfo
}

// ZoneInfo identifies one heating zone.
type ZoneInfo struct {
	ID   string
	Name string
	Type string
}

// DHWInfo identifies the hot-water device, when the installation has one.
type DHWInfo struct {
	ID string
}

// LocationStatus is the vendor's live status tree for one location.
type LocationStatus struct {
	LocationID string          `json:"locationId"`
	Gateways   []GatewayStatus `json:"gateways"`
}

// GatewayStatus is the status sub-tree for one gateway.
type GatewayStatus struct {
	TemperatureControlSystems []SystemStatus `json:"temperatureControlSystems"`
}

// SystemStatus is the live status of the controller and all its children.
// It is replaced wholesale on every successful poll.
type SystemStatus struct {
	SystemID         string           `json:"systemId"`
	SystemModeStatus SystemModeStatus `json:"systemModeStatus"`
	Zones            []ZoneStatus     `json:"zones"`
	DHW              *DHWStatus       `json:"dhw,omitempty"`
}

// SystemModeStatus is the controller's current operating mode.
type SystemModeStatus struct {
	Mode        string `json:"mode"`
	IsPermanent bool   `json:"isPermanent"`
}

// ZoneStatus is the live status of one heating zone.
type ZoneStatus struct {
	ZoneID            string            `json:"zoneId"`
	Name              string            `json:"name"`
	TemperatureStatus TemperatureStatus `json:"temperatureStatus"`
	SetpointStatus    SetpointStatus    `json:"setpointStatus"`
}

// TemperatureStatus is a measured temperature and its validity flag.
type TemperatureStatus struct {
	Temperature float64 `json:"temperature"`
	IsAvailable bool    `json:"isAvailable"`
}

// SetpointStatus is a zone's target temperature and override mode.
type SetpointStatus struct {
	TargetHeatTemperature float64 `json:"targetHeatTemperature"`
	SetpointMode          string  `json:"setpointMode"`
}

// DHWStatus is the live status of the hot-water device.
type DHWStatus struct {
	DHWID             string            `json:"dhwId"`
	TemperatureStatus TemperatureStatus `json:"temperatureStatus"`
	StateStatus       DHWStateStatus    `json:"stateStatus"`
}

// DHWStateStatus is the hot-water device's on/off state and override mode.
type DHWStateStatus struct {
	State string `json:"state"`
	Mode  string `json:"mode"`
}
