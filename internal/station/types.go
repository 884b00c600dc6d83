package station

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DeviceSentinelAll is the settings.devices value meaning every device on the
// station is configured.
const DeviceSentinelAll = "all"

// Process type values with special display handling.
const (
	ProcessTypeInternal = "internal"
	ProcessTypeFile     = "file"
)

// Device is one hardware device reported by a station.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Path string `json:"path,omitempty"`
}

// DeviceSelection models settings.devices: either the sentinel "all" or an
// explicit device list.
type DeviceSelection struct {
	All     bool
	Devices []Device
}

// UnmarshalJSON accepts the sentinel string "all", a device list, or null.
func (s *DeviceSelection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = DeviceSelection{}
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		if value != DeviceSentinelAll && value != "" {
			return fmt.Errorf("settings.devices: unexpected value %q", value)
		}
		*s = DeviceSelection{All: value == DeviceSentinelAll}
		return nil
	}
	var devices []Device
	if err := json.Unmarshal(trimmed, &devices); err != nil {
		return err
	}
	*s = DeviceSelection{Devices: devices}
	return nil
}

// MarshalJSON writes the sentinel back as the literal "all" so partial
// updates round-trip the manager's representation.
func (s DeviceSelection) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal(DeviceSentinelAll)
	}
	if s.Devices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Devices)
}

// Explicit returns the configured devices as an explicit list, treating the
// sentinel as an empty list so it can be mutated.
func (s DeviceSelection) Explicit() []Device {
	if s.All {
		return nil
	}
	return append([]Device(nil), s.Devices...)
}

// Settings is the operator-controlled slice of a station record.
type Settings struct {
	StationID string          `json:"station_id,omitempty"`
	Room      string          `json:"room,omitempty"`
	Devices   DeviceSelection `json:"devices,omitempty"`
	Roles     []string        `json:"roles,omitempty"`
}

// RawProcess is the manager's per-process status as it appears on the wire.
// Running is stringly typed upstream; absent fields take display defaults at
// mapping time.
type RawProcess struct {
	Running StringOrNumber `json:"running,omitempty"`
	Type    string         `json:"type,omitempty"`
	Status  string         `json:"status,omitempty"`
}

// StringOrNumber tolerates manager payloads that emit numeric flags either
// quoted or bare.
type StringOrNumber string

// UnmarshalJSON accepts a JSON string or number.
func (v *StringOrNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*v = StringOrNumber(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*v = StringOrNumber(number.String())
	return nil
}

// MarshalJSON writes the value as a JSON string.
func (v StringOrNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// DeviceInventory tolerates both list- and map-shaped device inventories.
type DeviceInventory []Device

// UnmarshalJSON accepts either a JSON array of devices or an object keyed by
// device id. Map-shaped inventories are ordered by key for determinism.
func (inv *DeviceInventory) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*inv = nil
		return nil
	}
	if trimmed[0] == '[' {
		var devices []Device
		if err := json.Unmarshal(trimmed, &devices); err != nil {
			return err
		}
		*inv = devices
		return nil
	}
	var byID map[string]Device
	if err := json.Unmarshal(trimmed, &byID); err != nil {
		return err
	}
	keys := make([]string, 0, len(byID))
	for key := range byID {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	devices := make([]Device, 0, len(keys))
	for _, key := range keys {
		device := byID[key]
		if device.ID == "" {
			device.ID = key
		}
		devices = append(devices, device)
	}
	*inv = devices
	return nil
}

// Payload is a station record as the manager sends it, before view-model
// mapping.
type Payload struct {
	StationID string                `json:"station_id"`
	Settings  Settings              `json:"settings"`
	Devices   DeviceInventory       `json:"devices,omitempty"`
	Status    map[string]RawProcess `json:"status,omitempty"`
}

// ID returns the station identity, preferring the top-level field and falling
// back to settings.
func (p Payload) ID() string {
	if p.StationID != "" {
		return p.StationID
	}
	return p.Settings.StationID
}

// ProcessStatus is one flattened, typed process entry derived from the raw
// status map for display.
type ProcessStatus struct {
	Name    string
	Status  string
	Type    string
	Running string
}

// Station is the mapped view-model record held by the Store.
type Station struct {
	StationID string
	Settings  Settings
	Devices   []Device
	Status    map[string]RawProcess

	// StatusEntries is the status map flattened into a stable order at
	// mapping time.
	StatusEntries []ProcessStatus
	// AvailableDevices is derived once at mapping time: the inventory minus
	// configured devices, or empty when settings.devices is "all".
	AvailableDevices []Device
}

// Room returns the assigned room, or the empty string.
func (s Station) Room() string {
	return s.Settings.Room
}

func runningOrDefault(value StringOrNumber) string {
	if value == "" {
		return "0"
	}
	return string(value)
}
