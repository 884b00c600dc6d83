package station

import (
	"errors"
	"log/slog"
	"sort"

	"stationctl/internal/logging"
)

// FromPayload maps a raw manager payload into a view-model Station.
//
// Device derivation errors are logged and tolerated: a station must never
// fail to materialize because its devices or status arrived malformed, so
// the record is returned with whatever partial data is available.
func FromPayload(payload Payload, logger *slog.Logger) Station {
	if logger == nil {
		logger = logging.NewNop()
	}

	st := Station{
		StationID: payload.ID(),
		Settings:  payload.Settings,
		Devices:   append([]Device(nil), payload.Devices...),
		Status:    payload.Status,
	}

	st.StatusEntries = flattenStatus(payload.Status)

	if len(payload.Devices) > 0 {
		available, err := deriveAvailableDevices(payload.Devices, payload.Settings.Devices)
		if err != nil {
			logger.Warn("station devices broken, update the station",
				slog.String(logging.FieldStationID, st.StationID),
				slog.String("error", err.Error()))
		}
		st.AvailableDevices = available
	}

	return st
}

// flattenStatus turns the process-status map into a sorted entry list,
// normalizing the two fields the manager sometimes omits: running defaults
// to "0" and type to "internal".
func flattenStatus(status map[string]RawProcess) []ProcessStatus {
	if len(status) == 0 {
		return []ProcessStatus{}
	}
	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]ProcessStatus, 0, len(names))
	for _, name := range names {
		raw := status[name]
		procType := raw.Type
		if procType == "" {
			procType = ProcessTypeInternal
		}
		entries = append(entries, ProcessStatus{
			Name:    name,
			Status:  raw.Status,
			Type:    procType,
			Running: runningOrDefault(raw.Running),
		})
	}
	return entries
}

// deriveAvailableDevices computes inventory minus configured devices. The
// sentinel "all" means every device is already configured, so nothing is
// available.
func deriveAvailableDevices(inventory []Device, configured DeviceSelection) ([]Device, error) {
	if configured.All {
		return []Device{}, nil
	}

	var err error
	seen := make(map[string]struct{}, len(configured.Devices))
	for _, device := range configured.Devices {
		if device.ID == "" {
			err = errors.New("configured device missing id")
			continue
		}
		seen[device.ID] = struct{}{}
	}

	available := make([]Device, 0, len(inventory))
	for _, device := range inventory {
		if _, ok := seen[device.ID]; ok {
			continue
		}
		available = append(available, device)
	}
	return available, err
}
