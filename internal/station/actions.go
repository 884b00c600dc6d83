package station

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stationctl/internal/logging"
)

// Action target identifiers understood by the manager.
const (
	// TargetManager addresses the station manager process itself.
	TargetManager = "Station"
	// TargetAllDevices addresses every device on a station.
	TargetAllDevices = "all"
)

// Command URL discriminators for action requests.
const (
	CommandURLManager = "manager"
	CommandURLCommand = "command"
)

// Field paths used by partial updates.
const (
	FieldSettingsRoom    = "settings.room"
	FieldSettingsDevices = "settings.devices"
)

// ActionRequest is the wire body of a station action.
type ActionRequest struct {
	StationID  string `json:"station_id"`
	TargetID   string `json:"id"`
	CommandURL string `json:"command_url"`
	Action     string `json:"action"`
}

// Backend is the slice of the manager API the dispatcher needs.
type Backend interface {
	CreateStation(ctx context.Context, settings Settings) error
	DeleteStation(ctx context.Context, id string) error
	UpdateStationField(ctx context.Context, id, key string, value any) error
	StationAction(ctx context.Context, req ActionRequest) error
}

// Dispatcher issues mutation and command requests against the manager.
//
// Every operation is fire-and-forget: nothing here waits for the push feed
// to confirm the change, and no local state is mutated optimistically. The
// store converges when the manager emits the matching event.
type Dispatcher struct {
	backend Backend
	store   *Store
	logger  *slog.Logger
}

// NewDispatcher constructs a dispatcher over the given backend and store.
func NewDispatcher(backend Backend, store *Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		store:   store,
		logger:  logging.WithComponent(logger, "dispatch"),
	}
}

// UpdateField issues a partial update of one named field path.
func (d *Dispatcher) UpdateField(ctx context.Context, stationID, key string, value any) error {
	if err := d.backend.UpdateStationField(ctx, stationID, key, value); err != nil {
		d.logger.Error("partial update failed",
			slog.String(logging.FieldStationID, stationID),
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	d.logger.Info("partial update sent",
		slog.String(logging.FieldStationID, stationID),
		slog.String("key", key))
	return nil
}

// AssignRoom sets the station's room; an empty room clears the assignment.
func (d *Dispatcher) AssignRoom(ctx context.Context, stationID, room string) error {
	return d.UpdateField(ctx, stationID, FieldSettingsRoom, room)
}

// AddDevice appends a device to the station's configured list and issues the
// partial update. The sentinel "all" is treated as an empty explicit list
// before mutation.
func (d *Dispatcher) AddDevice(ctx context.Context, st Station, device Device) error {
	devices := append(st.Settings.Devices.Explicit(), device)
	return d.UpdateField(ctx, st.StationID, FieldSettingsDevices, devices)
}

// RemoveDevice removes a device (by id) from the configured list and issues
// the partial update.
func (d *Dispatcher) RemoveDevice(ctx context.Context, st Station, deviceID string) error {
	configured := st.Settings.Devices.Explicit()
	devices := make([]Device, 0, len(configured))
	for _, device := range configured {
		if device.ID == deviceID {
			continue
		}
		devices = append(devices, device)
	}
	return d.UpdateField(ctx, st.StationID, FieldSettingsDevices, devices)
}

// RoomManagers sends a manager-level command to every station assigned to
// the room. Failures are logged per station and do not stop the sweep.
func (d *Dispatcher) RoomManagers(ctx context.Context, room, action string) error {
	return d.roomSweep(ctx, room, action, TargetManager, CommandURLManager)
}

// RoomStations sends an all-devices command to every station assigned to the
// room. Failures are logged per station and do not stop the sweep.
func (d *Dispatcher) RoomStations(ctx context.Context, room, action string) error {
	return d.roomSweep(ctx, room, action, TargetAllDevices, CommandURLCommand)
}

func (d *Dispatcher) roomSweep(ctx context.Context, room, action, targetID, commandURL string) error {
	stations := d.store.InRoom(room)
	if len(stations) == 0 {
		d.logger.Warn("no stations in room", slog.String(logging.FieldRoom, room))
		return nil
	}

	var errs []error
	for _, st := range stations {
		err := d.action(ctx, ActionRequest{
			StationID:  st.StationID,
			TargetID:   targetID,
			CommandURL: commandURL,
			Action:     action,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("station %s: %w", st.StationID, err))
		}
	}
	return errors.Join(errs...)
}

// StationManager sends a manager-level command to a single station.
func (d *Dispatcher) StationManager(ctx context.Context, stationID, action string) error {
	return d.action(ctx, ActionRequest{
		StationID:  stationID,
		TargetID:   TargetManager,
		CommandURL: CommandURLManager,
		Action:     action,
	})
}

// DeviceAction sends a command to a specific device, or to all devices when
// targetID is the sentinel "all".
func (d *Dispatcher) DeviceAction(ctx context.Context, stationID, targetID, action string) error {
	return d.action(ctx, ActionRequest{
		StationID:  stationID,
		TargetID:   targetID,
		CommandURL: CommandURLCommand,
		Action:     action,
	})
}

func (d *Dispatcher) action(ctx context.Context, req ActionRequest) error {
	if err := d.backend.StationAction(ctx, req); err != nil {
		d.logger.Error("action failed",
			slog.String(logging.FieldStationID, req.StationID),
			slog.String("target", req.TargetID),
			slog.String("action", req.Action),
			slog.String("error", err.Error()))
		return err
	}
	d.logger.Info("action sent",
		slog.String(logging.FieldStationID, req.StationID),
		slog.String("target", req.TargetID),
		slog.String("action", req.Action))
	return nil
}

// Create registers a new station with its initial settings.
func (d *Dispatcher) Create(ctx context.Context, settings Settings) error {
	if err := d.backend.CreateStation(ctx, settings); err != nil {
		d.logger.Error("station create failed", slog.String("error", err.Error()))
		return err
	}
	d.logger.Info("station created", slog.String(logging.FieldStationID, settings.StationID))
	return nil
}

// Delete removes a station by id. The authoritative removal from the store
// arrives via the push feed, not from this response.
func (d *Dispatcher) Delete(ctx context.Context, stationID string) error {
	if err := d.backend.DeleteStation(ctx, stationID); err != nil {
		d.logger.Error("station delete failed",
			slog.String(logging.FieldStationID, stationID),
			slog.String("error", err.Error()))
		return err
	}
	d.logger.Info("station delete sent", slog.String(logging.FieldStationID, stationID))
	return nil
}
