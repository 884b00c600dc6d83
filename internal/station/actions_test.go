package station

import (
	"context"
	"errors"
	"testing"
)

type fakeBackend struct {
	updates []struct {
		stationID, key string
		value          any
	}
	actions []ActionRequest
	created []Settings
	deleted []string
	fail    bool
}

func (f *fakeBackend) CreateStation(_ context.Context, settings Settings) error {
	if f.fail {
		return errors.New("boom")
	}
	f.created = append(f.created, settings)
	return nil
}

func (f *fakeBackend) DeleteStation(_ context.Context, id string) error {
	if f.fail {
		return errors.New("boom")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) UpdateStationField(_ context.Context, id, key string, value any) error {
	if f.fail {
		return errors.New("boom")
	}
	f.updates = append(f.updates, struct {
		stationID, key string
		value          any
	}{id, key, value})
	return nil
}

func (f *fakeBackend) StationAction(_ context.Context, req ActionRequest) error {
	if f.fail {
		return errors.New("boom")
	}
	f.actions = append(f.actions, req)
	return nil
}

func roomStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(nil)
	a := Payload{StationID: "cam01"}
	a.Settings.Room = "main"
	b := Payload{StationID: "cam02"}
	b.Settings.Room = "main"
	c := Payload{StationID: "cam03"}
	c.Settings.Room = "breakout"
	store.Seed([]Payload{a, b, c})
	return store
}

func TestRoomManagersTargetsEveryStationInRoom(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, roomStore(t), nil)

	if err := d.RoomManagers(context.Background(), "main", "restart"); err != nil {
		t.Fatalf("RoomManagers: %v", err)
	}

	if len(backend.actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(backend.actions))
	}
	for _, req := range backend.actions {
		if req.TargetID != TargetManager || req.CommandURL != CommandURLManager {
			t.Fatalf("expected manager-level command, got %+v", req)
		}
		if req.Action != "restart" {
			t.Fatalf("unexpected action: %q", req.Action)
		}
	}
}

func TestRoomStationsUsesAllDevicesTarget(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, roomStore(t), nil)

	if err := d.RoomStations(context.Background(), "breakout", "stop"); err != nil {
		t.Fatalf("RoomStations: %v", err)
	}

	if len(backend.actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(backend.actions))
	}
	req := backend.actions[0]
	if req.StationID != "cam03" || req.TargetID != TargetAllDevices || req.CommandURL != CommandURLCommand {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRoomSweepEmptyRoomIsNoOp(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, roomStore(t), nil)

	if err := d.RoomManagers(context.Background(), "ghost-room", "start"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(backend.actions) != 0 {
		t.Fatal("expected no actions for empty room")
	}
}

func TestAddDeviceTreatsSentinelAsEmptyList(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, NewStore(nil), nil)

	st := Station{StationID: "cam01"}
	st.Settings.Devices = DeviceSelection{All: true}

	if err := d.AddDevice(context.Background(), st, Device{ID: "video0"}); err != nil {
		t.Fatalf("AddDevice: %v", err)
	}

	if len(backend.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(backend.updates))
	}
	update := backend.updates[0]
	if update.key != FieldSettingsDevices {
		t.Fatalf("unexpected key: %q", update.key)
	}
	devices, ok := update.value.([]Device)
	if !ok || len(devices) != 1 || devices[0].ID != "video0" {
		t.Fatalf("expected explicit single-device list, got %#v", update.value)
	}
}

func TestRemoveDeviceFiltersByID(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, NewStore(nil), nil)

	st := Station{StationID: "cam01"}
	st.Settings.Devices = DeviceSelection{Devices: []Device{{ID: "video0"}, {ID: "audio0"}}}

	if err := d.RemoveDevice(context.Background(), st, "video0"); err != nil {
		t.Fatalf("RemoveDevice: %v", err)
	}

	devices := backend.updates[0].value.([]Device)
	if len(devices) != 1 || devices[0].ID != "audio0" {
		t.Fatalf("expected only audio0 to remain, got %+v", devices)
	}
}

func TestDispatcherSurfacesBackendErrors(t *testing.T) {
	backend := &fakeBackend{fail: true}
	d := NewDispatcher(backend, roomStore(t), nil)

	if err := d.StationManager(context.Background(), "cam01", "start"); err == nil {
		t.Fatal("expected error")
	}
	if err := d.RoomManagers(context.Background(), "main", "start"); err == nil {
		t.Fatal("expected joined sweep error")
	}
	if err := d.Delete(context.Background(), "cam01"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreateAndDeletePassThrough(t *testing.T) {
	backend := &fakeBackend{}
	d := NewDispatcher(backend, NewStore(nil), nil)

	settings := Settings{StationID: "cam09", Room: "main"}
	if err := d.Create(context.Background(), settings); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := d.Delete(context.Background(), "cam09"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(backend.created) != 1 || backend.created[0].StationID != "cam09" {
		t.Fatalf("unexpected create payloads: %+v", backend.created)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "cam09" {
		t.Fatalf("unexpected deletes: %+v", backend.deleted)
	}
}
