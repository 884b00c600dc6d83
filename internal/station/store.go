package station

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"stationctl/internal/logging"
)

// EventType enumerates the push feed mutation kinds.
type EventType string

// Push feed event types.
const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventRemove EventType = "remove"
	// EventNotify is accepted but deliberately has no effect on the store.
	EventNotify EventType = "notify"
)

// Event is one push feed message. Content is a station payload for insert
// and update, and a station id for remove.
type Event struct {
	Type    EventType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// StationID extracts the station identity the event refers to: the payload
// id for insert and update, the removed id for remove, and the empty string
// for notify.
func (e Event) StationID() (string, error) {
	switch e.Type {
	case EventInsert, EventUpdate:
		payload, err := decodePayload(e.Content)
		if err != nil {
			return "", err
		}
		return payload.ID(), nil
	case EventRemove:
		return decodeRemoveID(e.Content)
	default:
		return "", nil
	}
}

// Store is the ordered station collection the dashboard renders from. It is
// the single owner of client-side station state: all mutation goes through
// the Apply methods, and reads return copies.
type Store struct {
	mu       sync.RWMutex
	stations []Station
	logger   *slog.Logger
}

// NewStore constructs an empty store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{logger: logging.WithComponent(logger, "station")}
}

// Seed replaces the collection with stations mapped from a full fetch.
func (s *Store) Seed(payloads []Payload) {
	stations := make([]Station, 0, len(payloads))
	for _, payload := range payloads {
		stations = append(stations, FromPayload(payload, s.logger))
	}

	s.mu.Lock()
	s.stations = stations
	s.mu.Unlock()
}

// Apply routes a push feed event to the matching mutation. Unknown event
// types and notify events are no-ops; malformed content is reported as an
// error and leaves the collection unchanged.
func (s *Store) Apply(event Event) error {
	switch event.Type {
	case EventInsert:
		payload, err := decodePayload(event.Content)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		s.ApplyInsert(payload)
		return nil
	case EventUpdate:
		payload, err := decodePayload(event.Content)
		if err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		s.ApplyUpdate(payload)
		return nil
	case EventRemove:
		id, err := decodeRemoveID(event.Content)
		if err != nil {
			return fmt.Errorf("remove event: %w", err)
		}
		s.ApplyRemove(id)
		return nil
	case EventNotify:
		// Reserved upstream; nothing to do.
		return nil
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}

// ApplyInsert appends a new station mapped from the payload.
func (s *Store) ApplyInsert(payload Payload) {
	st := FromPayload(payload, s.logger)

	s.mu.Lock()
	s.stations = append(s.stations, st)
	s.mu.Unlock()

	s.logger.Debug("station inserted", slog.String(logging.FieldStationID, st.StationID))
}

// ApplyUpdate replaces the station with the payload's identity in place.
// A payload for an unknown station is a no-op.
func (s *Store) ApplyUpdate(payload Payload) {
	st := FromPayload(payload, s.logger)

	s.mu.Lock()
	replaced := false
	for i := range s.stations {
		if s.stations[i].StationID == st.StationID {
			s.stations[i] = st
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if replaced {
		s.logger.Debug("station updated", slog.String(logging.FieldStationID, st.StationID))
	}
}

// ApplyRemove deletes the station with the given identity. An unknown id is
// a no-op.
func (s *Store) ApplyRemove(id string) {
	s.mu.Lock()
	removed := false
	for i := range s.stations {
		if s.stations[i].StationID == id {
			s.stations = append(s.stations[:i], s.stations[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.logger.Debug("station removed", slog.String(logging.FieldStationID, id))
	}
}

// Stations returns a copy of the current collection in order.
func (s *Store) Stations() []Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Station(nil), s.stations...)
}

// Get returns the station with the given identity.
func (s *Store) Get(id string) (Station, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stations {
		if st.StationID == id {
			return st, true
		}
	}
	return Station{}, false
}

// InRoom returns every station currently assigned to the room, in order.
func (s *Store) InRoom(room string) []Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Station
	for _, st := range s.stations {
		if st.Room() == room {
			matched = append(matched, st)
		}
	}
	return matched
}

// Rooms returns the distinct non-empty room assignments across the current
// collection, deduplicated in first-seen order. It is recomputed on every
// call so it always reflects the latest collection.
func (s *Store) Rooms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.stations))
	rooms := make([]string, 0, len(s.stations))
	for _, st := range s.stations {
		room := st.Room()
		if room == "" {
			continue
		}
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}
		rooms = append(rooms, room)
	}
	return rooms
}

func decodePayload(content json.RawMessage) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(content, &payload); err != nil {
		return Payload{}, err
	}
	if payload.ID() == "" {
		return Payload{}, fmt.Errorf("station payload missing station_id")
	}
	return payload, nil
}

// decodeRemoveID accepts either a bare id string or an object carrying
// station_id, matching the two shapes the manager has emitted.
func decodeRemoveID(content json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	payload, err := decodePayload(trimmed)
	if err != nil {
		return "", err
	}
	return payload.ID(), nil
}
