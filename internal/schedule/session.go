package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"stationctl/internal/logging"
)

// Backend is the encoder API surface the session consumes.
type Backend interface {
	EncodingRooms(ctx context.Context) ([]string, error)
	EncodingSchedule(ctx context.Context, room string) (map[string]Talk, error)
	EncodingFormats(ctx context.Context) ([]Format, error)
	EncodingJobs(ctx context.Context) ([]Job, error)
	EncodingInProgress(ctx context.Context) (InProgress, error)
	EncodingOutputStatus(ctx context.Context) ([]OutputEntry, error)
	SubmitEncode(ctx context.Context, job Job) (string, error)
	ResubmitEncode(ctx context.Context, id string, formats []Format) ([]Alert, error)
}

// Session holds the encoding workflow state for one operator: the selected
// room, cached talks, loaded formats, and the latest queue views. Each
// resource loads through its own idempotent read; endpoint errors populate
// the alert list and leave prior state unchanged.
//
// A Session is used from a single goroutine.
type Session struct {
	backend Backend
	policy  TimePolicy
	logger  *slog.Logger

	room         string
	rooms        []string
	talks        map[string]Talk
	formats      []Format
	queue        []Job
	inProgress   InProgress
	outputStatus []OutputEntry
	alerts       []Alert
}

// NewSession constructs a session over the encoder backend.
func NewSession(backend Backend, policy TimePolicy, logger *slog.Logger) *Session {
	return &Session{
		backend: backend,
		policy:  policy,
		logger:  logging.WithComponent(logger, "encoding"),
		talks:   map[string]Talk{},
	}
}

// Rooms returns the last loaded room list.
func (s *Session) Rooms() []string { return s.rooms }

// Room returns the currently selected room.
func (s *Session) Room() string { return s.room }

// Talks returns the cached talks for the selected room, keyed by schedule id.
func (s *Session) Talks() map[string]Talk { return s.talks }

// Formats returns the last loaded default output formats.
func (s *Session) Formats() []Format { return s.formats }

// Queue returns the last loaded job queue.
func (s *Session) Queue() []Job { return s.queue }

// InProgress returns the last loaded active and reserved jobs.
func (s *Session) InProgress() InProgress { return s.inProgress }

// OutputStatus returns the last loaded output status entries.
func (s *Session) OutputStatus() []OutputEntry { return s.outputStatus }

// Alerts returns the current alert list.
func (s *Session) Alerts() []Alert { return s.alerts }

// LoadRooms fetches the room list.
func (s *Session) LoadRooms(ctx context.Context) error {
	rooms, err := s.backend.EncodingRooms(ctx)
	if err != nil {
		return s.alert("load rooms", err)
	}
	s.rooms = rooms
	return nil
}

// SetRoom selects a room and reloads its talks, mirroring the dashboard's
// reload-on-room-change behavior.
func (s *Session) SetRoom(ctx context.Context, room string) error {
	s.room = room
	return s.LoadTalks(ctx)
}

// LoadTalks fetches the talks for the selected room.
func (s *Session) LoadTalks(ctx context.Context) error {
	talks, err := s.backend.EncodingSchedule(ctx, s.room)
	if err != nil {
		return s.alert("load talks", err)
	}
	s.talks = talks
	return nil
}

// LoadFormats fetches the default output formats.
func (s *Session) LoadFormats(ctx context.Context) error {
	formats, err := s.backend.EncodingFormats(ctx)
	if err != nil {
		return s.alert("load formats", err)
	}
	s.formats = formats
	return nil
}

// LoadQueue fetches the queued jobs.
func (s *Session) LoadQueue(ctx context.Context) error {
	queue, err := s.backend.EncodingJobs(ctx)
	if err != nil {
		return s.alert("load queue", err)
	}
	s.queue = queue
	return nil
}

// LoadInProgress fetches the active and reserved jobs.
func (s *Session) LoadInProgress(ctx context.Context) error {
	inProgress, err := s.backend.EncodingInProgress(ctx)
	if err != nil {
		return s.alert("load in-progress", err)
	}
	s.inProgress = inProgress
	return nil
}

// LoadOutputStatus refreshes the default formats and then the output status,
// in that order, as the dashboard did.
func (s *Session) LoadOutputStatus(ctx context.Context) error {
	if err := s.LoadFormats(ctx); err != nil {
		return err
	}
	entries, err := s.backend.EncodingOutputStatus(ctx)
	if err != nil {
		return s.alert("load output status", err)
	}
	s.outputStatus = entries
	return nil
}

// SelectTalk produces a fresh draft from the cached talk with the given
// schedule id.
func (s *Session) SelectTalk(id string) (*Draft, error) {
	talk, ok := s.talks[id]
	if !ok {
		return nil, fmt.Errorf("no talk %q in room %q", id, s.room)
	}
	return NewDraft(talk), nil
}

// Submit composes the encode request from the draft and posts it. The
// backend's result string is returned for display.
func (s *Session) Submit(ctx context.Context, draft *Draft) (string, error) {
	job := draft.BuildJob(s.policy)
	result, err := s.backend.SubmitEncode(ctx, job)
	if err != nil {
		return "", s.alert("submit encode", err)
	}
	s.logger.Info("encode job submitted",
		slog.Int("schedule_id", job.ScheduleID),
		slog.Int("files", len(job.FileList)))
	return result, nil
}

// Resubmit reposts an existing job with the given formats, falling back to
// the currently loaded defaults when formats is nil, then refreshes the
// queue, in-progress, and output views.
func (s *Session) Resubmit(ctx context.Context, id string, formats []Format) error {
	if formats == nil {
		formats = s.formats
	}

	alerts, err := s.backend.ResubmitEncode(ctx, id, formats)
	if err != nil {
		return s.alert("resubmit encode", err)
	}
	if len(alerts) > 0 {
		s.alerts = alerts
	}

	// Best-effort refresh; failures are already recorded as alerts.
	_ = s.LoadQueue(ctx)
	_ = s.LoadInProgress(ctx)
	_ = s.LoadOutputStatus(ctx)
	return nil
}

func (s *Session) alert(operation string, err error) error {
	s.alerts = []Alert{{Type: "error", Msg: err.Error()}}
	s.logger.Error(operation+" failed", slog.String("error", err.Error()))
	return fmt.Errorf("%s: %w", operation, err)
}
