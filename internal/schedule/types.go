package schedule

import (
	"bytes"
	"encoding/json"
)

// PlaylistFile is one candidate source file attached to a talk. Selected is
// per-session state and never round-trips to the backend.
type PlaylistFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Selected bool   `json:"-"`
}

// Talk is one schedule entry with its candidate recordings.
type Talk struct {
	ScheduleID int            `json:"schedule_id"`
	Title      string         `json:"title"`
	Presenters string         `json:"presenters"`
	Playlist   []PlaylistFile `json:"playlist"`
}

// JobFile is the reduced file reference submitted with an encode job:
// filename and filepath only.
type JobFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
}

// Job is a composed encode request.
type Job struct {
	ScheduleID int       `json:"schedule_id"`
	Title      string    `json:"title"`
	Presenters string    `json:"presenters"`
	FileList   []JobFile `json:"file_list"`
	InTime     string    `json:"in_time"`
	OutTime    string    `json:"out_time"`
	Credits    string    `json:"credits"`
}

// Format is one output rendition advertised by the encoder. The encoder owns
// the shape; formats are decoded for display and round-tripped verbatim on
// resubmit, so the raw bytes are preserved.
type Format struct {
	Name string
	raw  json.RawMessage
}

// UnmarshalJSON keeps the raw message and lifts a name for display, falling
// back to a bare string format.
func (f *Format) UnmarshalJSON(data []byte) error {
	f.raw = append(f.raw[:0], data...)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &f.Name)
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &named); err != nil {
		return err
	}
	f.Name = named.Name
	return nil
}

// MarshalJSON writes the format exactly as the encoder sent it.
func (f Format) MarshalJSON() ([]byte, error) {
	if len(f.raw) > 0 {
		return f.raw, nil
	}
	return json.Marshal(f.Name)
}

// InProgress groups the encoder's currently running and reserved jobs.
type InProgress struct {
	Active   []Job `json:"active"`
	Reserved []Job `json:"reserved"`
}

// OutputEntry reports the output state of one submitted job.
type OutputEntry struct {
	ScheduleID int               `json:"schedule_id"`
	Title      string            `json:"title,omitempty"`
	Status     string            `json:"status,omitempty"`
	Formats    map[string]string `json:"formats,omitempty"`
}

// Alert is a backend-reported problem surfaced to the operator.
type Alert struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}
