package schedule

import (
	"fmt"
)

// TimePolicy selects how empty trim offsets are formatted at submission.
// The two dashboard revisions disagreed: the older skipped empty fields, the
// newer wrapped them unconditionally.
type TimePolicy int

const (
	// TimePolicySkipEmpty leaves an empty offset empty.
	TimePolicySkipEmpty TimePolicy = iota
	// TimePolicyAlways wraps every offset, yielding "00:.00" for empty input.
	TimePolicyAlways
)

// ParseTimePolicy maps the config literal to a policy.
func ParseTimePolicy(value string) (TimePolicy, error) {
	switch value {
	case "skip-empty", "":
		return TimePolicySkipEmpty, nil
	case "always":
		return TimePolicyAlways, nil
	default:
		return TimePolicySkipEmpty, fmt.Errorf("unknown time policy %q", value)
	}
}

// FormatOffset renders a user-entered mm:ss offset as the encoder's
// "00:<value>.00" time string, honouring the policy for empty input.
func (p TimePolicy) FormatOffset(value string) string {
	if value == "" && p == TimePolicySkipEmpty {
		return ""
	}
	return "00:" + value + ".00"
}

// Draft is an editable copy of a talk used to compose a single encode
// request. Edits never touch the cached talk the draft was created from.
type Draft struct {
	Talk
	Credits   string
	StartTime string
	EndTime   string
}

// NewDraft deep-copies the talk into a fresh editing session: every playlist
// file deselected and the user-entered fields reset, regardless of what a
// previous session selected.
func NewDraft(talk Talk) *Draft {
	draft := &Draft{Talk: talk}
	draft.Playlist = make([]PlaylistFile, len(talk.Playlist))
	copy(draft.Playlist, talk.Playlist)
	for i := range draft.Playlist {
		draft.Playlist[i].Selected = false
	}
	return draft
}

// SelectFile sets the selection flag on one playlist file.
func (d *Draft) SelectFile(index int, selected bool) error {
	if index < 0 || index >= len(d.Playlist) {
		return fmt.Errorf("playlist index %d out of range (%d files)", index, len(d.Playlist))
	}
	d.Playlist[index].Selected = selected
	return nil
}

// SelectedFiles reduces the selected playlist entries to submission file
// references.
func (d *Draft) SelectedFiles() []JobFile {
	files := make([]JobFile, 0, len(d.Playlist))
	for _, file := range d.Playlist {
		if !file.Selected {
			continue
		}
		files = append(files, JobFile{Filename: file.Filename, Filepath: file.Filepath})
	}
	return files
}

// BuildJob composes the encode request: selected files only, trim offsets
// formatted per policy, plus the talk identity fields and credits.
func (d *Draft) BuildJob(policy TimePolicy) Job {
	return Job{
		ScheduleID: d.ScheduleID,
		Title:      d.Title,
		Presenters: d.Presenters,
		FileList:   d.SelectedFiles(),
		InTime:     policy.FormatOffset(d.StartTime),
		OutTime:    policy.FormatOffset(d.EndTime),
		Credits:    d.Credits,
	}
}
