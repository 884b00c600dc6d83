package status

import (
	"fmt"
	"sort"
	"strings"

	"stationctl/internal/station"
)

// Display annotation literals shared with the original dashboards.
const (
	IconOK     = "ok"
	IconRemove = "remove"

	ColourGreen = "green"
	ColourRed   = "red"

	// healthyStatus is the one process status considered healthy; anything
	// else renders as unhealthy.
	healthyStatus = "started"
)

// Snapshot is the raw /status payload: station name to station detail.
type Snapshot map[string]StationDetail

// StationDetail carries the per-process status map for one station.
type StationDetail struct {
	Status map[string]station.RawProcess `json:"status"`
}

// ProcessView is the display annotation for one process. It is derived,
// non-authoritative, and recomputed on every poll.
type ProcessView struct {
	ID      string
	ShortID string
	Label   string
	Tooltip string
	Status  string
	Type    string
	Icon    string
	Colour  string
	Healthy bool
}

// StationView aggregates process views; a station is unhealthy when any of
// its processes is unhealthy.
type StationView struct {
	Name      string
	Icon      string
	Colour    string
	Healthy   bool
	Processes []ProcessView
}

// Report is one annotated snapshot, stations in name order.
type Report struct {
	Stations []StationView
}

// Annotate derives display health views from a raw snapshot.
func Annotate(snapshot Snapshot) Report {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{Stations: make([]StationView, 0, len(names))}
	for _, name := range names {
		report.Stations = append(report.Stations, annotateStation(name, snapshot[name]))
	}
	return report
}

func annotateStation(name string, detail StationDetail) StationView {
	ids := make([]string, 0, len(detail.Status))
	for id := range detail.Status {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	view := StationView{
		Name:      name,
		Icon:      IconOK,
		Colour:    ColourGreen,
		Healthy:   true,
		Processes: make([]ProcessView, 0, len(ids)),
	}
	for _, id := range ids {
		proc := annotateProcess(id, detail.Status[id])
		if !proc.Healthy {
			view.Healthy = false
			view.Icon = IconRemove
			view.Colour = ColourRed
		}
		view.Processes = append(view.Processes, proc)
	}
	return view
}

func annotateProcess(id string, raw station.RawProcess) ProcessView {
	view := ProcessView{
		ID:      id,
		ShortID: ShortID(id, raw.Type),
		Status:  raw.Status,
		Type:    raw.Type,
		Healthy: raw.Status == healthyStatus,
	}
	if view.Healthy {
		view.Icon = IconOK
		view.Colour = ColourGreen
	} else {
		view.Icon = IconRemove
		view.Colour = ColourRed
	}

	if raw.Type == station.ProcessTypeInternal || raw.Type == "" {
		view.Label = id
		view.Tooltip = fmt.Sprintf("internal process, state: %s", raw.Status)
	} else {
		view.Label = raw.Type
		view.Tooltip = fmt.Sprintf("state: %s, id: %s", raw.Status, view.ShortID)
	}
	return view
}

// ShortID returns the trailing path segment for file-backed processes and
// the raw identifier for everything else.
func ShortID(id, procType string) string {
	if procType != station.ProcessTypeFile {
		return id
	}
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
