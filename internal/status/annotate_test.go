package status

import (
	"testing"

	"stationctl/internal/station"
)

func TestAnnotateHealthColours(t *testing.T) {
	snapshot := Snapshot{
		"cam01": {Status: map[string]station.RawProcess{
			"dvswitch": {Status: "started", Type: "internal"},
			"record":   {Status: "started", Type: "internal"},
		}},
		"cam02": {Status: map[string]station.RawProcess{
			"dvswitch": {Status: "started", Type: "internal"},
			"ingest":   {Status: "failed", Type: "internal"},
		}},
	}

	report := Annotate(snapshot)
	if len(report.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(report.Stations))
	}

	healthy := report.Stations[0]
	if healthy.Name != "cam01" || !healthy.Healthy || healthy.Icon != IconOK || healthy.Colour != ColourGreen {
		t.Fatalf("expected cam01 healthy green, got %+v", healthy)
	}

	unhealthy := report.Stations[1]
	if unhealthy.Healthy || unhealthy.Icon != IconRemove || unhealthy.Colour != ColourRed {
		t.Fatalf("expected cam02 unhealthy red, got %+v", unhealthy)
	}
	if !unhealthy.Processes[0].Healthy {
		t.Fatal("expected dvswitch healthy inside unhealthy station")
	}
}

func TestAnnotateProcessIconPairs(t *testing.T) {
	snapshot := Snapshot{
		"cam01": {Status: map[string]station.RawProcess{
			"good": {Status: "started"},
			"bad":  {Status: "stopped"},
		}},
	}

	procs := Annotate(snapshot).Stations[0].Processes
	byID := map[string]ProcessView{}
	for _, proc := range procs {
		byID[proc.ID] = proc
	}

	if view := byID["good"]; view.Icon != IconOK || view.Colour != ColourGreen {
		t.Fatalf("started must map to ok/green, got %+v", view)
	}
	if view := byID["bad"]; view.Icon != IconRemove || view.Colour != ColourRed {
		t.Fatalf("non-started must map to remove/red, got %+v", view)
	}
}

func TestShortIDExtraction(t *testing.T) {
	if got := ShortID("/dev/video/capture0", station.ProcessTypeFile); got != "capture0" {
		t.Fatalf("expected trailing segment, got %q", got)
	}
	if got := ShortID("/dev/video/capture0", station.ProcessTypeInternal); got != "/dev/video/capture0" {
		t.Fatalf("expected raw id for non-file type, got %q", got)
	}
	if got := ShortID("plain", station.ProcessTypeFile); got != "plain" {
		t.Fatalf("expected id without separator unchanged, got %q", got)
	}
}

func TestAnnotateLabelsAndTooltips(t *testing.T) {
	snapshot := Snapshot{
		"cam01": {Status: map[string]station.RawProcess{
			"dvswitch":         {Status: "started", Type: "internal"},
			"/recordings/a.dv": {Status: "started", Type: "file"},
		}},
	}

	procs := Annotate(snapshot).Stations[0].Processes
	byID := map[string]ProcessView{}
	for _, proc := range procs {
		byID[proc.ID] = proc
	}

	internal := byID["dvswitch"]
	if internal.Label != "dvswitch" {
		t.Fatalf("internal label must be the id, got %q", internal.Label)
	}
	file := byID["/recordings/a.dv"]
	if file.Label != "file" {
		t.Fatalf("file label must be the type, got %q", file.Label)
	}
	if file.ShortID != "a.dv" {
		t.Fatalf("unexpected short id: %q", file.ShortID)
	}
	if want := "state: started, id: a.dv"; file.Tooltip != want {
		t.Fatalf("unexpected tooltip: %q", file.Tooltip)
	}
}

func TestAnnotateEmptySnapshot(t *testing.T) {
	report := Annotate(Snapshot{})
	if len(report.Stations) != 0 {
		t.Fatalf("expected empty report, got %+v", report.Stations)
	}
}
