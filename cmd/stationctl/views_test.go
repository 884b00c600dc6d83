package main

import (
	"strings"
	"testing"

	"stationctl/internal/schedule"
	"stationctl/internal/station"
	"stationctl/internal/status"
)

func TestBuildStationRows(t *testing.T) {
	stations := []station.Station{
		{
			StationID: "av-1",
			Settings: station.Settings{
				Room: "plenary",
				Devices: station.DeviceSelection{
					Devices: []station.Device{{ID: "dv1"}, {ID: "alsa0"}},
				},
			},
			AvailableDevices: []station.Device{{ID: "dv2"}},
			StatusEntries:    []station.ProcessStatus{{Name: "record"}},
		},
		{StationID: "av-2"},
	}

	rows := buildStationRows(stations)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []string{"av-1", "plenary", "dv1, dv2", "1", "1"}
	if rows[0][0] != "av-1" || rows[0][1] != "plenary" {
		t.Fatalf("row mismatch: got %v, want prefix of %v", rows[0], want)
	}
	if rows[0][2] != "dv1, alsa0" {
		t.Fatalf("devices column = %q, want %q", rows[0][2], "dv1, alsa0")
	}
	if rows[1][1] != "-" || rows[1][2] != "-" {
		t.Fatalf("empty station row = %v", rows[1])
	}
}

func TestDescribeConfiguredDevicesSentinel(t *testing.T) {
	got := describeConfiguredDevices(station.DeviceSelection{All: true})
	if got != "all" {
		t.Fatalf("sentinel rendered as %q, want %q", got, "all")
	}
}

func TestHealthGlyph(t *testing.T) {
	if got := healthGlyph(status.IconOK, status.ColourGreen, false); got != glyphOK {
		t.Fatalf("plain healthy glyph = %q", got)
	}
	got := healthGlyph(status.IconRemove, status.ColourRed, true)
	if !strings.HasPrefix(got, ansiRed) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected red wrapped glyph, got %q", got)
	}
}

func TestBuildStatusRows(t *testing.T) {
	report := status.Annotate(status.Snapshot{
		"av-1": {Status: map[string]station.RawProcess{
			"record/dvswitch": {Status: "started", Type: "internal", Running: "1"},
			"ingest":          {Status: "stopped"},
		}},
	})
	rows := buildStatusRows(report)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Annotation orders processes by id, so ingest sorts first.
	if rows[0][4] != "down" || rows[1][4] != "ok" {
		t.Fatalf("health columns = %q, %q", rows[0][4], rows[1][4])
	}
}

func TestBuildTalkRowsNumericOrder(t *testing.T) {
	rows := buildTalkRows(map[string]schedule.Talk{
		"10": {ScheduleID: 10, Title: "Closing"},
		"2":  {ScheduleID: 2, Title: "Opening"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2" || rows[1][0] != "10" {
		t.Fatalf("talk order = %q, %q; want numeric", rows[0][0], rows[1][0])
	}
}

func TestDescribeFormats(t *testing.T) {
	got := describeFormats(map[string]string{"webm": "done", "mp4": "pending"})
	if got != "mp4=pending webm=done" {
		t.Fatalf("describeFormats = %q", got)
	}
	if describeFormats(nil) != "-" {
		t.Fatal("empty formats should render as -")
	}
}

func TestNamedFormatsSkipsBlanks(t *testing.T) {
	formats := namedFormats([]string{"mp4", " ", "webm"})
	if len(formats) != 2 || formats[0].Name != "mp4" || formats[1].Name != "webm" {
		t.Fatalf("unexpected formats: %+v", formats)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Station", "Room"},
		[][]string{{"av-1", "plenary"}, {"av-2"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	if !strings.Contains(out, "av-1") || !strings.Contains(out, "plenary") {
		t.Fatalf("table missing cells:\n%s", out)
	}
}
