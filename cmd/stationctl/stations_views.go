package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"stationctl/internal/station"
)

func buildStationRows(stations []station.Station) [][]string {
	rows := make([][]string, 0, len(stations))
	for _, st := range stations {
		rows = append(rows, []string{
			st.StationID,
			roomOrDash(st.Room()),
			describeConfiguredDevices(st.Settings.Devices),
			strconv.Itoa(len(st.AvailableDevices)),
			strconv.Itoa(len(st.StatusEntries)),
		})
	}
	return rows
}

func roomOrDash(room string) string {
	if room == "" {
		return "-"
	}
	return room
}

func describeConfiguredDevices(selection station.DeviceSelection) string {
	if selection.All {
		return "all"
	}
	if len(selection.Devices) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(selection.Devices))
	for _, device := range selection.Devices {
		ids = append(ids, device.ID)
	}
	return strings.Join(ids, ", ")
}

func writeStationDetail(out io.Writer, st station.Station, colorize bool) {
	for _, line := range renderSectionHeader("Station "+st.StationID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Room:    %s\n", roomOrDash(st.Room()))
	fmt.Fprintf(out, "Devices: %s\n", describeConfiguredDevices(st.Settings.Devices))
	if len(st.Settings.Roles) > 0 {
		fmt.Fprintf(out, "Roles:   %s\n", strings.Join(st.Settings.Roles, ", "))
	}

	if len(st.AvailableDevices) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Available devices:")
		for _, device := range st.AvailableDevices {
			label := device.ID
			if device.Name != "" {
				label += " (" + device.Name + ")"
			}
			fmt.Fprintf(out, "  %s\n", label)
		}
	}

	if len(st.StatusEntries) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Processes:")
		for _, entry := range st.StatusEntries {
			fmt.Fprintf(out, "  %-24s %-10s running=%s\n", entry.Name, entry.Status, entry.Running)
		}
	}
}
