package main

import (
	"fmt"
	"io"

	"stationctl/internal/status"
)

func writeStatusReport(out io.Writer, report status.Report, colorize bool) {
	if len(report.Stations) == 0 {
		fmt.Fprintln(out, "No status reported")
		return
	}
	for _, st := range report.Stations {
		marker := healthGlyph(st.Icon, st.Colour, colorize)
		fmt.Fprintf(out, "%s %s\n", marker, st.Name)
		for _, proc := range st.Processes {
			marker := healthGlyph(proc.Icon, proc.Colour, colorize)
			fmt.Fprintf(out, "  %s %-24s %s\n", marker, proc.Label, proc.Tooltip)
		}
	}
}

func buildStatusRows(report status.Report) [][]string {
	var rows [][]string
	for _, st := range report.Stations {
		for _, proc := range st.Processes {
			rows = append(rows, []string{
				st.Name,
				proc.Label,
				proc.Status,
				proc.Type,
				describeHealth(proc.Healthy),
			})
		}
	}
	return rows
}

func describeHealth(healthy bool) string {
	if healthy {
		return "ok"
	}
	return "down"
}
