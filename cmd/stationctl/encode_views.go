package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"stationctl/internal/schedule"
)

func buildTalkRows(talks map[string]schedule.Talk) [][]string {
	ids := make([]string, 0, len(talks))
	for id := range talks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		talk := talks[id]
		rows = append(rows, []string{
			id,
			talk.Title,
			talk.Presenters,
			strconv.Itoa(len(talk.Playlist)),
		})
	}
	return rows
}

func buildJobRows(jobs []schedule.Job) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			formatScheduleID(job.ScheduleID),
			job.Title,
			strconv.Itoa(len(job.FileList)),
			job.InTime,
			job.OutTime,
		})
	}
	return rows
}

func buildOutputRows(entries []schedule.OutputEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			formatScheduleID(entry.ScheduleID),
			entry.Title,
			entry.Status,
			describeFormats(entry.Formats),
		})
	}
	return rows
}

func describeFormats(formats map[string]string) string {
	if len(formats) == 0 {
		return "-"
	}
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+formats[name])
	}
	return strings.Join(parts, " ")
}

func writeInProgress(out io.Writer, inProgress schedule.InProgress, colorize bool) {
	writeJobSection(out, "Active", inProgress.Active, colorize)
	fmt.Fprintln(out)
	writeJobSection(out, "Reserved", inProgress.Reserved, colorize)
}

func writeJobSection(out io.Writer, title string, jobs []schedule.Job, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "(none)")
		return
	}
	for _, job := range jobs {
		fmt.Fprintf(out, "%s  %s (%d files)\n", formatScheduleID(job.ScheduleID), job.Title, len(job.FileList))
	}
}
