package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stationctl/internal/schedule"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Drive the encoding queue: schedule, jobs, and submissions",
	}

	encodeCmd.AddCommand(newEncodeRoomsCommand(ctx))
	encodeCmd.AddCommand(newEncodeTalksCommand(ctx))
	encodeCmd.AddCommand(newEncodeFormatsCommand(ctx))
	encodeCmd.AddCommand(newEncodeQueueCommand(ctx))
	encodeCmd.AddCommand(newEncodeInProgressCommand(ctx))
	encodeCmd.AddCommand(newEncodeOutputStatusCommand(ctx))
	encodeCmd.AddCommand(newEncodeSubmitCommand(ctx))
	encodeCmd.AddCommand(newEncodeResubmitCommand(ctx))

	return encodeCmd
}

func (c *commandContext) encodingSession() (*schedule.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	policy, err := schedule.ParseTimePolicy(cfg.Encoding.TimePolicy)
	if err != nil {
		return nil, err
	}
	client, err := c.encoderClient()
	if err != nil {
		return nil, err
	}
	return schedule.NewSession(client, policy, c.ensureLogger()), nil
}

func newEncodeRoomsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List the rooms with scheduled talks",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.LoadRooms(cmd.Context()); err != nil {
				return err
			}
			rooms := session.Rooms()
			if len(rooms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rooms scheduled")
				return nil
			}
			for _, room := range rooms {
				fmt.Fprintln(cmd.OutOrStdout(), room)
			}
			return nil
		},
	}
}

func newEncodeTalksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "talks <room>",
		Short: "List the talks scheduled in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.SetRoom(cmd.Context(), args[0]); err != nil {
				return err
			}
			talks := session.Talks()
			if len(talks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No talks scheduled in %s\n", args[0])
				return nil
			}
			out := renderTable(
				[]string{"ID", "Title", "Presenters", "Files"},
				buildTalkRows(talks),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newEncodeFormatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the default output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.LoadFormats(cmd.Context()); err != nil {
				return err
			}
			formats := session.Formats()
			if len(formats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No formats advertised")
				return nil
			}
			for _, format := range formats {
				fmt.Fprintln(cmd.OutOrStdout(), format.Name)
			}
			return nil
		},
	}
}

func newEncodeQueueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List the queued encode jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.LoadQueue(cmd.Context()); err != nil {
				return err
			}
			jobs := session.Queue()
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
				return nil
			}
			out := renderTable(
				[]string{"ID", "Title", "Files", "In", "Out"},
				buildJobRows(jobs),
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newEncodeInProgressCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "in-progress",
		Short: "Show the active and reserved encode jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.LoadInProgress(cmd.Context()); err != nil {
				return err
			}
			writeInProgress(cmd.OutOrStdout(), session.InProgress(), shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
}

func newEncodeOutputStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "output-status",
		Short: "Show per-job output state against the default formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.LoadOutputStatus(cmd.Context()); err != nil {
				return err
			}
			entries := session.OutputStatus()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No output reported")
				return nil
			}
			out := renderTable(
				[]string{"ID", "Title", "Status", "Formats"},
				buildOutputRows(entries),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newEncodeSubmitCommand(ctx *commandContext) *cobra.Command {
	var room string
	var files []int
	var startTime string
	var endTime string
	var credits string

	cmd := &cobra.Command{
		Use:   "submit <talk-id>",
		Short: "Compose and submit an encode job for a talk",
		Long: "Compose an encode job from a talk's playlist and submit it:\n\n" +
			"  stationctl encode submit 41 --room plenary --files 1,3 --start 12 --credits \"Jane Doe\"\n\n" +
			"File indexes are 1-based positions in `encode talks` order; only the\n" +
			"selected files are submitted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if room == "" {
				return fmt.Errorf("--room is required")
			}
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			if err := session.SetRoom(cmd.Context(), room); err != nil {
				return err
			}
			draft, err := session.SelectTalk(args[0])
			if err != nil {
				return err
			}
			for _, index := range files {
				if err := draft.SelectFile(index-1, true); err != nil {
					return fmt.Errorf("--files: %w", err)
				}
			}
			draft.StartTime = startTime
			draft.EndTime = endTime
			draft.Credits = credits

			result, err := session.Submit(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if result == "" {
				result = "submitted"
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "Room the talk is scheduled in")
	cmd.Flags().IntSliceVar(&files, "files", nil, "1-based playlist indexes to include")
	cmd.Flags().StringVar(&startTime, "start", "", "Trim offset into the first file, in seconds")
	cmd.Flags().StringVar(&endTime, "end", "", "Trim offset into the last file, in seconds")
	cmd.Flags().StringVar(&credits, "credits", "", "Credits text to append")
	return cmd
}

func newEncodeResubmitCommand(ctx *commandContext) *cobra.Command {
	var formats []string

	cmd := &cobra.Command{
		Use:   "resubmit <job-id>",
		Short: "Requeue an existing job, optionally with explicit formats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.encodingSession()
			if err != nil {
				return err
			}
			var selected []schedule.Format
			if len(formats) > 0 {
				selected = namedFormats(formats)
			} else if err := session.LoadFormats(cmd.Context()); err != nil {
				return err
			}
			if err := session.Resubmit(cmd.Context(), args[0], selected); err != nil {
				return err
			}
			for _, alert := range session.Alerts() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", alert.Type, alert.Msg)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&formats, "formats", nil, "Format names to encode (defaults to the advertised set)")
	return cmd
}

func namedFormats(names []string) []schedule.Format {
	formats := make([]schedule.Format, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		formats = append(formats, schedule.Format{Name: name})
	}
	return formats
}

func formatScheduleID(id int) string {
	return strconv.Itoa(id)
}
