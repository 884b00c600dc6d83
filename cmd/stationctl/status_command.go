package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stationctl/internal/status"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show process health for every station",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.managerClient()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if !watch {
				snapshot, err := client.StatusSnapshot(cmd.Context())
				if err != nil {
					return err
				}
				report := status.Annotate(snapshot)
				rows := buildStatusRows(report)
				if len(rows) == 0 {
					fmt.Fprintln(out, "No status reported")
					return nil
				}
				table := renderTable(
					[]string{"Station", "Process", "Status", "Type", "Health"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			poller := status.NewPoller(client, cfg.StatusPollInterval(), ctx.ensureLogger(), func(report status.Report) {
				writeStatusReport(out, report, colorize)
			})
			if err := poller.Run(runCtx); err != nil && !errors.Is(err, runCtx.Err()) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep polling and re-render on each cycle")

	cmd.AddCommand(newStatusRestartCommand(ctx))
	return cmd
}

func newStatusRestartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restart <process-id>",
		Short: "Ask the manager to restart one process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.managerClient()
			if err != nil {
				return err
			}
			if err := client.RestartProcess(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restart requested for %s\n", args[0])
			return nil
		},
	}
}
