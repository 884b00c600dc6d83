package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var managerFlag string
	var encoderFlag string

	ctx := newCommandContext(&configFlag, &managerFlag, &encoderFlag)

	rootCmd := &cobra.Command{
		Use:           "stationctl",
		Short:         "Station manager dashboard CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&managerFlag, "manager", "", "Station manager base URL override")
	rootCmd.PersistentFlags().StringVar(&encoderFlag, "encoder", "", "Encoder base URL override")

	rootCmd.AddCommand(newStationsCommand(ctx))
	rootCmd.AddCommand(newActionCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newEncodeCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
