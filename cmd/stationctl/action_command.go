package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stationctl/internal/station"
)

func newActionCommand(ctx *commandContext) *cobra.Command {
	var stationID string
	var target string
	var room string
	var managers bool

	cmd := &cobra.Command{
		Use:   "action <start|stop|restart>",
		Short: "Send a process command to stations or devices",
		Long: "Send a command to a station's manager process, one of its devices,\n" +
			"all of its devices, or every station in a room:\n\n" +
			"  stationctl action restart --station av-1 --managers\n" +
			"  stationctl action stop --station av-1 --target dvswitch\n" +
			"  stationctl action start --station av-1 --target all\n" +
			"  stationctl action restart --room plenary\n" +
			"  stationctl action restart --room plenary --managers",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			switch {
			case room != "" && stationID != "":
				return fmt.Errorf("--room and --station are mutually exclusive")
			case room == "" && stationID == "":
				return fmt.Errorf("one of --station or --room is required")
			}

			if room != "" {
				store, err := ctx.loadStore(cmd)
				if err != nil {
					return err
				}
				dispatcher, err := ctx.dispatcher(store)
				if err != nil {
					return err
				}
				if managers {
					err = dispatcher.RoomManagers(cmd.Context(), room, action)
				} else {
					err = dispatcher.RoomStations(cmd.Context(), room, action)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s sent to room %s\n", action, room)
				return nil
			}

			dispatcher, err := ctx.dispatcher(station.NewStore(ctx.ensureLogger()))
			if err != nil {
				return err
			}
			switch {
			case managers:
				err = dispatcher.StationManager(cmd.Context(), stationID, action)
			case target != "":
				err = dispatcher.DeviceAction(cmd.Context(), stationID, target, action)
			default:
				err = dispatcher.DeviceAction(cmd.Context(), stationID, station.TargetAllDevices, action)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s sent to %s\n", action, stationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&stationID, "station", "", "Target station id")
	cmd.Flags().StringVar(&target, "target", "", "Target device id, or \"all\" for every device")
	cmd.Flags().StringVar(&room, "room", "", "Target every station assigned to this room")
	cmd.Flags().BoolVar(&managers, "managers", false, "Address the station manager process instead of devices")
	return cmd
}
