package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stationctl/internal/snapshot"
	"stationctl/internal/station"
)

func newStationsCommand(ctx *commandContext) *cobra.Command {
	stationsCmd := &cobra.Command{
		Use:   "stations",
		Short: "Inspect and configure registered stations",
	}

	stationsCmd.AddCommand(newStationsListCommand(ctx))
	stationsCmd.AddCommand(newStationsShowCommand(ctx))
	stationsCmd.AddCommand(newStationsAddCommand(ctx))
	stationsCmd.AddCommand(newStationsRemoveCommand(ctx))
	stationsCmd.AddCommand(newStationsSetCommand(ctx))
	stationsCmd.AddCommand(newStationsAssignCommand(ctx))
	stationsCmd.AddCommand(newStationsDevicesCommand(ctx))
	stationsCmd.AddCommand(newStationsRoomsCommand(ctx))

	return stationsCmd
}

// loadStore fetches the station collection and maps it into a view store.
func (c *commandContext) loadStore(cmd *cobra.Command) (*station.Store, error) {
	client, err := c.managerClient()
	if err != nil {
		return nil, err
	}
	payloads, err := client.ListStations(cmd.Context())
	if err != nil {
		return nil, err
	}
	store := station.NewStore(c.ensureLogger())
	store.Seed(payloads)
	return store, nil
}

// loadCachedStore reads the last persisted station collection instead of
// asking the manager.
func (c *commandContext) loadCachedStore(cmd *cobra.Command) (*station.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	db, err := snapshot.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	payloads, err := db.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	store := station.NewStore(c.ensureLogger())
	store.Seed(payloads)
	return store, nil
}

func (c *commandContext) dispatcher(store *station.Store) (*station.Dispatcher, error) {
	client, err := c.managerClient()
	if err != nil {
		return nil, err
	}
	return station.NewDispatcher(client, store, c.ensureLogger()), nil
}

func newStationsListCommand(ctx *commandContext) *cobra.Command {
	var cached bool
	var room string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stations with room, devices, and health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var store *station.Store
			var err error
			if cached {
				store, err = ctx.loadCachedStore(cmd)
			} else {
				store, err = ctx.loadStore(cmd)
			}
			if err != nil {
				return err
			}

			stations := store.Stations()
			if room != "" {
				stations = store.InRoom(room)
			}
			if len(stations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stations registered")
				return nil
			}
			out := renderTable(
				[]string{"Station", "Room", "Devices", "Available", "Processes"},
				buildStationRows(stations),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&cached, "cached", false, "Read the last persisted snapshot instead of the manager")
	cmd.Flags().StringVar(&room, "room", "", "Only list stations assigned to this room")
	return cmd
}

func newStationsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <station-id>",
		Short: "Show one station's settings, devices, and process status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadStore(cmd)
			if err != nil {
				return err
			}
			st, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("station %q not registered", args[0])
			}
			writeStationDetail(cmd.OutOrStdout(), st, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
}

func newStationsAddCommand(ctx *commandContext) *cobra.Command {
	var room string
	var roles []string

	cmd := &cobra.Command{
		Use:   "add <station-id>",
		Short: "Register a new station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := ctx.dispatcher(station.NewStore(ctx.ensureLogger()))
			if err != nil {
				return err
			}
			settings := station.Settings{
				StationID: args[0],
				Room:      room,
				Roles:     roles,
			}
			if err := dispatcher.Create(cmd.Context(), settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Station %s registered\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "Initial room assignment")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Initial station roles (repeatable)")
	return cmd
}

func newStationsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <station-id>",
		Short: "Remove a station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := ctx.dispatcher(station.NewStore(ctx.ensureLogger()))
			if err != nil {
				return err
			}
			if err := dispatcher.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Station %s removal requested\n", args[0])
			return nil
		},
	}
}

func newStationsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <station-id> <key> <value>",
		Short: "Update a single settings field on a station",
		Long: "Update one field path on a station, for example:\n\n" +
			"  stationctl stations set av-1 settings.room plenary",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := ctx.dispatcher(station.NewStore(ctx.ensureLogger()))
			if err != nil {
				return err
			}
			key := strings.TrimSpace(args[1])
			if key == "" {
				return fmt.Errorf("field key required")
			}
			if err := dispatcher.UpdateField(cmd.Context(), args[0], key, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Update sent for %s %s\n", args[0], key)
			return nil
		},
	}
}

func newStationsAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <station-id> <room>",
		Short: "Assign a station to a room (empty room clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := ctx.dispatcher(station.NewStore(ctx.ensureLogger()))
			if err != nil {
				return err
			}
			if err := dispatcher.AssignRoom(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Room assignment sent for %s\n", args[0])
			return nil
		},
	}
}

func newStationsDevicesCommand(ctx *commandContext) *cobra.Command {
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "Configure a station's device list",
	}
	devicesCmd.AddCommand(newStationsDevicesAddCommand(ctx))
	devicesCmd.AddCommand(newStationsDevicesRemoveCommand(ctx))
	return devicesCmd
}

func newStationsDevicesAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <station-id> <device-id>",
		Short: "Add one of the station's available devices to its configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadStore(cmd)
			if err != nil {
				return err
			}
			st, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("station %q not registered", args[0])
			}
			device, ok := findDevice(st.AvailableDevices, args[1])
			if !ok {
				return fmt.Errorf("device %q not available on station %s", args[1], args[0])
			}
			dispatcher, err := ctx.dispatcher(store)
			if err != nil {
				return err
			}
			if err := dispatcher.AddDevice(cmd.Context(), st, device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device %s added to %s\n", device.ID, st.StationID)
			return nil
		},
	}
}

func newStationsDevicesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <station-id> <device-id>",
		Short: "Remove a device from the station's configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadStore(cmd)
			if err != nil {
				return err
			}
			st, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("station %q not registered", args[0])
			}
			dispatcher, err := ctx.dispatcher(store)
			if err != nil {
				return err
			}
			if err := dispatcher.RemoveDevice(cmd.Context(), st, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device %s removal sent for %s\n", args[1], st.StationID)
			return nil
		},
	}
}

func newStationsRoomsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List the rooms that have stations assigned",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadStore(cmd)
			if err != nil {
				return err
			}
			rooms := store.Rooms()
			if len(rooms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rooms assigned")
				return nil
			}
			for _, room := range rooms {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d stations)\n", room, len(store.InRoom(room)))
			}
			return nil
		},
	}
}

func findDevice(devices []station.Device, id string) (station.Device, bool) {
	for _, device := range devices {
		if device.ID == id {
			return device, true
		}
	}
	return station.Device{}, false
}
