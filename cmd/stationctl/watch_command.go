package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"stationctl/internal/push"
	"stationctl/internal/snapshot"
	"stationctl/internal/station"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var noPersist bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the live station feed and mirror it locally",
		Long: "Seed the station view from the manager, then follow the push feed\n" +
			"and print each change. Unless --no-persist is given, the view is\n" +
			"mirrored into the local snapshot database so `stations list --cached`\n" +
			"works while the manager is unreachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			if cfg.Manager.PushURL == "" {
				return fmt.Errorf("manager.push_url is not configured")
			}

			// One watcher per state directory; two would race on the
			// snapshot database.
			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "watch.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire watch lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another watch is already running (lock %s)", lock.Path())
			}
			defer func() { _ = lock.Unlock() }()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(runCtx, cmd, ctx, cfg.Manager.PushURL, !noPersist)
		},
	}
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Do not mirror the view into the snapshot database")
	return cmd
}

func runWatch(runCtx context.Context, cmd *cobra.Command, ctx *commandContext, pushURL string, persist bool) error {
	out := cmd.OutOrStdout()
	logger := ctx.ensureLogger()

	client, err := ctx.managerClient()
	if err != nil {
		return err
	}
	payloads, err := client.ListStations(runCtx)
	if err != nil {
		return err
	}
	store := station.NewStore(logger)
	store.Seed(payloads)

	var db *snapshot.Store
	if persist {
		cfg, err := ctx.ensureConfig()
		if err != nil {
			return err
		}
		db, err = snapshot.Open(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.ReplaceAll(runCtx, payloads); err != nil {
			return err
		}
	}

	sub, err := push.Subscribe(runCtx, pushURL, logger)
	if err != nil {
		return err
	}
	defer sub.Close()

	fmt.Fprintf(out, "Watching %d stations\n", len(store.Stations()))

	for event := range sub.Events() {
		if err := store.Apply(event); err != nil {
			fmt.Fprintf(out, "! dropped %s event: %v\n", event.Type, err)
			continue
		}
		describeEvent(out, event)
		if db != nil {
			if err := persistEvent(runCtx, db, store, event); err != nil {
				fmt.Fprintf(out, "! snapshot write failed: %v\n", err)
			}
		}
	}

	if err := sub.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("push feed: %w", err)
	}
	return nil
}

func describeEvent(out io.Writer, event station.Event) {
	switch event.Type {
	case station.EventInsert, station.EventUpdate, station.EventRemove:
		fmt.Fprintf(out, "%s %s\n", event.Type, eventSubject(event))
	case station.EventNotify:
		// Broadcasts carry no station payload; nothing to display.
	default:
	}
}

func eventSubject(event station.Event) string {
	id, err := event.StationID()
	if err != nil || id == "" {
		return "(unknown station)"
	}
	return id
}

func persistEvent(ctx context.Context, db *snapshot.Store, store *station.Store, event station.Event) error {
	switch event.Type {
	case station.EventInsert, station.EventUpdate:
		id, err := event.StationID()
		if err != nil || id == "" {
			return nil
		}
		st, ok := store.Get(id)
		if !ok {
			return nil
		}
		return db.Upsert(ctx, station.Payload{
			StationID: st.StationID,
			Settings:  st.Settings,
			Devices:   station.DeviceInventory(st.Devices),
			Status:    st.Status,
		})
	case station.EventRemove:
		id, err := event.StationID()
		if err != nil || id == "" {
			return nil
		}
		return db.Delete(ctx, id)
	}
	return nil
}
