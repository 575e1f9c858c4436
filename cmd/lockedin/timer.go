package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
	timerdto "lockedin/internal/modules/timer/dto"
)

// watchResync re-reads the persisted timer so a watcher follows changes
// made from another terminal.
const watchResync = 5 * time.Second

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Focus timer commands"}

	simple := func(use, short string, run func(*cobra.Command, *bootstrap.App) (timerdto.Snapshot, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := loadApp(cmd, *dataDir)
				if err != nil {
					return err
				}
				defer app.Close()
				snap, err := run(cmd, app)
				if err != nil {
					return err
				}
				printSnapshot(cmd.OutOrStdout(), snap)
				return nil
			},
		}
	}

	timer.AddCommand(simple("start", "Start or resume the focus timer", func(cmd *cobra.Command, app *bootstrap.App) (timerdto.Snapshot, error) {
		return app.TimerCLI.Start(cmd.Context())
	}))
	timer.AddCommand(simple("pause", "Pause the running timer", func(cmd *cobra.Command, app *bootstrap.App) (timerdto.Snapshot, error) {
		return app.TimerCLI.Pause(cmd.Context())
	}))
	timer.AddCommand(simple("status", "Show the current timer state", func(cmd *cobra.Command, app *bootstrap.App) (timerdto.Snapshot, error) {
		return app.TimerCLI.Status(cmd.Context())
	}))

	var resetMinutes int
	reset := simple("reset", "Stop the timer and restore the full duration", func(cmd *cobra.Command, app *bootstrap.App) (timerdto.Snapshot, error) {
		return app.TimerCLI.Reset(cmd.Context(), resetMinutes)
	})
	reset.Flags().IntVar(&resetMinutes, "minutes", 0, "new duration in minutes (0 keeps the current preset)")
	timer.AddCommand(reset)

	timer.AddCommand(&cobra.Command{
		Use:   "preset <minutes>",
		Short: "Switch to a preset duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %q", args[0])
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			snap, err := app.TimerCLI.Preset(cmd.Context(), minutes)
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "presets",
		Short: "List the configured presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			labels := make([]string, 0, len(app.TimerCLI.Presets()))
			for _, p := range app.TimerCLI.Presets() {
				labels = append(labels, fmt.Sprintf("%dm", p))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(labels, "  "))
			return nil
		},
	})

	var mini bool
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Follow the countdown until it completes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if mini {
				return bootstrap.RunMini(cmd.Context(), app)
			}
			return watchTimer(cmd, app)
		},
	}
	watch.Flags().BoolVar(&mini, "mini", false, "open the compact always-visible window")
	timer.AddCommand(watch)

	return timer
}

func watchTimer(cmd *cobra.Command, app *bootstrap.App) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	updates := app.TimerCLI.Watch(ctx)
	snap, err := app.TimerCLI.Status(ctx)
	if err != nil {
		return err
	}
	printLive(out, snap)

	resync := time.NewTicker(watchResync)
	defer resync.Stop()
	for {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return nil
		case <-resync.C:
			if _, err := app.TimerCLI.Status(ctx); err != nil {
				app.Log.Sugar().Warnw("timer resync failed", "error", err)
			}
		case snap, ok := <-updates:
			if !ok {
				_, _ = fmt.Fprintln(out)
				return nil
			}
			printLive(out, snap)
			if snap.Completed {
				_, _ = fmt.Fprintf(out, "\nsession complete, %d today\n", snap.SessionCount)
				return nil
			}
		}
	}
}

func printLive(out io.Writer, snap timerdto.Snapshot) {
	_, _ = fmt.Fprintf(out, "\r%s  %-7s %s  ", snap.Clock, snap.Status, snap.Label)
}

func printSnapshot(out io.Writer, snap timerdto.Snapshot) {
	_, _ = fmt.Fprintf(out, "%s  %s  %s (%d min preset)\n", snap.Clock, snap.Status, snap.Label, snap.PresetMinutes)
	if snap.Running && !snap.Deadline.IsZero() {
		_, _ = fmt.Fprintf(out, "ends %s\n", humanize.Time(snap.Deadline))
	}
	if snap.Completed {
		_, _ = fmt.Fprintf(out, "session complete, %d today\n", snap.SessionCount)
	}
	if snap.Warning != "" {
		_, _ = fmt.Fprintf(out, "warning: %s\n", snap.Warning)
	}
}
