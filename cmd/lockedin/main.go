package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lockedin/internal/bootstrap"
	"lockedin/internal/platform/config"
	"lockedin/internal/platform/kvstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "lockedin",
		Short:         "Focus timer, attendance and study planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding config, database and notes")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newAttendanceCmd(&dataDir))
	root.AddCommand(newPlannerCmd(&dataDir))
	root.AddCommand(newProgressCmd(&dataDir))
	root.AddCommand(newEligibilityCmd(&dataDir))
	root.AddCommand(newCoachCmd(&dataDir))
	root.AddCommand(newBackupCmd(&dataDir))
	return root
}

// loadApp wires the application and surfaces degraded startup on stderr.
// Callers own the returned app and must Close it.
func loadApp(cmd *cobra.Command, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range app.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	return app, nil
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the lockedin terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newBackupCmd(dataDir *string) *cobra.Command {
	backup := &cobra.Command{Use: "backup", Short: "Export or restore all stored data"}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored record to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			snapshot, err := kvstore.Export(cmd.Context(), app.Store, app.Clock.Now())
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = filepath.Join(*dataDir, "backup-"+snapshot.ExportedAt.Format("20060102-150405")+".json")
			}
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d records (%s) to %s\n",
				len(snapshot.Entries), humanize.Bytes(uint64(len(raw))), path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&out, "out", "", "output file (defaults to a timestamped file in the data dir)")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore records from a backup file, replacing existing keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snapshot kvstore.Backup
			if err := json.Unmarshal(raw, &snapshot); err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			n, err := kvstore.Import(cmd.Context(), app.Store, snapshot)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %d records from backup taken %s\n", n, humanize.Time(snapshot.ExportedAt))
			return nil
		},
	}

	backup.AddCommand(exportCmd, importCmd)
	return backup
}
