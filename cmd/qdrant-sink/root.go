package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-sink/v1/config"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

const rootLongDesc = `qdrant-sink consumes JSON records from Kafka and upserts them as points
into Qdrant collections.

Each record names its collection, point id, vectors and payload. Records are
written in batches, one upsert per collection. Records that cannot be written
are sent to a dead letter topic when one is configured.

Configuration is read from the file given with --config and from environment
variables prefixed with QDRANT_SINK_, e.g. QDRANT_SINK_KAFKA__GROUP_ID.`

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "qdrant-sink",
		Short:         "Kafka to Qdrant sink",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "displays version",
		Long:  "displays the version of this binary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nSha: %s\n", version, commit)
			return err
		},
	}
}

// run starts the application and blocks until it is asked to stop, either by
// a signal or by a consumer failure.
func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	app := fx.New(appOptions(cfg))

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	var exitCode int
	select {
	case sig := <-app.Wait():
		exitCode = sig.ExitCode
	case <-ctx.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	if exitCode != 0 {
		return fmt.Errorf("stopped with exit code %d", exitCode)
	}
	return nil
}
