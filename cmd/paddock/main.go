package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		// Failures already reported as JSON on stdout only need the exit code.
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	logLevel    string
	cachePath   string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "paddock",
		Short:         "Prepare Formula 1 schedule, replay and driver stats data as static JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (default $PADDOCK_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&flags.cachePath, "cache", "", "SQLite response cache for OpenF1 requests")
	root.PersistentFlags().StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(newScheduleCmd(&flags))
	root.AddCommand(newRaceWindowCmd(&flags))
	root.AddCommand(newTelemetryChunkCmd(&flags))
	root.AddCommand(newBuildStatsCmd(&flags))
	return root
}
