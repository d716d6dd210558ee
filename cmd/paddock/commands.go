package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/paddock/internal/adapters/artifact"
	app "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/pkg/logger"
)

// errReported marks a failure whose JSON error was already printed.
var errReported = errors.New("error reported")

// errorBody is the failure shape callers branch on.
type errorBody struct {
	Error string `json:"error"`
}

// run bootstraps the invocation, runs fn and always releases resources.
func run(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, rt *invocation) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx, cmd.ErrOrStderr(), flags)
	if err != nil {
		_ = writeJSON(cmd.OutOrStdout(), errorPayload(cmd, err), false)
		return errReported
	}

	runErr := fn(ctx, rt)
	if err := rt.close(ctx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// fail prints the error payload and marks the command as failed.
func fail(ctx context.Context, cmd *cobra.Command, rt *invocation, err error) error {
	rt.log.Error(ctx, "command failed", logger.String("command", cmd.Name()), logger.Error(err))
	if werr := writeJSON(cmd.OutOrStdout(), errorPayload(cmd, err), false); werr != nil {
		return werr
	}
	return errReported
}

// errorPayload shapes err the way the command's callers expect: schedule
// callers read a list, every other command an object.
func errorPayload(cmd *cobra.Command, err error) any {
	body := errorBody{Error: err.Error()}
	if cmd.Name() == "schedule" {
		return []errorBody{body}
	}
	return body
}

// writeJSON prints v followed by a newline, pretty or compact.
func writeJSON(w io.Writer, v any, pretty bool) error {
	if pretty {
		data, err := artifact.Encode(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// parseSessionKey trims the key and rejects only an empty value; OpenF1
// accepts keywords such as "latest" besides numeric keys.
func parseSessionKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("%w: --session-key is required", app.ErrInvalidInput)
	}
	return key, nil
}

func newScheduleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [year]",
		Short: "Fetch a season's race sessions and write schedule.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, rt *invocation) error {
				out := cmd.OutOrStdout()

				year := rt.cfg.SeasonOr(time.Now())
				if len(args) == 1 {
					y, err := strconv.Atoi(strings.TrimSpace(args[0]))
					if err != nil {
						err = fmt.Errorf("%w: year must be a number, got %q", app.ErrInvalidInput, args[0])
						return fail(ctx, cmd, rt, err)
					}
					year = y
				}

				rt.log.Info(ctx, "fetching schedule", logger.Int("year", year))
				sessions, err := rt.svc.FetchSchedule(ctx, year)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				return writeJSON(out, sessions, true)
			})
		},
	}
}

func newRaceWindowCmd(flags *globalFlags) *cobra.Command {
	var sessionKey string

	cmd := &cobra.Command{
		Use:   "race-window",
		Short: "Infer a race's start and end from its race-control messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, rt *invocation) error {
				out := cmd.OutOrStdout()

				key, err := parseSessionKey(sessionKey)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				window, err := rt.svc.ResolveRaceWindow(ctx, key)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				return writeJSON(out, window, false)
			})
		},
	}
	cmd.Flags().StringVar(&sessionKey, "session-key", "", "OpenF1 session key of the race, or \"latest\"")
	return cmd
}

func newTelemetryChunkCmd(flags *globalFlags) *cobra.Command {
	var sessionKey, start, end string

	cmd := &cobra.Command{
		Use:   "telemetry-chunk",
		Short: "Fetch car location and position samples for a time window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, rt *invocation) error {
				out := cmd.OutOrStdout()

				key, err := parseSessionKey(sessionKey)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				chunk, err := rt.svc.FetchTelemetryChunk(ctx, key, start, end)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				return writeJSON(out, chunk, false)
			})
		},
	}
	cmd.Flags().StringVar(&sessionKey, "session-key", "", "OpenF1 session key of the race, or \"latest\"")
	cmd.Flags().StringVar(&start, "start", "", "window start, ISO-8601 (exclusive)")
	cmd.Flags().StringVar(&end, "end", "", "window end, ISO-8601 (exclusive)")
	return cmd
}

func newBuildStatsCmd(flags *globalFlags) *cobra.Command {
	var year int
	var outDir string

	cmd := &cobra.Command{
		Use:   "build-stats",
		Short: "Write drivers.json and per-driver season and career stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, func(ctx context.Context, rt *invocation) error {
				out := cmd.OutOrStdout()

				if year == 0 {
					year = rt.cfg.SeasonOr(time.Now())
				}
				if outDir == "" {
					outDir = rt.cfg.OutDir
				}

				rt.log.Info(ctx, "building driver dataset", logger.Int("year", year), logger.String("out", outDir))
				summary, err := rt.svc.BuildDriverDataset(ctx, year, outDir)
				if err != nil {
					return fail(ctx, cmd, rt, err)
				}
				return writeJSON(out, summary, false)
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "season to build (default: configured season or current year)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: out_dir from config)")
	return cmd
}
