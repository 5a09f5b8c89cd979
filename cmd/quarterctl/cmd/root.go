// Package cmd provides the quarterctl commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quarter-service/internal/adapters/tzdb"
	"github.com/jsamuelsen/quarter-service/internal/app"
	"github.com/jsamuelsen/quarter-service/internal/domain"
	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
	"github.com/jsamuelsen/quarter-service/internal/ports"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

// Options wires the CLI to its environment.
type Options struct {
	Out     io.Writer
	Err     io.Writer
	Clock   ports.Clock
	Version string
}

// runner holds the flags and the service built for one invocation.
type runner struct {
	opts Options

	at       string
	tz       string
	format   string
	logLevel string

	logger   *slog.Logger
	resolver *tzdb.Resolver
	service  *app.QuarterService
}

// Execute runs quarterctl against the process environment.
func Execute(version string) error {
	return NewRootCmd(Options{Out: os.Stdout, Err: os.Stderr, Version: version}).Execute()
}

// NewRootCmd builds the quarterctl command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	if opts.Clock == nil {
		opts.Clock = ports.SystemClock
	}

	r := &runner{opts: opts}

	root := &cobra.Command{
		Use:   "quarterctl",
		Short: "Calendar quarter boundaries from the command line",
		Long: `quarterctl prints the first or last instant of a calendar quarter.

Without --tz, the quarter is taken in the offset carried by --at and the
result keeps that offset. With --tz, the quarter is taken on that zone's
wall clock and the result is printed in UTC.

Examples:
  quarterctl start --at 2023-02-15T12:00:00Z
  quarterctl end --tz America/New_York --offset next
  quarterctl window --at 2023-02-15 --tz Asia/Tokyo --format json`,
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
	}

	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&r.at, "at", "", "instant as RFC 3339 or YYYY-MM-DD (default now)")
	flags.StringVar(&r.tz, "tz", "", "IANA time zone name")
	flags.StringVarP(&r.format, "format", "f", formatText, "output format (text, json)")
	flags.StringVar(&r.logLevel, "log-level", "warn", "log level written to stderr (trace, debug, info, warn, error)")

	root.AddCommand(
		newBoundaryCmd(r, domain.EdgeStart),
		newBoundaryCmd(r, domain.EdgeEnd),
		newWindowCmd(r),
		newVersionCmd(r),
	)

	return root
}

func (r *runner) setup(_ *cobra.Command, _ []string) error {
	if r.format != formatText && r.format != formatJSON {
		return fmt.Errorf("unknown format %q: want %s or %s", r.format, formatText, formatJSON)
	}

	r.logger = logging.NewWithWriter(&logging.Config{
		Level:   r.logLevel,
		Format:  formatText,
		Service: "quarterctl",
		Version: r.opts.Version,
	}, r.opts.Err)

	r.resolver = tzdb.NewResolver("UTC")
	r.service = app.NewQuarterService(app.QuarterServiceConfig{
		Resolver:     r.resolver,
		Clock:        r.opts.Clock,
		Logger:       r.logger,
		MaxBatchSize: 1,
	})

	return nil
}

// instant parses --at. A date-only value is midnight in --tz, or UTC.
func (r *runner) instant(ctx context.Context) (time.Time, error) {
	if r.at == "" {
		return r.opts.Clock.Now().UTC(), nil
	}

	var loc *time.Location
	if r.tz != "" {
		var err error

		loc, err = r.resolver.Resolve(ctx, r.tz)
		if err != nil {
			return time.Time{}, err
		}
	}

	return domain.ParseInstant(r.at, loc)
}

func newVersionCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "quarterctl %s\n", r.opts.Version)
			return err
		},
	}
}
