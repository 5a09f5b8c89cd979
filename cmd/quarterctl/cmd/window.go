package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quarter-service/internal/domain"
)

func newWindowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Print the quarter containing --at and the quarters either side",
		Long: `Print the previous, current and next quarter with both edges in UTC.
Without --tz the quarters are taken in UTC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			at, err := r.instant(ctx)
			if err != nil {
				return err
			}

			w, err := r.service.Window(ctx, at, r.tz)
			if err != nil {
				return err
			}

			return r.printWindow(cmd.OutOrStdout(), w)
		},
	}
}

func (r *runner) printWindow(out io.Writer, w *domain.Window) error {
	if r.format == formatJSON {
		return writeJSON(out, dto.NewWindowResponse(w))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	for _, row := range []struct {
		name string
		span domain.QuarterSpan
	}{
		{"previous", w.Previous},
		{"current", w.Current},
		{"next", w.Next},
	} {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.name,
			row.span.Quarter,
			row.span.Start.Format(time.RFC3339Nano),
			row.span.End.Format(time.RFC3339Nano),
		)
	}

	return tw.Flush()
}
