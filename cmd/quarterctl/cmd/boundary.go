package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quarter-service/internal/domain"
)

func newBoundaryCmd(r *runner, edge domain.Edge) *cobra.Command {
	var offset string

	cmd := &cobra.Command{
		Use:   string(edge),
		Short: fmt.Sprintf("Print the %s of the quarter containing --at", edge),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			at, err := r.instant(ctx)
			if err != nil {
				return err
			}

			off, err := domain.ParseOffset(offset)
			if err != nil {
				return err
			}

			b, err := r.service.Boundary(ctx, domain.BoundaryQuery{
				At:     at,
				Zone:   r.tz,
				Edge:   edge,
				Offset: off,
			})
			if err != nil {
				return err
			}

			return r.printBoundary(cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().StringVarP(&offset, "offset", "o", "current", "quarter relative to --at (previous, current, next)")

	return cmd
}

func (r *runner) printBoundary(w io.Writer, b *domain.Boundary) error {
	if r.format == formatJSON {
		return writeJSON(w, dto.NewBoundaryResponse(b))
	}

	_, err := fmt.Fprintln(w, b.At.Format(time.RFC3339Nano))

	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
