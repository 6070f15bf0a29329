// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/countio"
)

// errDisagree is returned when --max-rmse is exceeded or the matrices are
// not within --rtol/--atol.
var errDisagree = errors.New("matrices disagree")

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var maxRMSE, rtol, atol float64

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Report how far two transformed matrices disagree",
		Long: `Report the RMSE, the largest absolute difference and the share of
bitwise-identical entries of two matrices with the same feature and sample
names, for example CLR over a pseudo-count against CLR over LogNorm.

With --rtol or --atol the command also checks every entry of <a> against
<b> within atol + rtol*|b| and fails when any entry is outside.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			frames := make([]*coda.Frame, len(args))
			for i, path := range args {
				f, err := countio.ReadMatrixFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				logger.Debug("Loaded matrix", "path", path, "rows", f.Rows(), "cols", f.Cols(), "digest", digest(f))
				frames[i] = f
			}

			a, err := coda.Compare(frames[0], frames[1])
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), a); err != nil {
				return err
			}
			prog.done("Compared", "n", a.N)
			if maxRMSE > 0 && a.RMSE > maxRMSE {
				return fmt.Errorf("%w: rmse %g > %g", errDisagree, a.RMSE, maxRMSE)
			}
			if cmd.Flags().Changed("rtol") || cmd.Flags().Changed("atol") {
				ok, err := coda.Close(frames[0], frames[1], rtol, atol)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: not within rtol %g, atol %g", errDisagree, rtol, atol)
				}
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&maxRMSE, "max-rmse", 0, "fail when the RMSE exceeds this value (0: never)")
	cmd.Flags().Float64Var(&rtol, "rtol", 0, "relative tolerance of the entry-wise check")
	cmd.Flags().Float64Var(&atol, "atol", 0, "absolute tolerance of the entry-wise check")

	return cmd
}
