// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/config"
	"github.com/katalvlaran/coda/countio"
)

// flagBindings copies each flag's value from the flag-bound config into the
// effective one. Only flags set on the command line are copied, so they
// override a run file without resetting its other values.
var flagBindings = map[string]func(dst *config.Config, src config.Config){
	"in":             func(d *config.Config, s config.Config) { d.Input.Path = s.Input.Path },
	"out":            func(d *config.Config, s config.Config) { d.Output.Path = s.Output.Path },
	"precision":      func(d *config.Config, s config.Config) { d.Output.Precision = s.Output.Precision },
	"method":         func(d *config.Config, s config.Config) { d.Transform.Method = s.Transform.Method },
	"pseudocount":    func(d *config.Config, s config.Config) { d.Transform.Pseudocount = s.Transform.Pseudocount },
	"lognorm":        func(d *config.Config, s config.Config) { d.Transform.LogNorm = s.Transform.LogNorm },
	"scale":          func(d *config.Config, s config.Config) { d.Transform.Scale = s.Transform.Scale },
	"prenormalized":  func(d *config.Config, s config.Config) { d.Transform.PreNormalized = s.Transform.PreNormalized },
	"features":       func(d *config.Config, s config.Config) { d.Transform.Features = s.Transform.Features },
	"fraction":       func(d *config.Config, s config.Config) { d.Transform.Fraction = s.Transform.Fraction },
	"max-iterations": func(d *config.Config, s config.Config) { d.Transform.MaxIterations = s.Transform.MaxIterations },
	"tolerance":      func(d *config.Config, s config.Config) { d.Transform.Tolerance = s.Transform.Tolerance },
	"metadata":       func(d *config.Config, s config.Config) { d.Groups.Metadata = s.Groups.Metadata },
	"group-column":   func(d *config.Config, s config.Config) { d.Groups.Column = s.Groups.Column },
}

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	var runFile string
	flags := config.Default()

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply a log-ratio transform to a count matrix",
		Long: `Apply a log-ratio transform to a feature-by-sample count matrix.

The input is a delimited table (tab-separated, or comma-separated for .csv)
with features as rows and samples as columns, optionally compressed
(.gz, .zst, .lz4, .sz, .s2). The output has the same layout; for ilr its
rows are the D-1 balances.

A TOML run file (--config) may supply any setting; flags given on the
command line override it.`,
		Example: `  coda transform --in counts.tsv.gz --out clr.tsv
  coda transform -i counts.tsv -m iqlr --pseudocount s/10000 -o iqlr.tsv.zst
  coda transform -i counts.tsv -m groupiqlr --metadata cells.tsv --group-column celltype
  coda transform --config run.toml --method lvha --fraction 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if runFile != "" {
				// Validated after the flags are merged: --in may supply the input.
				loaded, err := config.Decode(runFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if bind, ok := flagBindings[f.Name]; ok {
					bind(&cfg, flags)
				}
			})

			return c.runTransform(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&runFile, "config", "c", "", "TOML run file")
	f.StringVarP(&flags.Input.Path, "in", "i", "", `input count matrix ("-" for stdin)`)
	f.StringVarP(&flags.Output.Path, "out", "o", flags.Output.Path, `output matrix ("-" for stdout)`)
	f.IntVar(&flags.Output.Precision, "precision", flags.Output.Precision, "significant digits per value (-1: shortest exact)")
	f.StringVarP(&flags.Transform.Method, "method", "m", flags.Transform.Method, "method: "+strings.Join(coda.Methods(), ", "))
	f.StringVar(&flags.Transform.Pseudocount, "pseudocount", flags.Transform.Pseudocount, "pseudo-count: s/gm, s/max, s/<divisor> or a fixed value")
	f.BoolVar(&flags.Transform.LogNorm, "lognorm", false, "use ln(1 + x*scale/library size) instead of a pseudo-count")
	f.Float64Var(&flags.Transform.Scale, "scale", flags.Transform.Scale, "LogNorm library-size target")
	f.BoolVar(&flags.Transform.PreNormalized, "prenormalized", false, "input is already log-normalized (with --lognorm)")
	f.StringSliceVar(&flags.Transform.Features, "features", nil, "reference features of the manual method")
	f.Float64Var(&flags.Transform.Fraction, "fraction", flags.Transform.Fraction, "share of features kept by lvha and grouplvha")
	f.IntVar(&flags.Transform.MaxIterations, "max-iterations", flags.Transform.MaxIterations, "refinement cap of iqlr, lvha and mdclr")
	f.Float64Var(&flags.Transform.Tolerance, "tolerance", flags.Transform.Tolerance, "mdclr weight convergence threshold")
	f.StringVar(&flags.Groups.Metadata, "metadata", "", "per-sample metadata table of the group methods")
	f.StringVar(&flags.Groups.Column, "group-column", "", "metadata column holding the group label")

	return cmd
}

// runTransform reads, transforms and writes one matrix as configured.
func (c *CLI) runTransform(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	x, err := countio.ReadMatrixFile(cfg.Input.Path, cfg.InputOptions()...)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Info("Loaded counts", "features", x.Rows(), "samples", x.Cols(), "digest", digest(x))

	var groups map[string]string
	if cfg.NeedsGroups() {
		groups, err = countio.ReadGroupsFile(cfg.Groups.Metadata, cfg.Groups.Column)
		if err != nil {
			return fmt.Errorf("read metadata: %w", err)
		}
		logger.Debug("Loaded groups", "samples", len(groups), "column", cfg.Groups.Column)
	}

	m, err := cfg.Method(groups)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := coda.Transform(x, m, append(opts, coda.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Name(), err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := countio.WriteMatrixFile(cfg.Output.Path, out, cfg.OutputOptions()...); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done("Transformed", "method", m.Name(), "rows", out.Rows(), "out", cfg.Output.Path, "digest", digest(out))

	return nil
}

func digest(f *coda.Frame) string {
	return fmt.Sprintf("%016x", f.Digest())
}
