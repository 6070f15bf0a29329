// SPDX-License-Identifier: MIT

// Package cli implements the coda command-line interface.
//
// Commands:
//   - transform: read a count matrix, apply a log-ratio transform, write it
//   - compare: report the agreement of two transformed matrices
//   - version: print build information
//
// Every command accepts --verbose (-v) for debug logging, which includes
// the per-iteration trace of reference refinement. The logger travels in
// the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coda/internal/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "coda",
		Short: "coda applies compositional log-ratio transforms to count matrices",
		Long: `coda applies compositional log-ratio transforms (CLR, IQLR, LVHA, mdCLR,
manual, group-aware IQLR/LVHA and ILR) to feature-by-sample count matrices
such as single-cell or bulk RNA-seq tables.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.transformCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.versionCommand())

	return root
}
