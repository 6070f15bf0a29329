// SPDX-License-Identifier: MIT

// Package config loads TOML run files for the coda command.
//
// A run file mirrors the command-line flags of "coda transform":
//
//	[input]
//	path = "counts.tsv.gz"
//
//	[output]
//	path = "clr.tsv"
//	precision = 6
//
//	[transform]
//	method = "iqlr"
//	pseudocount = "s/gm"
//	max_iterations = 200
//
//	[groups]
//	metadata = "cells.tsv"
//	column = "celltype"
//
// Keys that are absent keep the values of Default. Unknown keys are errors.
package config

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/countio"
)

var (
	// ErrInvalid marks a configuration value that cannot be applied.
	ErrInvalid = errors.New("config: invalid value")

	// ErrUnknownKey marks a run-file key that no field decodes.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Config is a complete transform run.
type Config struct {
	Input     Input     `toml:"input"`
	Output    Output    `toml:"output"`
	Transform Transform `toml:"transform"`
	Groups    Groups    `toml:"groups"`
}

// Input names the count matrix. An empty Delimiter is derived from the path.
type Input struct {
	Path      string `toml:"path"`
	Delimiter string `toml:"delimiter"`
}

// Output names the destination of the transformed matrix ("-" is stdout).
type Output struct {
	Path      string `toml:"path"`
	Delimiter string `toml:"delimiter"`
	Precision int    `toml:"precision"`
	Corner    string `toml:"corner"`
}

// Transform selects the method and its adjuster.
type Transform struct {
	Method        string   `toml:"method"`
	Pseudocount   string   `toml:"pseudocount"`
	LogNorm       bool     `toml:"lognorm"`
	Scale         float64  `toml:"scale"`
	PreNormalized bool     `toml:"prenormalized"`
	MaxIterations int      `toml:"max_iterations"`
	Tolerance     float64  `toml:"tolerance"`
	Fraction      float64  `toml:"fraction"`
	Features      []string `toml:"features"`
	Partition     [][]int  `toml:"partition"`
}

// Groups locates the per-sample labels of groupiqlr and grouplvha.
type Groups struct {
	Metadata string `toml:"metadata"`
	Column   string `toml:"column"`
}

// Default returns the configuration used when no run file is given.
func Default() Config {
	return Config{
		Output: Output{
			Path:      "-",
			Precision: -1,
			Corner:    countio.DefaultCorner,
		},
		Transform: Transform{
			Method:        "clr",
			Pseudocount:   coda.SumOverGeoMean{}.String(),
			Scale:         coda.DefaultScaleFactor,
			MaxIterations: coda.DefaultMaxIterations,
			Tolerance:     coda.DefaultTolerance,
			Fraction:      coda.DefaultLVHAFraction,
		},
	}
}

// Load decodes the run file at path and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Decode(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads the run file at path over Default without validating it,
// for callers that layer further settings on top.
func Decode(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, undecoded[0])
	}

	return cfg, nil
}

// Validate reports every field that cannot be applied, joined.
// It does not touch the file system.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	t := c.Transform
	m, err := coda.ParseMethod(t.Method)
	if err != nil {
		bad("transform.method %q (want one of %v)", t.Method, coda.Methods())
	}
	if !t.LogNorm {
		if _, err := coda.ParsePseudocount(t.Pseudocount); err != nil {
			bad("transform.pseudocount %q", t.Pseudocount)
		}
	}
	if !finite(t.Scale) || t.Scale <= 0 {
		bad("transform.scale must be > 0, got %g", t.Scale)
	}
	if t.MaxIterations < 1 {
		bad("transform.max_iterations must be >= 1, got %d", t.MaxIterations)
	}
	if !finite(t.Tolerance) || t.Tolerance < 0 {
		bad("transform.tolerance must be >= 0, got %g", t.Tolerance)
	}
	if !finite(t.Fraction) || t.Fraction < 0 || t.Fraction > 1 {
		bad("transform.fraction must be in [0, 1], got %g", t.Fraction)
	}

	switch m.(type) {
	case coda.Manual:
		if len(t.Features) == 0 {
			bad("transform.features is required by method manual")
		}
	case coda.GroupIQLR, coda.GroupLVHA:
		if c.Groups.Metadata == "" || c.Groups.Column == "" {
			bad("groups.metadata and groups.column are required by method %s", m.Name())
		}
	}
	if len(t.Partition) > 0 {
		if _, ok := m.(coda.ILR); !ok {
			bad("transform.partition is only used by method ilr")
		}
		for i, row := range t.Partition {
			for _, v := range row {
				if v < -1 || v > 1 {
					bad("transform.partition[%d] has entry %d outside {-1, 0, 1}", i, v)
					break
				}
			}
		}
	}

	if c.Input.Path == "" {
		bad("input.path is required")
	}
	if c.Output.Path == "" {
		bad("output.path is required")
	}
	if c.Output.Precision < -1 {
		bad("output.precision must be >= -1, got %d", c.Output.Precision)
	}
	for _, d := range []struct{ key, val string }{
		{"input.delimiter", c.Input.Delimiter},
		{"output.delimiter", c.Output.Delimiter},
	} {
		if _, ok := delimiter(d.val); !ok {
			bad("%s must be a single character other than quote or newline, got %q", d.key, d.val)
		}
	}

	return errors.Join(errs...)
}

// Method builds the configured coda.Method. groups is the sample-to-label
// map of the group-aware methods and is ignored by the others.
func (c Config) Method(groups map[string]string) (coda.Method, error) {
	t := c.Transform
	m, err := coda.ParseMethod(t.Method)
	if err != nil {
		return nil, err
	}

	switch m.(type) {
	case coda.LVHA:
		return coda.LVHA{Fraction: t.Fraction}, nil
	case coda.Manual:
		return coda.Manual{Features: append([]string(nil), t.Features...)}, nil
	case coda.GroupIQLR:
		return coda.GroupIQLR{Groups: groups}, nil
	case coda.GroupLVHA:
		return coda.GroupLVHA{Groups: groups, Fraction: t.Fraction}, nil
	case coda.ILR:
		if len(t.Partition) == 0 {
			return coda.ILR{}, nil
		}
		p := make([][]int8, len(t.Partition))
		for i, row := range t.Partition {
			p[i] = make([]int8, len(row))
			for j, v := range row {
				if v < -1 || v > 1 {
					return nil, fmt.Errorf("partition[%d][%d] = %d: %w", i, j, v, coda.ErrBadPartition)
				}
				p[i][j] = int8(v)
			}
		}

		return coda.ILR{Partition: p}, nil
	}

	return m, nil
}

// NeedsGroups reports whether the method reads sample labels.
func (c Config) NeedsGroups() bool {
	m, err := coda.ParseMethod(c.Transform.Method)
	if err != nil {
		return false
	}
	switch m.(type) {
	case coda.GroupIQLR, coda.GroupLVHA:
		return true
	}

	return false
}

// Options validates c and translates the adjuster and refinement settings
// into coda options.
func (c Config) Options() ([]coda.Option, error) {
	t := c.Transform
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []coda.Option{
		coda.WithMaxIterations(t.MaxIterations),
		coda.WithTolerance(t.Tolerance),
	}
	if t.LogNorm {
		return append(opts, coda.WithLogNorm(t.Scale, t.PreNormalized)), nil
	}
	p, err := coda.ParsePseudocount(t.Pseudocount)
	if err != nil {
		return nil, err
	}

	return append(opts, coda.WithPseudocount(p)), nil
}

// InputOptions returns the reader options of the input matrix.
func (c Config) InputOptions() []countio.Option {
	if r, ok := delimiter(c.Input.Delimiter); ok && r != 0 {
		return []countio.Option{countio.WithDelimiter(r)}
	}

	return nil
}

// OutputOptions returns the writer options of the output matrix.
func (c Config) OutputOptions() []countio.Option {
	opts := []countio.Option{countio.WithCorner(c.Output.Corner)}
	if c.Output.Precision >= -1 {
		opts = append(opts, countio.WithPrecision(c.Output.Precision))
	}
	if r, ok := delimiter(c.Output.Delimiter); ok && r != 0 {
		opts = append(opts, countio.WithDelimiter(r))
	}

	return opts
}

// delimiter decodes a one-character delimiter; "" yields 0 (derive from path).
func delimiter(s string) (rune, bool) {
	if s == "" {
		return 0, true
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, false
	}

	return r, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
