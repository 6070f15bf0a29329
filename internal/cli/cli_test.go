// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coda/coda"
	"github.com/katalvlaran/coda/config"
	"github.com/katalvlaran/coda/countio"
)

const countsTSV = "gene\tc0\tc1\tc2\tc3\n" +
	"g0\t4\t0\t2\t7\n" +
	"g1\t2\t2\t9\t1\n" +
	"g2\t0\t6\t3\t3\n" +
	"g3\t5\t1\t1\t2\n"

const cellsTSV = "cell\ttype\n" +
	"c0\tT\n" +
	"c1\tB\n" +
	"c2\tT\n" +
	"c3\tB\n"

// execute runs the root command with args and returns stdout and the log.
func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)

	return out.String(), logs.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// libraryDigest transforms the input directly and fingerprints the result.
func libraryDigest(t *testing.T, in string, m coda.Method, opts ...coda.Option) uint64 {
	t.Helper()
	x, err := countio.ReadMatrixFile(in)
	require.NoError(t, err)
	y, err := coda.Transform(x, m, opts...)
	require.NoError(t, err)

	return y.Digest()
}

func fileDigest(t *testing.T, path string) uint64 {
	t.Helper()
	f, err := countio.ReadMatrixFile(path)
	require.NoError(t, err)

	return f.Digest()
}

func TestTransformCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)

	cases := []struct {
		name string
		args []string
		m    coda.Method
		opts []coda.Option
	}{
		{"clr", nil, coda.CLR{}, nil},
		{"clr s/10000", []string{"--pseudocount", "s/10000"}, coda.CLR{}, []coda.Option{coda.WithPseudocount(coda.SumOverConstant{})}},
		{"manual", []string{"-m", "manual", "--features", "g1,g3"}, coda.Manual{Features: []string{"g1", "g3"}}, nil},
		{"lognorm", []string{"--lognorm", "--scale", "100"}, coda.CLR{}, []coda.Option{coda.WithLogNorm(100, false)}},
		{"ilr", []string{"-m", "ilr"}, coda.ILR{}, nil},
	}
	for _, tc := range cases {
		out := filepath.Join(dir, strings.ReplaceAll(tc.name, "/", "_")+".tsv.gz")
		args := append([]string{"transform", "--in", in, "--out", out}, tc.args...)
		_, logs, err := execute(t, context.Background(), args...)
		require.NoError(t, err, tc.name)
		require.Contains(t, logs, "Transformed", tc.name)
		require.Equal(t, libraryDigest(t, in, tc.m, tc.opts...), fileDigest(t, out), tc.name)
	}
}

func TestTransformCommand_GroupMethod(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)
	meta := writeFile(t, dir, "cells.tsv", cellsTSV)
	out := filepath.Join(dir, "group.tsv")

	// With every feature kept, each group's reference is the CLR mean.
	_, _, err := execute(t, context.Background(), "transform", "-i", in, "-o", out,
		"-m", "grouplvha", "--fraction", "1", "--metadata", meta, "--group-column", "type")
	require.NoError(t, err)
	require.Equal(t, libraryDigest(t, in, coda.CLR{}), fileDigest(t, out))

	_, _, err = execute(t, context.Background(), "transform", "-i", in, "-o", out,
		"-m", "grouplvha", "--metadata", meta, "--group-column", "donor")
	require.ErrorIs(t, err, countio.ErrColumnNotFound)
}

func TestTransformCommand_RunFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)
	out := filepath.Join(dir, "out.tsv")
	run := writeFile(t, dir, "run.toml", `
[output]
path = "`+filepath.ToSlash(out)+`"

[transform]
method = "manual"
features = ["g0"]
pseudocount = "s/max"
`)

	_, _, err := execute(t, context.Background(), "transform", "--config", run, "--in", in, "--features", "g2")
	require.NoError(t, err)
	want := libraryDigest(t, in, coda.Manual{Features: []string{"g2"}}, coda.WithPseudocount(coda.SumOverMax{}))
	require.Equal(t, want, fileDigest(t, out))
}

func TestTransformCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)
	out := filepath.Join(dir, "out.tsv")

	_, _, err := execute(t, context.Background(), "transform", "--out", out)
	require.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, context.Background(), "transform", "-i", in, "-o", out, "-m", "alr")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, context.Background(), "transform", "-i", in, "-o", out, "-m", "manual", "--features", "nope")
	require.ErrorIs(t, err, coda.ErrUnknownFeature)

	_, _, err = execute(t, context.Background(), "transform", "-i", filepath.Join(dir, "missing.tsv"), "-o", out)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, context.Background(), "transform", "--config", filepath.Join(dir, "missing.toml"), "-i", in)
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = execute(t, ctx, "transform", "-i", in, "-o", out)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)
	a := filepath.Join(dir, "a.tsv")
	b := filepath.Join(dir, "b.tsv")
	_, _, err := execute(t, context.Background(), "transform", "-i", in, "-o", a)
	require.NoError(t, err)
	_, _, err = execute(t, context.Background(), "transform", "-i", in, "-o", b, "--pseudocount", "0.5")
	require.NoError(t, err)

	stdout, _, err := execute(t, context.Background(), "compare", a, a)
	require.NoError(t, err)
	require.Contains(t, stdout, "rmse=0 ")
	require.Contains(t, stdout, "exact_fraction=1 ")
	require.Contains(t, stdout, "n=16")

	stdout, _, err = execute(t, context.Background(), "compare", a, b)
	require.NoError(t, err)
	require.NotContains(t, stdout, "exact_fraction=1 ")

	_, _, err = execute(t, context.Background(), "compare", "--max-rmse", "1e-12", a, b)
	require.ErrorIs(t, err, errDisagree)

	_, _, err = execute(t, context.Background(), "compare", "--atol", "0", a, a)
	require.NoError(t, err)
	_, _, err = execute(t, context.Background(), "compare", "--atol", "1e-12", a, b)
	require.ErrorIs(t, err, errDisagree)
	_, _, err = execute(t, context.Background(), "compare", "--atol", "100", a, b)
	require.NoError(t, err)
	_, _, err = execute(t, context.Background(), "compare", "--rtol=-1", a, b)
	require.ErrorIs(t, err, coda.ErrBadParameter)

	ilr := filepath.Join(dir, "ilr.tsv")
	_, _, err = execute(t, context.Background(), "transform", "-i", in, "-o", ilr, "-m", "ilr")
	require.NoError(t, err)
	_, _, err = execute(t, context.Background(), "compare", a, ilr)
	require.ErrorIs(t, err, coda.ErrShapeMismatch)

	_, _, err = execute(t, context.Background(), "compare", a)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, context.Background(), "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "version: dev")

	stdout, _, err = execute(t, context.Background(), "--version")
	require.NoError(t, err)
	require.Contains(t, stdout, "coda version: dev")
}

func TestVerboseLogsRefinement(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "counts.tsv", countsTSV)
	out := filepath.Join(dir, "out.tsv")

	_, logs, err := execute(t, context.Background(), "-v", "transform", "-i", in, "-o", out, "-m", "lvha", "--fraction", "1")
	require.NoError(t, err)
	require.Contains(t, logs, "DEBU")
}
