// SPDX-License-Identifier: MIT

package coda

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/coda/matrix"
)

// Reference returns the per-sample log reference (the log geometric mean of
// the reference features) of a log-space frame such as the one Adjust
// returns. ILR has no scalar reference and yields ErrInvalidConfig.
func Reference(logX *Frame, m Method, opts ...Option) ([]float64, error) {
	const op = "Reference"
	if err := logX.validate(); err != nil {
		return nil, codaErrorf(op, err)
	}
	nm, err := normalize(m)
	if err != nil {
		return nil, codaErrorf(op, err)
	}
	ref, err := reference(logX, nm, gatherOptions(opts...))
	if err != nil {
		return nil, codaErrorf(op, err)
	}

	return ref, nil
}

// reference dispatches a normalized scalar method.
func reference(logX *Frame, m Method, o options) ([]float64, error) {
	x := logX.Data
	switch v := m.(type) {
	case CLR:
		return matrix.ColumnMeansOverRows(x, seq(x.Rows()))
	case IQLR:
		return selectedMeans(x, func(sub *matrix.Dense) ([]int, error) { return selectIQLR(sub, o) })
	case LVHA:
		return selectedMeans(x, func(sub *matrix.Dense) ([]int, error) { return selectLVHA(sub, v.Fraction, o) })
	case MdCLR:
		return mdclrReference(x, o)
	case Manual:
		rows, err := manualRows(logX, v.Features)
		if err != nil {
			return nil, err
		}
		o.debug("manual reference", "features", len(rows))
		return matrix.ColumnMeansOverRows(x, rows)
	case GroupIQLR:
		return groupReference(logX, v.Groups, o, func(sub *matrix.Dense) ([]int, error) {
			return selectIQLR(sub, o)
		})
	case GroupLVHA:
		return groupReference(logX, v.Groups, o, func(sub *matrix.Dense) ([]int, error) {
			return selectLVHA(sub, v.Fraction, o)
		})
	case ILR:
		return nil, fmt.Errorf("%w: ilr has no scalar reference", ErrInvalidConfig)
	}

	return nil, ErrUnknownMethod
}

// selectedMeans applies a row selector and averages the selected rows per column.
func selectedMeans(x *matrix.Dense, sel func(*matrix.Dense) ([]int, error)) ([]float64, error) {
	rows, err := sel(x)
	if err != nil {
		return nil, err
	}

	return matrix.ColumnMeansOverRows(x, rows)
}

// manualRows resolves feature names to sorted, de-duplicated row indices.
func manualRows(f *Frame, names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, ErrEmptyFeatureList
	}
	index := make(map[string]int, len(f.Features))
	for i, name := range f.Features {
		index[name] = i
	}
	seen := make(map[int]struct{}, len(names))
	rows := make([]int, 0, len(names))
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownFeature)
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		rows = append(rows, i)
	}
	sort.Ints(rows)

	return rows, nil
}

// groupReference runs sel within each group's columns and writes the
// resulting references back to those columns. Labels are visited in sorted
// order; every sample must carry a non-empty label.
func groupReference(
	f *Frame,
	groups map[string]string,
	o options,
	sel func(*matrix.Dense) ([]int, error),
) ([]float64, error) {
	byLabel := make(map[string][]int)
	for j, sample := range f.Samples {
		label := groups[sample]
		if label == "" {
			return nil, fmt.Errorf("sample %q: %w", sample, ErrMissingGroup)
		}
		byLabel[label] = append(byLabel[label], j)
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := seq(f.Rows())
	ref := make([]float64, f.Cols())
	for _, label := range labels {
		cols := byLabel[label]
		sub, err := f.Data.Induced(rows, cols)
		if err != nil {
			return nil, err
		}
		part, err := selectedMeans(sub, sel)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", label, err)
		}
		for k, j := range cols {
			ref[j] = part[k]
		}
		o.debug("group reference", "group", label, "samples", len(cols))
	}

	return ref, nil
}
