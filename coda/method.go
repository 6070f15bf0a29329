// SPDX-License-Identifier: MIT

package coda

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the reference of a log-ratio transform. The set of methods
// is closed; each variant carries only its own parameters.
type Method interface {
	// Name returns the method token accepted by ParseMethod.
	Name() string

	method()
}

// CLR references every feature: the centered log-ratio.
type CLR struct{}

// IQLR references the features whose CLR variance lies in the interquartile
// range of all feature variances, refined to a fixed point.
type IQLR struct{}

// LVHA references the ⌈Fraction·D⌉ features with the best combined rank of
// low CLR variance and high mean log abundance, refined to a fixed point.
// A zero Fraction means DefaultLVHAFraction.
type LVHA struct {
	Fraction float64
}

// MdCLR weights every feature by min(1, median(var)/var_i) and iterates the
// weights until they move by no more than the tolerance.
type MdCLR struct{}

// Manual references a fixed list of feature names for every sample.
type Manual struct {
	Features []string
}

// GroupIQLR runs the IQLR selection separately within each sample group.
// Groups maps sample name to group label.
type GroupIQLR struct {
	Groups map[string]string
}

// GroupLVHA runs the LVHA selection separately within each sample group.
type GroupLVHA struct {
	Groups   map[string]string
	Fraction float64
}

// ILR projects onto orthonormal balances of a sequential binary partition.
// Partition has D−1 rows of length D with entries in {−1, 0, +1}; nil
// selects the pivot partition.
type ILR struct {
	Partition [][]int8
}

func (CLR) Name() string       { return "clr" }
func (IQLR) Name() string      { return "iqlr" }
func (LVHA) Name() string      { return "lvha" }
func (MdCLR) Name() string     { return "mdclr" }
func (Manual) Name() string    { return "manual" }
func (GroupIQLR) Name() string { return "groupiqlr" }
func (GroupLVHA) Name() string { return "grouplvha" }
func (ILR) Name() string       { return "ilr" }

func (CLR) method()       {}
func (IQLR) method()      {}
func (LVHA) method()      {}
func (MdCLR) method()     {}
func (Manual) method()    {}
func (GroupIQLR) method() {}
func (GroupLVHA) method() {}
func (ILR) method()       {}

// Methods lists the method tokens in documentation order.
func Methods() []string {
	return []string{"clr", "iqlr", "lvha", "mdclr", "manual", "groupiqlr", "grouplvha", "ilr"}
}

// ParseMethod maps a token (case-insensitive) to the zero-valued variant.
// Parameters such as Manual.Features or group maps are attached by the caller.
func ParseMethod(token string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "clr":
		return CLR{}, nil
	case "iqlr":
		return IQLR{}, nil
	case "lvha":
		return LVHA{}, nil
	case "mdclr":
		return MdCLR{}, nil
	case "manual":
		return Manual{}, nil
	case "groupiqlr":
		return GroupIQLR{}, nil
	case "grouplvha":
		return GroupLVHA{}, nil
	case "ilr":
		return ILR{}, nil
	}

	return nil, fmt.Errorf("%q: %w", token, ErrUnknownMethod)
}

// normalize dereferences pointer variants and validates parameters that do
// not depend on the data.
func normalize(m Method) (Method, error) {
	switch v := m.(type) {
	case nil:
		return nil, ErrUnknownMethod
	case *CLR:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *IQLR:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *LVHA:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *MdCLR:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *Manual:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *GroupIQLR:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *GroupLVHA:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	case *ILR:
		if v == nil {
			return nil, ErrUnknownMethod
		}
		m = *v
	}

	switch v := m.(type) {
	case LVHA:
		f, err := resolveFraction(v.Fraction)
		if err != nil {
			return nil, err
		}
		v.Fraction = f
		return v, nil
	case GroupLVHA:
		f, err := resolveFraction(v.Fraction)
		if err != nil {
			return nil, err
		}
		v.Fraction = f
		return v, nil
	case Manual:
		if len(v.Features) == 0 {
			return nil, ErrEmptyFeatureList
		}
	}

	return m, nil
}

// resolveFraction maps 0 to DefaultLVHAFraction and rejects values outside (0, 1].
func resolveFraction(f float64) (float64, error) {
	if f == 0 {
		return DefaultLVHAFraction, nil
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, fmt.Errorf("lvha fraction %g: %w", f, ErrBadParameter)
	}

	return f, nil
}
