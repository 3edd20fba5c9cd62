package ndarray

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pkg/errors"
)

// Plan is the traversal shared by a set of conformable arrays: the reduced
// iteration shape and, for each array, its strides along that shape.
type Plan struct {
	shape   []int
	strides [][]int
}

// NewPlan derives a traversal plan for layouts of identical shape:
//
//  1. axes of length 1 are dropped;
//  2. the remaining axes are ordered by descending minimum absolute stride
//     over all arrays, ties keeping their original order;
//  3. neighbouring axes d, d+1 are merged into one of length
//     shape[d]*shape[d+1] wherever stride[d] == shape[d+1]*stride[d+1]
//     holds for every array.
//
// The set of visited element offsets is the same as for a plain row-major
// walk of the original layouts; only the order changes.
func NewPlan(layouts ...Layout) (Plan, error) {
	if len(layouts) == 0 {
		return Plan{}, errors.Wrap(ErrRankMismatch, "a plan needs at least one array")
	}
	first := layouts[0]
	for i, l := range layouts[1:] {
		if !l.Conformable(first) {
			return Plan{}, errors.Wrapf(ErrShapeMismatch,
				"array %d has shape %v, array 0 has %v", i+1, []int(l.shape), []int(first.shape))
		}
	}

	p := Plan{strides: make([][]int, len(layouts))}
	axes := make([]int, 0, first.Rank())
	for ax, n := range first.shape {
		if n != 1 {
			axes = append(axes, ax)
		}
	}

	crit := make(map[int]int, len(axes))
	for _, ax := range axes {
		m := -1
		for _, l := range layouts {
			if s := abs(l.stride[ax]); m < 0 || s < m {
				m = s
			}
		}
		crit[ax] = m
	}
	slices.SortStableFunc(axes, func(a, b int) int { return crit[b] - crit[a] })

	p.shape = make([]int, len(axes))
	for i, ax := range axes {
		p.shape[i] = first.shape[ax]
	}
	for j, l := range layouts {
		p.strides[j] = make([]int, len(axes))
		for i, ax := range axes {
			p.strides[j][i] = l.stride[ax]
		}
	}
	before := len(p.shape)
	p.merge()

	if l := currentLogger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("iteration plan",
			"arrays", len(layouts), "layout", first,
			"reordered", before, "merged", len(p.shape), "shape", p.shape)
	}
	return p, nil
}

// merge fuses mergeable neighbouring axes, innermost pairs first, until no
// pair qualifies.
func (p *Plan) merge() {
	for merged := true; merged; {
		merged = false
		for d := len(p.shape) - 2; d >= 0; d-- {
			if !p.canMerge(d) {
				continue
			}
			p.shape[d+1] *= p.shape[d]
			p.shape = slices.Delete(p.shape, d, d+1)
			for j := range p.strides {
				p.strides[j] = slices.Delete(p.strides[j], d, d+1)
			}
			merged = true
		}
	}
}

func (p *Plan) canMerge(d int) bool {
	for _, s := range p.strides {
		if s[d] != p.shape[d+1]*s[d+1] {
			return false
		}
	}
	return true
}

// Rank returns the number of iterated axes.
func (p Plan) Rank() int { return len(p.shape) }

// Shape returns a copy of the iteration extents.
func (p Plan) Shape() []int { return slices.Clone(p.shape) }

// Strides returns a copy of array j's strides along the iteration axes.
func (p Plan) Strides(j int) []int { return slices.Clone(p.strides[j]) }

// NumArrays returns the number of arrays the plan walks.
func (p Plan) NumArrays() int { return len(p.strides) }

// Size returns the number of iteration points.
func (p Plan) Size() int {
	n := 1
	for _, e := range p.shape {
		n *= e
	}
	return n
}

// LastContiguous reports whether every array has stride 1 on the innermost
// iteration axis. It is true for rank-0 plans.
func (p Plan) LastContiguous() bool {
	if len(p.shape) == 0 {
		return true
	}
	last := len(p.shape) - 1
	for _, s := range p.strides {
		if s[last] != 1 {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
