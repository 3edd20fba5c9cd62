package ndarray

import "github.com/born-ml/strided/internal/parallel"

// kernel handles n consecutive points of the innermost iteration axis.
// offs holds each array's offset of the first point and steps each array's
// innermost stride. Both slices are owned by the caller and must not be
// modified or retained.
type kernel func(offs []int, n int, steps []int)

// execute walks plan p over arrays whose origins sit at bases, handing every
// innermost run to k. The outermost axis is split across workers; each
// worker only touches its own index range.
func execute(p Plan, bases []int, workers int, k kernel) {
	if p.Size() == 0 {
		return
	}
	if p.Rank() == 0 {
		k(bases, 1, make([]int, len(bases)))
		return
	}
	parallel.Range(p.shape[0], workers, func(lo, hi int) {
		w := newWalker(&p)
		for j := range w.cur {
			w.cur[j] = bases[j] + lo*p.strides[j][0]
		}
		if p.Rank() == 1 {
			k(w.cur, hi-lo, w.steps)
			return
		}
		for i := lo; i < hi; i++ {
			w.run(k)
			for j := range w.cur {
				w.cur[j] += p.strides[j][0]
			}
		}
	})
}

// walker is an odometer over plan axes 1..rank-2 with one offset
// accumulator per array. The innermost axis is left to the kernel.
type walker struct {
	p     *Plan
	idx   []int
	cur   []int
	pos   []int
	steps []int
}

func newWalker(p *Plan) *walker {
	na := len(p.strides)
	last := len(p.shape) - 1
	w := &walker{
		p:     p,
		idx:   make([]int, len(p.shape)),
		cur:   make([]int, na),
		pos:   make([]int, na),
		steps: make([]int, na),
	}
	for j := range w.steps {
		w.steps[j] = p.strides[j][last]
	}
	return w
}

// run visits every point of axes 1..rank-1 starting from the offsets in cur.
// cur is left unchanged.
func (w *walker) run(k kernel) {
	p := w.p
	last := len(p.shape) - 1
	n := p.shape[last]
	copy(w.pos, w.cur)
	if last == 1 {
		k(w.pos, n, w.steps)
		return
	}
	clear(w.idx)
	for {
		k(w.pos, n, w.steps)
		d := last - 1
		for ; d >= 1; d-- {
			w.idx[d]++
			for j := range w.pos {
				w.pos[j] += p.strides[j][d]
			}
			if w.idx[d] < p.shape[d] {
				break
			}
			for j := range w.pos {
				w.pos[j] -= p.shape[d] * p.strides[j][d]
			}
			w.idx[d] = 0
		}
		if d < 1 {
			return
		}
	}
}
