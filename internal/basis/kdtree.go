package basis

import "gonum.org/v1/gonum/spatial/kdtree"

// point is a flattened SO(3) product tagged with its index in the sequence list.
type point struct {
	coords [9]float64
	idx    int
}

func newPoint(s [9]float64, idx int) *point { return &point{coords: s, idx: idx} }

func (p *point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coords[d] - c.(*point).coords[d]
}

func (p *point) Dims() int { return len(p.coords) }

// Distance is the squared Euclidean distance, i.e. the squared Frobenius
// distance between the two matrices.
func (p *point) Distance(c kdtree.Comparable) float64 {
	q := c.(*point)
	var sum float64
	for i := range p.coords {
		d := p.coords[i] - q.coords[i]
		sum += d * d
	}
	return sum
}

type points []*point

func (p points) Index(i int) kdtree.Comparable        { return p[i] }
func (p points) Len() int                             { return len(p) }
func (p points) Pivot(d kdtree.Dim) int               { return plane{pts: p, dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	pts points
	dim kdtree.Dim
}

func (p plane) Len() int           { return len(p.pts) }
func (p plane) Less(i, j int) bool { return p.pts[i].coords[p.dim] < p.pts[j].coords[p.dim] }
func (p plane) Swap(i, j int)      { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.pts = p.pts[start:end]
	return p
}

// index is a kd-tree over flattened products.
type index struct {
	tree *kdtree.Tree
	n    int
}

func newIndex(list []*point) *index {
	cp := make(points, len(list))
	copy(cp, list) // kdtree.New partitions its input in place
	return &index{tree: kdtree.New(cp, false), n: len(list)}
}

func (x *index) insert(p *point) {
	x.tree.Insert(p, false)
	x.n++
}

// nearest returns the closest point and its squared distance; ok is false when empty.
func (x *index) nearest(q [9]float64) (*point, float64, bool) {
	if x.n == 0 {
		return nil, 0, false
	}
	c, d := x.tree.Nearest(newPoint(q, -1))
	if c == nil {
		return nil, 0, false
	}
	return c.(*point), d, true
}

// nearestLowest is nearest with ties broken toward the lowest index.
func (x *index) nearestLowest(q [9]float64) (*point, float64, bool) {
	best, d, ok := x.nearest(q)
	if !ok {
		return nil, 0, false
	}
	keep := kdtree.NewDistKeeper(d)
	x.tree.NearestSet(keep, newPoint(q, -1))
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		if p := cd.Comparable.(*point); p.idx < best.idx && cd.Dist <= d {
			best = p
		}
	}
	return best, d, true
}
