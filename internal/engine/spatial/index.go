// Package spatial implements nearest-neighbor search over sets of 3-D points.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"go.trai.ch/matsim/internal/core/domain"
)

// Index answers nearest-point queries over a fixed set of 3-D points in
// better than linear time. Queries never mutate the index; when the
// underlying point set changes, rebuild with Build.
type Index struct {
	tree *kdtree.Tree
}

// Build constructs an Index over the given points. Duplicate coordinates are
// permitted; each point keeps its original slice index, which Nearest
// reports back. Returns domain.ErrEmptyPointSet for an empty input.
func Build(points [][3]float64) (*Index, error) {
	if len(points) == 0 {
		return nil, domain.ErrEmptyPointSet
	}

	ps := make(sites, len(points))
	for i, p := range points {
		ps[i] = site{pos: p, index: i}
	}

	return &Index{tree: kdtree.New(ps, false)}, nil
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	if ix == nil || ix.tree == nil {
		return 0
	}
	return ix.tree.Len()
}

// Nearest returns the Euclidean distance from the query point to the closest
// indexed point and that point's original index. Returns domain.ErrEmptyIndex
// when the index holds no points.
func (ix *Index) Nearest(query [3]float64) (float64, int, error) {
	if ix.Len() == 0 {
		return 0, 0, domain.ErrEmptyIndex
	}

	got, dist2 := ix.tree.Nearest(site{pos: query, index: -1})
	found, ok := got.(site)
	if !ok {
		return 0, 0, domain.ErrEmptyIndex
	}

	// The kd-tree metric is the squared Euclidean distance.
	return math.Sqrt(dist2), found.index, nil
}

// site is a 3-D point tagged with its original slice index.
type site struct {
	pos   [3]float64
	index int
}

var _ kdtree.Comparable = site{}

// Compare returns the signed distance of s from the plane through c along
// dimension d.
func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(site)
	return s.pos[d] - q.pos[d]
}

// Dims returns the number of dimensions of a site.
func (s site) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between s and c.
func (s site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	var sum float64
	for i := range s.pos {
		d := s.pos[i] - q.pos[i]
		sum += d * d
	}
	return sum
}

// sites implements kdtree.Interface over a slice of sites.
type sites []site

var _ kdtree.Interface = sites{}

func (p sites) Index(i int) kdtree.Comparable         { return p[i] }
func (p sites) Len() int                              { return len(p) }
func (p sites) Pivot(d kdtree.Dim) int                { return plane{sites: p, Dim: d}.Pivot() }
func (p sites) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane is a sortable view of sites along one dimension, used to pick
// partition pivots during tree construction.
type plane struct {
	kdtree.Dim
	sites
}

func (p plane) Less(i, j int) bool { return p.sites[i].pos[p.Dim] < p.sites[j].pos[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }
