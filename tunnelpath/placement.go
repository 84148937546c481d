package tunnelpath

import (
	"github.com/katalvlaran/lvtunnel/field"
)

// NodePlacement selects the hyperplanes that carry the intermediate nodes.
type NodePlacement int

const (
	// ParallelPlanes puts node i (1..k) on the hyperplane orthogonal to the
	// false→true line through F + i/(k+1)·(T − F).
	ParallelPlanes NodePlacement = iota

	// BisectingPlanes puts node i on the hyperplane that perpendicularly
	// bisects the segment from node i−1 (node 0 = F) to T.
	BisectingPlanes
)

// String returns the configuration name of the placement.
func (p NodePlacement) String() string {
	switch p {
	case ParallelPlanes:
		return "NodesOnParallelPlanes"
	case BisectingPlanes:
		return "NodesOnBisectingPlanes"
	default:
		return "Unknown"
	}
}

// basisEpsilon is the residual norm below which a Gram–Schmidt candidate
// is considered linearly dependent.
const basisEpsilon = 1e-10

// orthogonalComplement returns an orthonormal basis of the hyperplane
// orthogonal to dir (len(dir)−1 vectors), built by Gram–Schmidt over the
// standard basis in index order. dir need not be normalized but must be
// non-zero. The result is deterministic for a given dir.
//
// Complexity: O(N³) time, O(N²) space.
func orthogonalComplement(dir field.Configuration) []field.Configuration {
	var (
		n     = len(dir)
		unit  = dir.Scale(1 / dir.Norm())
		basis = make([]field.Configuration, 0, n)
		out   = make([]field.Configuration, 0, n-1)
		cand  field.Configuration
		norm  float64
		i     int
	)
	basis = append(basis, unit)
	for i = 0; i < n && len(out) < n-1; i++ {
		cand = make(field.Configuration, n)
		cand[i] = 1
		for _, b := range basis {
			cand.AddScaledInPlace(-cand.Dot(b), b)
		}
		norm = cand.Norm()
		if norm < basisEpsilon {
			continue
		}
		cand = cand.Scale(1 / norm)
		basis = append(basis, cand)
		out = append(out, cand)
	}

	return out
}

// placeNodes converts the node genome into the full node list
// [F, node_1, …, node_k, T]. params holds k·(N−1) plane coordinates,
// node-major. parallelBasis is the complement of T − F, shared by every
// parallel plane and used as the fallback basis for bisecting planes.
func placeNodes(
	placement NodePlacement,
	fv, tv field.Configuration,
	k int,
	parallelBasis []field.Configuration,
	params []float64,
) []field.Configuration {
	var (
		free  = len(fv) - 1
		nodes = make([]field.Configuration, 0, k+2)
		prev  = fv
		base  field.Configuration
		basis []field.Configuration
		node  field.Configuration
		i, j  int
	)
	nodes = append(nodes, fv.Clone())
	for i = 1; i <= k; i++ {
		switch placement {
		case BisectingPlanes:
			base = prev.AddScaled(1, tv).Scale(0.5)
			dir := tv.Sub(prev)
			if dir.Norm() < basisEpsilon {
				basis = parallelBasis
			} else {
				basis = orthogonalComplement(dir)
			}
		default:
			base = fv.AddScaled(float64(i)/float64(k+1), tv.Sub(fv))
			basis = parallelBasis
		}
		node = base
		for j = 0; j < free; j++ {
			node.AddScaledInPlace(params[(i-1)*free+j], basis[j])
		}
		nodes = append(nodes, node)
		prev = node
	}
	nodes = append(nodes, tv.Clone())

	return nodes
}
