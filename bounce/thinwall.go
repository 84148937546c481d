package bounce

import (
	"math"

	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// ThinWallEstimate holds Coleman's thin-wall quantities along one path.
type ThinWallEstimate struct {
	SurfaceTension   float64 // σ = ∫ √(2V)|f'| da over V > 0
	Thickness        float64 // ∫ |f'|/√(2V) da over V > 0
	EnergyDifference float64 // ΔV = V(false) − V(path panic), at the truncation point
	Radius           float64 // dσ/ΔV
	RawAction        float64 // S₄ at T=0, S₃ at T>0
}

// ThinWall evaluates the thin-wall integrals with the midpoint rule on
// steps sub-intervals of [0, DefiniteOvershootAuxiliary].
//
// Complexity: O(steps) spline and path evaluations.
func ThinWall(path tunnelpath.Path, sp *spline.Potential, steps int) ThinWallEstimate {
	var (
		est   = ThinWallEstimate{EnergyDifference: -sp.PotentialAtPathPanic()}
		end   = sp.DefiniteOvershootAuxiliary()
		da    = end / float64(steps)
		a, v  float64
		root  float64
		speed float64
		i     int
	)
	for i = 0; i < steps; i++ {
		a = (float64(i) + 0.5) * da
		if v = sp.Value(a); v <= 0 {
			continue
		}
		root = math.Sqrt(2 * v)
		speed = path.DerivativeAt(a).Norm()
		est.SurfaceTension += root * speed * da
		est.Thickness += speed / root * da
	}

	dv, sigma := est.EnergyDifference, est.SurfaceTension
	if path.Temperature() > 0 {
		est.Radius = 2 * sigma / dv
		est.RawAction = 16 * math.Pi * sigma * sigma * sigma / (3 * dv * dv)
	} else {
		est.Radius = 3 * sigma / dv
		est.RawAction = 27 * math.Pi * math.Pi * sigma * sigma * sigma * sigma / (2 * dv * dv * dv)
	}
	return est
}
