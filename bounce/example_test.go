package bounce_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/potential"
	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// ExampleShooter_Action shoots a bounce along the straight line of a
// tilted double well with a thick wall.
//
// Scenario:
//
//	V(φ) = (φ² − 1)² + ½·ε·g(φ), ε = 1, false vacuum at φ=−1, true at φ=+1.
//
// Complexity: O(ShootAttempts · RadialSteps · windows).
func ExampleShooter_Action() {
	pot, _ := potential.NewTiltedDoubleWell(1, 1, 1)
	fv, tv := pot.Vacua()

	fac, _ := tunnelpath.NewFactory(tunnelpath.TypeNodesOnParallelPlanes, fv, tv)
	path, _ := fac.New(fac.StraightLineParameters(), 0)
	sp, _ := spline.New(pot, path, 64)

	sh, _ := bounce.NewShooter(pot, bounce.DefaultOptions())
	res, _ := sh.Action(path, sp, fv, tv)

	fmt.Println("barrier resolved:", res.EnergyBarrierResolved)
	fmt.Println("thin wall:", res.ThinWall)
	fmt.Println("finite positive action:", res.Action > 0 && !math.IsInf(res.Action, 0))
	// Output:
	// barrier resolved: true
	// thin wall: false
	// finite positive action: true
}
