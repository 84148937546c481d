package bounce_test

import (
	"testing"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/potential"
	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// benchmarkAction shoots the straight-line bounce of a tilted double well
// with the given number of RK4 steps per radial window.
func benchmarkAction(b *testing.B, epsilon float64, radialSteps int) {
	pot, err := potential.NewTiltedDoubleWell(1, 1, epsilon)
	if err != nil {
		b.Fatal(err)
	}
	fv, tv := pot.Vacua()
	fac, err := tunnelpath.NewFactory(tunnelpath.TypeNodesOnParallelPlanes, fv, tv)
	if err != nil {
		b.Fatal(err)
	}
	path, err := fac.New(fac.StraightLineParameters(), 0)
	if err != nil {
		b.Fatal(err)
	}
	sp, err := spline.New(pot, path, 64)
	if err != nil {
		b.Fatal(err)
	}
	opts := bounce.DefaultOptions()
	opts.RadialSteps = radialSteps
	sh, err := bounce.NewShooter(pot, opts)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = sh.Action(path, sp, fv, tv); err != nil {
			b.Fatalf("Action failed: %v", err)
		}
	}
}

func BenchmarkAction_Thick128(b *testing.B)  { benchmarkAction(b, 1, 128) }
func BenchmarkAction_Thick512(b *testing.B)  { benchmarkAction(b, 1, 512) }
func BenchmarkAction_ThinWall(b *testing.B)  { benchmarkAction(b, 1e-5, 512) }
func BenchmarkAction_SmallTilt(b *testing.B) { benchmarkAction(b, 0.1, 512) }
