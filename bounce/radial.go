package bounce

import (
	"math"

	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
	"gonum.org/v1/gonum/integrate"
)

// wallResolution is the minimum number of RK4 steps per curvature length
// 1/μ.
const wallResolution = 8

// linearFraction places the hand-over from the linearised centre solution
// at this fraction of the final spline segment.
const linearFraction = 0.5

// problem is the radial ODE for one path and spline.
type problem struct {
	path       tunnelpath.Path
	sp         *spline.Potential
	length     float64 // first radial window [0, length]
	steps      int
	extensions int
	friction   float64 // d in (d/r)·a'
	solidAngle float64

	over         float64 // DefiniteOvershootAuxiliary
	panicMassSq  float64 // μ² = V''/|f'|² in the final segment; 0 disables the linear start
	linearOffset float64 // ln δ at which the linear start hands over to RK4
	maxStep      float64 // 0 leaves the step at width/steps
}

// profile records a radial solution window by window. A nil *profile
// records nothing.
type profile struct {
	points  []RadialPoint
	windows []int // index of the first point of each window
}

func (p *profile) add(r, a, slope float64) {
	if p != nil {
		p.points = append(p.points, RadialPoint{Radius: r, Auxiliary: a, Slope: slope})
	}
}

func (p *profile) startWindow() {
	if p != nil {
		p.windows = append(p.windows, len(p.points)-1)
	}
}

// speedSquared returns |f'(a)|², floored.
func (pr *problem) speedSquared(a float64) float64 {
	n2 := pr.path.DerivativeAt(a).LengthSquared()
	if n2 < minSpeedSquared {
		return minSpeedSquared
	}
	return n2
}

// acceleration evaluates a” at (r, a, a').
func (pr *problem) acceleration(r, a, slope float64) float64 {
	fp := pr.path.DerivativeAt(a)
	n2 := fp.LengthSquared()
	if n2 < minSpeedSquared {
		n2 = minSpeedSquared
	}
	transverse := fp.Dot(pr.path.SecondDerivativeAt(a))
	return (pr.sp.FirstDerivative(a)-transverse*slope*slope)/n2 - pr.friction*slope/r
}

// rk4 advances (a, a') from r by h.
func (pr *problem) rk4(r, a, slope, h float64) (float64, float64) {
	var (
		half = 0.5 * h
		k1a  = slope
		k1p  = pr.acceleration(r, a, slope)
		k2a  = slope + half*k1p
		k2p  = pr.acceleration(r+half, a+half*k1a, k2a)
		k3a  = slope + half*k2p
		k3p  = pr.acceleration(r+half, a+half*k2a, k3a)
		k4a  = slope + h*k3p
		k4p  = pr.acceleration(r+h, a+h*k3a, k4a)
	)
	return a + h/6*(k1a+2*k2a+2*k3a+k4a), slope + h/6*(k1p+2*k2p+2*k3p+k4p)
}

// potential is V(a), with the final potential at and past the overshoot
// bound, where a deep bubble interior rounds to in float64.
func (pr *problem) potential(a float64) float64 {
	if a >= pr.over {
		return pr.sp.FinalPotential()
	}
	return pr.sp.Value(a)
}

// stepsFor returns the RK4 step count for a window of the given width.
func (pr *problem) stepsFor(width float64) int {
	n := pr.steps
	if pr.maxStep > 0 {
		if m := int(math.Ceil(width / pr.maxStep)); m > n {
			n = m
		}
	}
	return n
}

// riccati is d(rate)/dr for rate = d ln δ/dr of the linearised centre
// equation (see the package doc).
func (pr *problem) riccati(r, rate float64) float64 {
	return pr.panicMassSq - rate*rate - pr.friction*rate/r
}

// linearStep advances (ln δ, rate) from r > 0 by h.
func (pr *problem) linearStep(r, logOffset, rate, h float64) (float64, float64) {
	var (
		half = 0.5 * h
		k1   = pr.riccati(r, rate)
		k2   = pr.riccati(r+half, rate+half*k1)
		k3   = pr.riccati(r+half, rate+half*k2)
		k4   = pr.riccati(r+h, rate+h*k3)
	)
	logOffset += h / 6 * (rate + 2*(rate+half*k1) + 2*(rate+half*k2) + rate + h*k3)
	return logOffset, rate + h/6*(k1+2*k2+2*k3+k4)
}

// shoot integrates outward from the bubble centre a0 = over − e^logOffset
// at rest and classifies the trial. decided is false when the energy
// fallback classified it.
//
// Near the overshoot bound the centre offset δ is far below the float64
// spacing of a, so small offsets start from the linearised solution of the
// final quadratic segment, carried as (ln δ, d ln δ/dr) until δ reaches
// linearOffset. Otherwise the first step uses the regular series
// a = a0 + g·r²/(2(d+1)) with g = V'(a0)/|f'|², which avoids the 1/r
// singularity at the centre.
func (pr *problem) shoot(logOffset float64, rec *profile) (state State, decided bool) {
	var (
		a0     = pr.over - math.Exp(logOffset)
		linear = pr.panicMassSq > 0 && logOffset < pr.linearOffset
		drive  = pr.sp.FirstDerivative(a0) / pr.speedSquared(a0)
	)
	rec.add(0, a0, 0)
	rec.startWindow()
	if !linear && !(drive < 0) {
		return Undershoot, true
	}

	var (
		a, slope     = a0, 0.0
		rate, delta  float64
		r            float64
		rStart, rEnd = 0.0, pr.length
		h            float64
		n, w, k      int
	)
	for w = 0; w <= pr.extensions; w++ {
		if w > 0 {
			rec.startWindow()
		}
		n = pr.stepsFor(rEnd - rStart)
		h = (rEnd - rStart) / float64(n)
		for k = 1; k <= n; k++ {
			switch {
			case linear:
				if r == 0 {
					rate = pr.panicMassSq * h / (pr.friction + 1)
					logOffset += pr.panicMassSq * h * h / (2 * (pr.friction + 1))
				} else {
					logOffset, rate = pr.linearStep(r, logOffset, rate, h)
				}
				delta = math.Exp(logOffset)
				a, slope = pr.over-delta, -delta*rate
				linear = logOffset < pr.linearOffset
			case r == 0:
				a = a0 + drive*h*h/(2*(pr.friction+1))
				slope = drive * h / (pr.friction + 1)
			default:
				a, slope = pr.rk4(r, a, slope, h)
			}
			r = rStart + float64(k)*h
			if !linear {
				if a < 0 || math.IsNaN(a) {
					return Overshoot, true
				}
				if slope >= 0 {
					return Undershoot, true
				}
			}
			rec.add(r, a, slope)
		}
		rStart, rEnd = rEnd, 2*rEnd
	}

	energy := 0.5*pr.speedSquared(a)*slope*slope - pr.potential(a)
	if energy > 0 {
		return Overshoot, false
	}
	return Undershoot, false
}

// action integrates Ω·r^d·(½|f'|²a'² + V(a)) over rec with Simpson's rule,
// window by window. A window cut short after one step uses the trapezoid.
func (pr *problem) action(rec *profile) float64 {
	var (
		total     float64
		radii, fs []float64
		w         int
	)
	for w = range rec.windows {
		start := rec.windows[w]
		end := len(rec.points) - 1
		if w+1 < len(rec.windows) {
			end = rec.windows[w+1]
		}
		if end <= start {
			continue
		}
		if end == start+1 {
			lo, hi := rec.points[start], rec.points[end]
			total += 0.5 * (hi.Radius - lo.Radius) * (pr.density(lo) + pr.density(hi))
			continue
		}
		radii, fs = radii[:0], fs[:0]
		for _, pt := range rec.points[start : end+1] {
			radii = append(radii, pt.Radius)
			fs = append(fs, pr.density(pt))
		}
		total += integrate.Simpsons(radii, fs)
	}
	return pr.solidAngle * total
}

// density is r^d·(½|f'|²a'² + V(a)) at one profile point.
func (pr *problem) density(pt RadialPoint) float64 {
	rd := pt.Radius * pt.Radius
	if pr.friction == 3 {
		rd *= pt.Radius
	}
	kinetic := 0.5 * pr.speedSquared(pt.Auxiliary) * pt.Slope * pt.Slope
	return rd * (kinetic + pr.potential(pt.Auxiliary))
}
