// Package bounce computes the Euclidean bounce action along a fixed tunnel
// path by radial shooting on the one-dimensional spline potential.
//
// 🚀 What
//
//	Given a path f(a) from the false vacuum (a=0) to the true vacuum (a=1)
//	and the spline V(a) along it, find the bubble-centre value a₀ whose
//	radial solution rolls from a₀ at r=0 to the false vacuum as r→∞, then
//	integrate the action over that profile.
//
// ⚙️ Equation of motion (projected on the path)
//
//	a'' = [ V'(a) − (f'·f'')·a'² ] / |f'|²  −  (d/r)·a'
//
//	d = 3  zero temperature, O(4)-symmetric bounce, solid angle Ω·r³ = 2π²r³
//	d = 2  finite temperature, O(3)-symmetric bounce, solid angle Ω·r² = 4πr²
//
//	The f'·f'' term keeps the motion on the path when the path is not
//	parameterized at constant speed. It vanishes for straight lines.
//
// 🧭 Shooting (inverted-potential picture)
//
//   - Overshoot  : a drops below 0 (the ball rolls past the false vacuum).
//   - Undershoot : a' turns non-negative while a > 0 (the ball turns back).
//   - Undecided  : neither within the radial budget. The radial range
//     starts at a characteristic length L and doubles up to
//     Options.RadialExtensions times; an undecided trial is then classified
//     by its remaining energy ½|f'|²a'² − V(a) (positive ⇒ Overshoot).
//
// The bracket [undershoot, overshoot] starts at the spline's definite
// undershoot and overshoot auxiliaries and is bisected; it never expands.
// Below the lower end the ball cannot climb back to V=0 even without
// friction.
//
// Bisection runs on ln δ, δ = overshoot bound − a₀. For a bubble of radius
// R the right start sits about e^(−μR) below the bound, with μ the
// curvature mass of the final segment, which a float64 auxiliary cannot
// hold once μR ≳ 37. Trials with δ inside the final segment therefore
// start from the linearised solution
//
//	δ'' + (d/r)·δ' = μ²·δ,   μ² = V''(a)/|f'|²  in the final segment
//
// integrated as ln δ and d ln δ/dr, and hand over to RK4 once δ reaches
// half a segment. If no trial overshoots down to δ = e^(−1000), the
// thin-wall estimate is reported with Decided=false.
//
// 🧱 Thin-wall fallback
//
//	ΔV is taken at the truncation point of the spline, the first minimum
//	past the barrier, not at the path end.
//
//	For |ΔV| < ThinWallPotentialRatio·scale⁴ the action is taken from
//	Coleman's thin-wall formulas with σ = ∫ √(2V)|f'| da:
//
//	  R = dσ/ΔV,  S₄ = 27π²σ⁴/(2ΔV³),  S₃ = 16πσ³/(3ΔV²)
//
//	and accepted only when R > ThinWallRadiusRatio · ∫ |f'|/√(2V) da.
//
// 📏 Reported action
//
//	T = 0 : S₄
//	T > 0 : S₃/T − (3/2)·ln(S₃/(2πT))
//
// Degeneracies are data, never errors: no barrier ⇒ NaN with
// EnergyBarrierResolved=false; true vacuum not below the path false
// minimum ⇒ +Inf (false minimum at a=0) or NaN, with Degenerate=true.
//
// Errors (sentinel):
//   - ErrBadOptions : inconsistent Options (NewShooter).
//   - ErrNilSpline  : nil spline or path passed to Action.
package bounce
