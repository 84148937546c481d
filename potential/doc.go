// Package potential provides small analytic potentials that satisfy
// field.PotentialFunction. They stand in for the loop-corrected model
// potentials an external layer would normally supply, and they make the
// engine's behavior checkable against closed-form expectations.
//
// Contents:
//
//   - TiltedDoubleWell — one field, V(φ) = λ(φ²−v²)² + (ε/2)·g(φ), with the
//     cubic tilt g chosen so the minima stay exactly at φ = ±v while the
//     false vacuum (−v) sits ε above the true vacuum (+v).
//   - CurvedValley — two fields, a tilted double well along x plus a
//     transverse valley y = b(1−x²); the straight line between the minima
//     climbs the valley wall, so a curved path has a lower action.
//   - ThermalDoubleWell — TiltedDoubleWell whose tilt shrinks as ε − αT²,
//     giving a critical temperature Tc = sqrt(ε/α).
//
// All types are immutable values and safe for concurrent use.
package potential
