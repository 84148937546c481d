// Package pathopt minimizes the bounce action over tunnel-path parameters.
//
// Each objective evaluation builds a path from the parameter vector
// (tunnelpath), rasterizes the potential along it (spline) and shoots the
// bounce (bounce). A derivative-free Nelder–Mead simplex from
// gonum.org/v1/gonum/optimize drives the search.
//
// Early exit: once the running best action drops to Options.Threshold or
// below, the search stops and the outcome is flagged UpperBoundOnly. Every
// reported value is the action along a concrete path, so it is never below
// the minimal action: if the minimal action exceeds the threshold, the
// reported value exceeds it too.
//
// The only cross-evaluation state is the Best accumulator, passed by
// pointer into the objective closure.
//
// Errors (sentinel):
//   - ErrBadOptions : inconsistent Options.
//   - ErrNilShooter : New called without a shooter.
//
// Context cancellation is checked between evaluations and returned as
// ctx.Err().
package pathopt
