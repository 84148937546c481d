// Package spline rasterizes the potential along a tunnel path into a
// one-dimensional, C¹ piecewise-quadratic function of the auxiliary
// coordinate a ∈ [0,1], relative to the false-vacuum potential.
//
// Layout (h = step, m = number of kept segments):
//
//	segment 0          [0, h)              q0·a²                  (pure quadratic at the false vacuum)
//	segments 1..m−2    [i·h, (i+1)·h)      v_i + s_i·d + (s_{i+1}−s_i)·d²/(2h),  d = a − i·h
//	segment m−1        [(m−1)·h, m·h)      V_f + qf·(a − m·h)²    (pure quadratic at the truncation point)
//
// Each interior segment stores a value and a slope at its start; the slope
// varies linearly across the segment, so value and first derivative are
// continuous at every boundary. Slopes come from the sampled values by the
// recursion s_{j+1} = 2(y_{j+1} − y_j)/h − s_j with s_0 = 0, so the spline
// passes through every kept sample except the truncation point itself,
// where the slope is forced to zero instead.
//
// The spline is truncated at the first sampled local minimum past the
// energy barrier (the "path panic" point). Outside [0, DefiniteOvershootAuxiliary)
// every accessor returns zero.
//
// Diagnostics (NumericalDegeneracy class, reported as flags not errors):
//
//	EnergyBarrierResolved               false if the samples never rise above
//	                                    the false vacuum before dropping below it.
//	TrueVacuumLowerThanPathFalseMinimum false if the true vacuum is not strictly
//	                                    below the first local minimum reached
//	                                    from the false vacuum along the path.
//
// When either flag is false the spline is flat (identically zero) and the
// shooting layer reports a degenerate result.
//
// Complexity: construction O(n) potential evaluations; every accessor O(1).
package spline
