// Package thermal integrates the thermal decay rate of a false vacuum from
// the critical temperature down to zero.
//
// The survival exponent is
//
//	I = ∫₀^Tc dT · K/T² · exp(−A(T))
//
// where A(T) is the thermal decay exponent (S₃/T with its prefactor
// correction) and ln K is Options.PrefactorLog. The survival probability
// is exp(−I).
//
// Grid: Resolution intervals of width Tc/Resolution. The integrand is
// taken as zero at T = Tc (degenerate vacua) and at T = 0 (infinite
// exponent); the interior points are evaluated and accumulated with the
// trapezoid rule from Tc downwards. The cumulative integral never
// decreases, and the walk stops as soon as it exceeds
// −ln(SurvivalProbabilityThreshold).
//
// With Workers > 1 the interior actions are evaluated up front on an
// errgroup limited to Workers goroutines; the accumulation is identical.
//
// Errors (sentinel):
//   - ErrBadOptions             : inconsistent Options.
//   - ErrBadCriticalTemperature : Tc not finite and positive.
package thermal
