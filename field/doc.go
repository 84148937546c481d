// Package field defines the data model shared by every stage of the
// tunneling engine: points in field space, potential minima and the
// opaque potential-function contract.
//
// What lives here:
//
//   - Configuration — an ordered vector of field values, one per field
//     dimension. The dimensionality N is fixed for a given run.
//   - Minimum — a Configuration together with its potential value and the
//     temperature at which it was found. Minima are produced by an external
//     minimization layer and treated as immutable inputs.
//   - PotentialFunction — the only view the engine has of the physics:
//     V(fields, T), the number of fields, and a characteristic energy scale
//     for tunneling between two minima.
//   - ThermalPotential — an optional extension used by finite-temperature
//     strategies to locate the critical temperature and to track minima as
//     the temperature changes.
//
// Concurrency:
//
//	Configuration helpers never mutate their receiver unless documented
//	(AddScaledInPlace). PotentialFunction implementations must be safe for
//	concurrent use: the engine may evaluate independent paths or
//	temperatures on separate goroutines.
//
// Errors (sentinel):
//
//	– ErrEmptyConfiguration  a configuration with no fields.
//	– ErrDimensionMismatch   configurations or potentials disagree on N.
//	– ErrNonFinite           NaN or ±Inf in a configuration.
//	– ErrNilPotential        a nil PotentialFunction was supplied.
package field
