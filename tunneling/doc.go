// Package tunneling exposes the single contract through which a caller
// asks for the decay of a false vacuum, and the strategies behind it.
//
// 🧩 Strategies
//
//	BounceAlongPathWithThreshold  in-core: path optimization (pathopt) at T=0
//	                              and a thermal survival integral (thermal)
//	External                      adapter around an external tunnelling tool
//
// Both implement Strategy and are interchangeable; New selects one from
// its configuration name. Strategy options are shared functional options;
// each strategy reads the ones it needs.
//
// 🌡 Modes
//
//	QuantumOnly         zero-temperature bounce only
//	ThermalOnly         thermal integral only
//	QuantumThenThermal  thermal skipped when the quantum survival is already
//	                    below the survival threshold
//	ThermalThenQuantum  quantum skipped when the thermal walk decayed
//
// 📉 Survival
//
//	quantum : P = exp(−exp(4·ln(age·scale) − S₄)), age in GeV⁻¹
//	thermal : P = exp(−∫ K/T²·exp(−A(T)) dT)
//
// The default zero-temperature action threshold is the S₄ at which P
// equals the survival threshold; below it the optimizer may stop early
// because the vacuum decays regardless.
//
// Every Compute opens an OpenTelemetry span on the configured tracer
// (otel.Tracer by default, a no-op until a provider is installed).
//
// Errors (sentinel):
//   - ErrUnknownStrategy     : New with an unknown name.
//   - ErrUnknownMode         : ParseMode with an unknown name.
//   - ErrNotThermal          : thermal mode without a critical temperature.
//   - ErrMissingTool         : External without a Tool.
//   - ErrExternalToolFailure : the external tool failed or its output is unusable.
package tunneling
