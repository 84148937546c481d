// Package lvtunnel computes how fast a metastable field configuration
// (a false vacuum) decays into a deeper one by quantum or thermal
// tunnelling, using the bounce action along an optimized tunnel path.
//
// 🚀 What is lvtunnel?
//
//	A pure-Go engine that reduces the multi-field bounce problem to one
//	dimension and searches over paths:
//		• Paths: node-interpolated and polynomial paths from false to true vacuum
//		• Splines: piecewise-quadratic 1D potential along a path
//		• Bounce: undershoot/overshoot shooting, thin-wall approximation
//		• Optimization: Nelder–Mead over path parameters with early exit
//		• Thermal: survival probability integrated down from Tc
//		• Strategies: in-core bounce or an external tool behind one interface
//
// Packages:
//
//	field/      — field configurations, minima and the potential contract
//	potential/  — analytic test potentials (tilted, curved valley, thermal)
//	tunnelpath/ — tunnel path families and their string factory
//	spline/     — spline potential along a path
//	bounce/     — bounce action for one path
//	pathopt/    — minimize the action over paths
//	thermal/    — thermal survival integral
//	tunneling/  — strategies, modes and survival probabilities
//	cmd/lvtunnel — command-line front end (config, tracing, SQLite ledger)
//
// Quick sketch of a path in two fields:
//
//	 y
//	 │     ╭──●──╮
//	 │    ╱       ╲
//	 ●───╯         ╰───●   x
//	false             true
//
//	go get github.com/katalvlaran/lvtunnel
package lvtunnel
