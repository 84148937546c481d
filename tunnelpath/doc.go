// Package tunnelpath turns a finite parameter vector (the "genome" an
// optimizer varies) into a smooth trajectory through field space between a
// fixed false vacuum and a fixed true vacuum.
//
// 🚀 What is a tunnel path?
//
//	A map a ↦ f(a) from the auxiliary coordinate a ∈ [0,1] into field space
//	with f(0) = false vacuum and f(1) = true vacuum. The bounce action is
//	computed along f, so minimizing over the parameters searches for the
//	least-action escape route.
//
// ✨ Variants (a closed set, see Kind):
//
//   - LinearNodes    — straight segments through intermediate nodes,
//     parameterized by arc-length fraction.
//   - QuadraticNodes — C¹ quadratic segments through the same nodes.
//   - Polynomial     — one polynomial per field; the field with the largest
//     false→true separation is the linear reference, every other field's
//     top coefficient is implicit so that f(1) lands on the true vacuum.
//
// Node placement (NodePlacement) decides where the node coordinates live:
// on hyperplanes parallel to each other and orthogonal to the false→true
// line, or on successively bisecting hyperplanes.
//
// ⚙️ Usage:
//
//	fac, err := tunnelpath.NewFactory("NodesOnParallelPlanes", fv, tv,
//	    tunnelpath.WithNodes(3), tunnelpath.WithSegmentShape(tunnelpath.QuadraticNodes))
//	p, err := fac.New(fac.StraightLineParameters(), 0)
//	x := p.FieldAt(0.5)
//
// Errors (sentinel, ConfigurationError class):
//
//	– ErrUnknownKind       unrecognized parameterization type string.
//	– ErrParameterCount    parameter vector length does not match the factory.
//	– ErrBadDegree         polynomial degree < 1 or negative node count.
//	– field.ErrDimensionMismatch  endpoints disagree on the number of fields.
//
// All paths are immutable after construction and safe for concurrent use.
package tunnelpath
