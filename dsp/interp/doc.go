// Package interp provides the fractional interpolation kernels used by the
// delay lines in this module.
//
// Available kernels, from cheapest to highest quality:
//
//   - [Linear2]:   2-point linear interpolation
//   - [Hermite4]:  4-point cubic Hermite
//   - [Lagrange4]: 4-point (3rd-order) Lagrange, the default
//
// [Mode] selects a kernel at construction time so the per-sample read does a
// single switch.
package interp
