// Package svf provides a second-order topology-preserving transform (TPT)
// state-variable filter with switchable low-pass, band-pass and high-pass
// outputs.
//
// The filter is built for per-sample modulation: cutoff and resonance
// setters never fail and clamp into a stable range, and changing the output
// mode keeps the integrator state so switching does not click.
package svf
