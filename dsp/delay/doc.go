// Package delay provides a fixed-capacity circular delay line with
// fractional reads and a modulated feedback delay built on it.
//
// Buffers are allocated once at construction; Reset clears them in place so
// a stream restart never allocates.
package delay
