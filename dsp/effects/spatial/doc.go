// Package spatial provides stereo and mid/side conversion.
//
// Encode and Decode are pure per-sample functions parameterized by a width
// factor and the input and output layouts (Stereo or MidSide). Codec wraps
// them for buffer processing. A Stereo to Stereo pass applies a loudness
// trim that depends on the width, see WidthTrimDB.
package spatial
