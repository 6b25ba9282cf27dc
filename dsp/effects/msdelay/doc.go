// Package msdelay implements a mid/side modulated feedback delay.
//
// A Processor converts each stereo frame to mid and side with a width
// control, runs both through an independent Channel (multimode filter, LFO
// modulated delay time, feedback delay with send mix) and converts back to
// stereo or leaves the result in mid/side form.
//
// Parameters are addressed by symbolic name (see Params) or ParamID. Writes
// through SetParameter and Set are lock-free and may come from any goroutine;
// the audio side picks up the latest value per parameter at each block.
// ProcessBlockEvents additionally accepts sample-accurate changes.
//
// Width, delay time, LFO speed and LFO depth move to new values over a short
// linear ramp; all other parameters change immediately.
package msdelay
