// Package core holds the stream configuration shared by every processor in
// this module and small numeric helpers used on the audio path.
package core
