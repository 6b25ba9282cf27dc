//go:build headless

package playback

import (
	"context"
	"errors"
	"io"
)

// ErrHeadless is returned by Open in builds without an audio backend.
var ErrHeadless = errors.New("playback: built without audio output (headless)")

// Output is unavailable in headless builds.
type Output struct{}

// Open always fails in headless builds.
func Open(int, io.Reader) (*Output, error) { return nil, ErrHeadless }

// Play does nothing.
func (o *Output) Play() {}

// Wait returns immediately.
func (o *Output) Wait(context.Context) error { return nil }

// Close does nothing.
func (o *Output) Close() error { return nil }
