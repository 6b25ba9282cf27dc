// Package wavio reads and writes planar stereo WAV files.
package wavio

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ErrNotStereo is returned for files with more than two channels.
var ErrNotStereo = errors.New("wavio: only mono and stereo files are supported")

// ReadStereo decodes a WAV file into planar left/right buffers. Mono files
// are duplicated to both channels.
func ReadStereo(path string) (left, right []float64, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, nil, 0, fmt.Errorf("wavio: invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("wavio: %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, nil, 0, fmt.Errorf("wavio: invalid wav buffer: %s", path)
	}

	numCh := buf.Format.NumChannels
	if numCh > 2 {
		return nil, nil, 0, fmt.Errorf("%w: %s has %d channels", ErrNotStereo, path, numCh)
	}
	sampleRate = buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, nil, 0, fmt.Errorf("wavio: invalid sample rate %d: %s", sampleRate, path)
	}

	frames := len(buf.Data) / numCh
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		left[i] = float64(buf.Data[i*numCh])
		right[i] = float64(buf.Data[i*numCh+numCh-1])
	}

	return left, right, sampleRate, nil
}

// WriteStereo encodes planar left/right buffers as a 16-bit PCM WAV file.
func WriteStereo(path string, left, right []float64, sampleRate int) error {
	if len(left) != len(right) {
		return fmt.Errorf("wavio: channel length mismatch: %d != %d", len(left), len(right))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: invalid sample rate %d", sampleRate)
	}

	data := make([]float32, 2*len(left))
	for i := range left {
		data[2*i] = float32(left[i])
		data[2*i+1] = float32(right[i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 2,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: close %s: %w", path, err)
	}

	return nil
}
