// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources and fixture helpers shared
// by the tests of this module.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by sources built with NewFailingSource.
var ErrInjected = errors.New("audiotest: injected failure")

// Generator returns the value of channel ch at frame index frame.
type Generator func(frame, ch int) float32

// Source is a finite, deterministic audio.Source.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	gen      Generator

	failAt int // frame index at which ReadSamples fails, -1 for never
	closed bool
}

func New(rate, channels, frames int, gen Generator) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, gen: gen, failAt: -1}
}

func NewSilence(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

func NewConstant(rate, channels, frames int, v float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return v })
}

// NewSine yields the same sine tone on every channel.
func NewSine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// NewPerChannel yields a constant per channel: values[ch].
func NewPerChannel(rate, frames int, values ...float32) *Source {
	return New(rate, len(values), frames, func(_, ch int) float32 { return values[ch] })
}

// NewFailingSource behaves like NewSine but fails with ErrInjected once
// failAt frames have been delivered.
func NewFailingSource(rate, channels, frames, failAt int) *Source {
	s := NewSine(rate, channels, frames, 440)
	s.failAt = failAt
	return s
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Closed() bool    { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, ErrInjected
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.failAt >= 0 {
		n = min(n, s.failAt-s.pos)
	}

	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.gen(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
