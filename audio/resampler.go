// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"

	"github.com/ik5/wavbatch/utils"
)

// Resampler converts a Source to another sample rate with Catmull-Rom cubic
// interpolation. The channel count is preserved. When downsampling, incoming
// frames go through a one-pole low-pass filter near the new Nyquist
// frequency to tame aliasing.
type Resampler struct {
	src      Source
	frames   *frameReader
	dstRate  int
	channels int
	step     float64 // source frames consumed per output frame

	// window holds the frames at source index idx-1, idx, idx+1, idx+2.
	window [4][]float32
	idx    int     // source index of window[1]
	frac   float64 // position between window[1] and window[2]
	read   int     // real source frames read so far
	primed bool
	done   bool // source exhausted, window tail is padding

	lowpass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()
	r := &Resampler{
		src:      src,
		frames:   newFrameReader(src, 1024),
		dstRate:  dstRate,
		channels: ch,
		step:     float64(src.SampleRate()) / float64(dstRate),
		state:    make([]float32, ch),
	}
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}

	if r.step > 1 {
		r.lowpass = true
		// RC low-pass with its cutoff at 90% of the destination Nyquist.
		cutoff := 0.45 * float64(dstRate)
		dt := 1 / float64(src.SampleRate())
		rc := 1 / (2 * math.Pi * cutoff)
		r.alpha = float32(dt / (rc + dt))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) Close() error    { return r.src.Close() }

// ReadSamples writes resampled interleaved samples into dst, whose length
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.frac >= 1 {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.frac--
		}

		// Only emit while window[1] is a real source frame.
		if r.done && r.idx >= r.read {
			return written * r.channels, io.EOF
		}

		t := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], t)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}

// prime fills the initial window, duplicating the first frame as the
// left neighbour. It returns false when the source holds no frames.
func (r *Resampler) prime() (bool, error) {
	ok, err := r.pull(r.window[1])
	if err != nil || !ok {
		return false, err
	}
	copy(r.window[0], r.window[1])

	for i := 2; i < len(r.window); i++ {
		if ok, err = r.pull(r.window[i]); err != nil {
			return false, err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
	}
	r.primed = true

	return true, nil
}

// advance slides the window one source frame to the right.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	r.idx++

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}

	return nil
}

// pull reads the next source frame into dst, applying the anti-alias filter.
func (r *Resampler) pull(dst []float32) (bool, error) {
	if r.done {
		return false, nil
	}

	ok, err := r.frames.next(dst)
	if err != nil {
		return false, err
	}
	if !ok {
		r.done = true
		return false, nil
	}
	if r.lowpass {
		if r.read == 0 {
			// Seed the filter with the first frame to avoid a fade-in.
			copy(r.state, dst)
		}
		for c := range dst {
			r.state[c] += r.alpha * (dst[c] - r.state[c])
			dst[c] = r.state[c]
		}
	}
	r.read++

	return true, nil
}
