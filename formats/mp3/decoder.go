// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavbatch/audio"
)

// channels is fixed: go-mp3 always emits interleaved stereo, duplicating
// mono streams into both channels.
const channels = 2

// pcmStream is the subset of gomp3.Decoder the source needs.
type pcmStream interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec    pcmStream
	rate   int
	closer io.Closer
	raw    []byte
	carry  int   // bytes of an incomplete sample kept at the start of raw
	err    error // sticky after a malformed frame
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return channels }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

// ReadSamples converts the decoder's 16-bit little-endian output to floats.
func (s *source) ReadSamples(dst []float32) (n int, err error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(dst) == 0 {
		return 0, nil
	}

	defer func() {
		if err != nil && errors.Is(err, ErrMalformedFrame) {
			s.err = err
		}
	}()
	defer recoverFrame(&err)

	need := len(dst) * 2
	if cap(s.raw) < need {
		grown := make([]byte, need)
		copy(grown, s.raw[:s.carry])
		s.raw = grown
	}
	s.raw = s.raw[:need]

	n, err = s.dec.Read(s.raw[s.carry:])
	n += s.carry

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.raw[2*i:]))) / 32768
	}

	// An odd byte count leaves half a sample for the next call.
	s.carry = n % 2
	if s.carry == 1 {
		s.raw[0] = s.raw[n-1]
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decode mp3: %w", err)
	}

	return samples, err
}

// Decoder decodes MP3 streams with github.com/hajimehoshi/go-mp3.
type Decoder struct{}

// Decode reads the first frame header from r. Invalid or empty input fails
// here rather than on the first ReadSamples. If r is an io.Closer it is
// closed together with the returned source.
func (Decoder) Decode(r io.Reader) (_ audio.Source, err error) {
	defer recoverFrame(&err)

	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	src := &source{
		dec:  dec,
		rate: dec.SampleRate(),
		raw:  make([]byte, 8192),
	}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}

	return src, nil
}
