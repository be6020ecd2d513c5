// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated from a Source
// before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// frameReader pulls whole frames from a Source through an internal buffer so
// that consumers needing one frame at a time do not hit the Source per frame.
type frameReader struct {
	src      Source
	channels int
	buf      []float32
	pos, end int
	eof      bool
}

func newFrameReader(src Source, framesPerRead int) *frameReader {
	ch := src.Channels()

	return &frameReader{
		src:      src,
		channels: ch,
		buf:      make([]float32, framesPerRead*ch),
	}
}

// next copies one frame into dst. It returns false once the source is
// exhausted; err is non-nil only for real failures.
func (f *frameReader) next(dst []float32) (bool, error) {
	empty := 0
	for f.end-f.pos < f.channels {
		if f.eof {
			// A trailing partial frame cannot be interpolated; drop it.
			return false, nil
		}

		// Keep a partial frame at the front so channels stay aligned.
		rem := copy(f.buf, f.buf[f.pos:f.end])
		n, err := f.src.ReadSamples(f.buf[rem:])
		f.pos, f.end = 0, rem+n

		switch {
		case err == io.EOF:
			f.eof = true
		case err != nil:
			return false, fmt.Errorf("read source: %w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, f.buf[f.pos:f.pos+f.channels])
	f.pos += f.channels

	return true, nil
}
