// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/utils"
)

// chunkFrames is how many frames are converted per encoder write.
const chunkFrames = 4096

// maxEmptyReads bounds consecutive (0, nil) reads from a source.
const maxEmptyReads = 100

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// Encode writes src to w as integer PCM with the given bit depth, using the
// source's own sample rate and channel count. It returns the number of frames
// written. w must be seekable because the RIFF sizes are patched at the end.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) (int64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}

	channels := src.Channels()
	if channels <= 0 {
		return 0, audio.ErrNoChannels
	}

	// 8-bit WAV samples are unsigned.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	enc := gowav.NewEncoder(w, src.SampleRate(), bitDepth, channels, wavFormatPCM)

	floats := make([]float32, chunkFrames*channels)
	buf := &goaudio.IntBuffer{
		Data:           make([]int, len(floats)),
		Format:         &goaudio.Format{SampleRate: src.SampleRate(), NumChannels: channels},
		SourceBitDepth: bitDepth,
	}

	var frames int64
	pending := 0 // samples of a partial frame carried to the front of floats
	empty := 0

	for {
		n, err := src.ReadSamples(floats[pending:])
		if n == 0 && err == nil {
			if empty++; empty >= maxEmptyReads {
				return frames, io.ErrNoProgress
			}
			continue
		}
		empty = 0
		n += pending

		whole := n - n%channels
		if whole > 0 {
			for i := range whole {
				buf.Data[i] = utils.ToPCM(floats[i], bitDepth) + offset
			}

			chunk := &goaudio.IntBuffer{Data: buf.Data[:whole], Format: buf.Format, SourceBitDepth: bitDepth}
			if werr := enc.Write(chunk); werr != nil {
				return frames, fmt.Errorf("write wav: %w", werr)
			}
			frames += int64(whole / channels)
		}

		pending = copy(floats, floats[whole:n])

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frames, fmt.Errorf("read source: %w", err)
		}
	}

	// The header is only emitted by Write; an empty source still needs one.
	if frames == 0 {
		empty := &goaudio.IntBuffer{Data: buf.Data[:0], Format: buf.Format, SourceBitDepth: bitDepth}
		if err := enc.Write(empty); err != nil {
			return 0, fmt.Errorf("write wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("finalize wav: %w", err)
	}

	return frames, nil
}
