// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavbatch/audio"
)

// Header is the format information of a WAV file.
type Header struct {
	SampleRate int
	Channels   int
	BitDepth   int
	PCM        bool // WAVE_FORMAT_PCM (integer samples)
	Duration   time.Duration
}

// Inspect reads the header of the WAV file at path.
func Inspect(path string) (Header, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Header{}, fmt.Errorf("%w: %s", ErrNotWavFile, path)
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return Header{}, fmt.Errorf("read wav header: %w", err)
	}

	h := Header{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		PCM:        dec.WavAudioFormat == wavFormatPCM,
	}

	// Duration from the data chunk size; the RIFF size also counts headers.
	if err := dec.FwdToPCM(); err != nil {
		return h, fmt.Errorf("locate wav data: %w", err)
	}
	if bytesPerSec := h.SampleRate * h.Channels * h.BitDepth / 8; bytesPerSec > 0 {
		h.Duration = time.Duration(int64(dec.PCMSize) * int64(time.Second) / int64(bytesPerSec))
	}

	return h, nil
}

// Matches reports whether h is integer PCM in the layout of t. The returned
// error wraps ErrFormatMismatch and names the first difference.
func (h Header) Matches(t audio.Target) error {
	switch {
	case !h.PCM:
		return fmt.Errorf("%w: not integer PCM", ErrFormatMismatch)
	case h.SampleRate != t.SampleRate:
		return fmt.Errorf("%w: sample rate %d, want %d", ErrFormatMismatch, h.SampleRate, t.SampleRate)
	case h.Channels != t.Channels:
		return fmt.Errorf("%w: %d channels, want %d", ErrFormatMismatch, h.Channels, t.Channels)
	case h.BitDepth != t.BitDepth:
		return fmt.Errorf("%w: %d bit, want %d", ErrFormatMismatch, h.BitDepth, t.BitDepth)
	}

	return nil
}

func (h Header) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit, %s", h.SampleRate, h.Channels, h.BitDepth, h.Duration)
}
