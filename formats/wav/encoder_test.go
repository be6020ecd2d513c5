// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/internal/audiotest"
)

func encodeToFile(t *testing.T, src audio.Source, bitDepth int) (string, int64) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	frames, err := Encode(f, src, bitDepth)
	if cerr := f.Close(); cerr != nil {
		t.Fatal(cerr)
	}
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	return path, frames
}

func TestEncode_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
		bitDepth int
	}{
		{"speech", 16000, 1, 16000, 16},
		{"stereo cd", 44100, 2, 4410, 16},
		{"24 bit", 48000, 2, 480, 24},
		{"odd chunk", 8000, 1, chunkFrames + 17, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSine(tt.rate, tt.channels, tt.frames, 440)
			path, frames := encodeToFile(t, src, tt.bitDepth)

			if frames != int64(tt.frames) {
				t.Errorf("frames = %d, want %d", frames, tt.frames)
			}

			h, err := Inspect(path)
			if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}

			want := audio.Target{SampleRate: tt.rate, Channels: tt.channels, BitDepth: tt.bitDepth}
			if err := h.Matches(want); err != nil {
				t.Errorf("Matches() = %v", err)
			}

			wantDur := time.Duration(tt.frames) * time.Second / time.Duration(tt.rate)
			if diff := h.Duration - wantDur; diff > time.Millisecond || diff < -time.Millisecond {
				t.Errorf("Duration = %v, want %v", h.Duration, wantDur)
			}
		})
	}
}

func TestEncode_SampleValues(t *testing.T) {
	t.Parallel()

	src := audiotest.NewPerChannel(8000, 10, 0.5, -0.25)
	path, _ := encodeToFile(t, src, 16)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf, err := gowav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if len(buf.Data) != 20 {
		t.Fatalf("got %d samples, want 20", len(buf.Data))
	}
	if buf.Data[0] != 16383 || buf.Data[1] != -8191 {
		t.Errorf("first frame = (%d, %d), want (16383, -8191)", buf.Data[0], buf.Data[1])
	}
}

func TestEncode_FullScale32(t *testing.T) {
	t.Parallel()

	src := audiotest.NewPerChannel(8000, 4, 1, -1)
	path, _ := encodeToFile(t, src, 32)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf, err := gowav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	// Full scale must not wrap around to the opposite sign.
	if buf.Data[0] != math.MaxInt32 || buf.Data[1] != -math.MaxInt32 {
		t.Errorf("first frame = (%d, %d), want (%d, %d)", buf.Data[0], buf.Data[1], math.MaxInt32, -math.MaxInt32)
	}
}

func TestEncode_EmptySource(t *testing.T) {
	t.Parallel()

	path, frames := encodeToFile(t, audiotest.NewSilence(16000, 1, 0), 16)
	if frames != 0 {
		t.Errorf("frames = %d, want 0", frames)
	}

	h, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if h.Duration != 0 {
		t.Errorf("Duration = %v, want 0", h.Duration)
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name     string
		src      audio.Source
		bitDepth int
		want     error
	}{
		{"bad depth", audiotest.NewSilence(8000, 1, 10), 12, ErrUnsupportedDepth},
		{"no channels", audiotest.NewSilence(8000, 0, 10), 16, audio.ErrNoChannels},
		{"source failure", audiotest.NewFailingSource(8000, 1, 10000, 5000), 16, audiotest.ErrInjected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.Create(filepath.Join(dir, tt.name+".wav"))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			if _, err := Encode(f, tt.src, tt.bitDepth); !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
