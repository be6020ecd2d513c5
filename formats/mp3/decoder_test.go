// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/wavbatch/internal/audiotest"
)

// fakeStream serves int16 samples as little-endian bytes, at most chunk
// bytes per Read.
type fakeStream struct {
	rate  int
	data  []byte
	chunk int
	err   error
}

func newFakeStream(rate, chunk int, samples ...int16) *fakeStream {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	return &fakeStream{rate: rate, data: data, chunk: chunk}
}

func (f *fakeStream) SampleRate() int { return f.rate }

func (f *fakeStream) Read(p []byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := min(len(p), len(f.data))
	if f.chunk > 0 {
		n = min(n, f.chunk)
	}
	copy(p, f.data[:n])
	f.data = f.data[n:]

	return n, nil
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestDecoder_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not MP3 data")},
		{"fake id3", audiotest.CorruptMP3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakeStream(44100, 0), rate: 44100}
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 0}
	src := &source{dec: newFakeStream(8000, 0, in...), rate: 8000}

	dst := make([]float32, len(in))
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(in) {
		t.Fatalf("n = %d, want %d", n, len(in))
	}

	for i, s := range in {
		if want := float32(s) / 32768; dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("after end: (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_OddByteReads(t *testing.T) {
	t.Parallel()

	in := []int16{1000, -1000, 2000, -2000, 3000, -3000}
	src := &source{dec: newFakeStream(8000, 3, in...), rate: 8000}

	var got []float32
	buf := make([]float32, 4)
	for range 100 {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(got) != len(in) {
		t.Fatalf("got %d samples, want %d", len(got), len(in))
	}
	for i, s := range in {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_WrapsDecodeErrors(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(8000, 0)
	stream.err = io.ErrUnexpectedEOF
	src := &source{dec: stream, rate: 8000}

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want wrapped ErrUnexpectedEOF", err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakeStream(8000, 0, 1, 2), rate: 8000}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v)", n, err)
	}
}

func TestSource_CloseClosesReader(t *testing.T) {
	t.Parallel()

	rc := &closeRecorder{Reader: bytes.NewReader(nil)}
	src := &source{dec: newFakeStream(8000, 0), rate: 8000, closer: rc}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	if !rc.closed {
		t.Error("underlying reader not closed")
	}
}

func decodeAll(t *testing.T, src interface {
	ReadSamples([]float32) (int, error)
}) (int, error) {
	t.Helper()

	total := 0
	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func TestDecoder_Fixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fixture string
		rate    int
		frames  int
	}{
		{audiotest.StereoMP3, 44100, 24 * 1152},
		{audiotest.MonoMP3, 22050, 40 * 576},
		{audiotest.SilentMP3, 44100, 20 * 1152},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			t.Parallel()

			path := audiotest.WriteMP3(t, tt.fixture, t.TempDir(), "in.mp3")
			f, err := os.Open(filepath.Clean(path))
			if err != nil {
				t.Fatal(err)
			}

			src, err := (Decoder{}).Decode(f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			if src.SampleRate() != tt.rate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.rate)
			}

			total, err := decodeAll(t, src)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if frames := total / channels; frames != tt.frames {
				t.Errorf("decoded %d frames, want %d", frames, tt.frames)
			}
		})
	}
}

func TestDecoder_MalformedFrameAtStart(t *testing.T) {
	t.Parallel()

	data := audiotest.MP3(t, audiotest.MixedBlockHeadMP3)

	_, err := (Decoder{}).Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("Decode() error = %v, want ErrMalformedFrame", err)
	}
}

func TestDecoder_MalformedFrameMidStream(t *testing.T) {
	t.Parallel()

	data := audiotest.MP3(t, audiotest.MixedBlockTailMP3)

	src, err := (Decoder{}).Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	total, err := decodeAll(t, src)
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("ReadSamples() error = %v, want ErrMalformedFrame", err)
	}
	if frames := total / channels; frames != 8*576 {
		t.Errorf("decoded %d frames before the bad one, want %d", frames, 8*576)
	}

	// The stream stays failed.
	if _, err := src.ReadSamples(make([]float32, 16)); !errors.Is(err, ErrMalformedFrame) {
		t.Errorf("second ReadSamples() error = %v, want ErrMalformedFrame", err)
	}
}

type panicStream struct{}

func (panicStream) SampleRate() int { return 8000 }

func (panicStream) Read([]byte) (int, error) {
	panic("runtime error: index out of range [38] with length 38")
}

func TestSource_RecoversDecoderPanic(t *testing.T) {
	t.Parallel()

	src := &source{dec: panicStream{}, rate: 8000}

	n, err := src.ReadSamples(make([]float32, 8))
	if n != 0 {
		t.Errorf("ReadSamples() n = %d, want 0", n)
	}
	if !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("ReadSamples() error = %v, want ErrMalformedFrame", err)
	}
	if !strings.Contains(err.Error(), "index out of range") {
		t.Errorf("error %q does not carry the panic value", err)
	}
}
