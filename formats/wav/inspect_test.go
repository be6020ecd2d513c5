// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/internal/audiotest"
)

func TestInspect_NotWav(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("just some text, certainly not RIFF")},
		{"mp3", audiotest.CorruptMP3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := audiotest.WriteFile(t, dir, tt.name+".wav", tt.data)
			if _, err := Inspect(path); !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Inspect() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestInspect_Missing(t *testing.T) {
	t.Parallel()

	_, err := Inspect(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Inspect() error = %v, want fs.ErrNotExist", err)
	}
}

func TestHeader_Matches(t *testing.T) {
	t.Parallel()

	ok := Header{SampleRate: 16000, Channels: 1, BitDepth: 16, PCM: true}

	tests := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{"match", ok, false},
		{"float", Header{SampleRate: 16000, Channels: 1, BitDepth: 16}, true},
		{"rate", Header{SampleRate: 44100, Channels: 1, BitDepth: 16, PCM: true}, true},
		{"channels", Header{SampleRate: 16000, Channels: 2, BitDepth: 16, PCM: true}, true},
		{"depth", Header{SampleRate: 16000, Channels: 1, BitDepth: 24, PCM: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.header.Matches(audio.SpeechTarget)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Matches() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFormatMismatch) {
				t.Errorf("error %v does not wrap ErrFormatMismatch", err)
			}
		})
	}
}
