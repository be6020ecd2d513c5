// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"embed"
	"os"
	"path/filepath"
	"testing"
)

// CorruptMP3 is content that no MP3 decoder accepts.
var CorruptMP3 = []byte("ID3 this is definitely not an mpeg audio stream")

//go:embed testdata/*.mp3
var mp3Fixtures embed.FS

// MP3 fixtures kept under testdata/. Durations are exact frame counts.
const (
	// StereoMP3 is 24 MPEG-1 frames of music, 44.1 kHz stereo, 0.627 s.
	StereoMP3 = "stereo_44100.mp3"
	// MonoMP3 is 40 MPEG-2 frames of speech, 22.05 kHz mono, 1.045 s.
	MonoMP3 = "mono_22050.mp3"
	// SilentMP3 is 20 empty MPEG-1 frames, 44.1 kHz mono, 0.522 s.
	SilentMP3 = "mono_44100.mp3"

	// MixedBlockHeadMP3 opens with an MPEG-2 frame that signals mixed short
	// blocks. go-mp3 panics on it while reading the first frame.
	MixedBlockHeadMP3 = "mixed_block_head.mp3"
	// MixedBlockTailMP3 has eight silent MPEG-2 frames before the same bad
	// frame, so the panic happens mid-stream.
	MixedBlockTailMP3 = "mixed_block_tail.mp3"
)

// Durations of the playable fixtures in seconds.
const (
	StereoMP3Seconds = 24 * 1152.0 / 44100
	MonoMP3Seconds   = 40 * 576.0 / 22050
	SilentMP3Seconds = 20 * 1152.0 / 44100
)

// WriteFile creates dir/name with data and returns its path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}

// MP3 returns the bytes of the named fixture.
func MP3(t testing.TB, fixture string) []byte {
	t.Helper()

	data, err := mp3Fixtures.ReadFile("testdata/" + fixture)
	if err != nil {
		t.Fatalf("read fixture %s: %v", fixture, err)
	}

	return data
}

// WriteMP3 copies the named fixture to dir/name and returns its path.
func WriteMP3(t testing.TB, fixture, dir, name string) string {
	t.Helper()

	return WriteFile(t, dir, name, MP3(t, fixture))
}
