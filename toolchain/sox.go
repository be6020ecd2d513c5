// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/ik5/wavbatch/audio"
)

// SoX transcodes by running the sox binary. MP3 input needs a sox build
// with libmad or libmpg123.
type SoX struct {
	external
}

// NewSoX uses bin, or "sox" from PATH when bin is empty.
func NewSoX(bin string) *SoX {
	return NewSoXWithRunner(bin, ExecRunner{})
}

func NewSoXWithRunner(bin string, r Runner) *SoX {
	if bin == "" {
		bin = "sox"
	}

	return &SoX{external{name: string(KindSoX), bin: bin, runner: r}}
}

func (s *SoX) Name() string { return s.name }

// Probe finds the binary, reads its version and checks that the build
// lists mp3 among its file formats.
func (s *SoX) Probe(ctx context.Context) error {
	if err := s.probe(ctx, "--version"); err != nil {
		return err
	}

	// Some builds exit non-zero from -h but still print the listing.
	help, err := s.runner.Run(ctx, s.bin, "-h")
	if soxReadsMP3(help) {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return &UnavailableError{Tool: s.name, Err: errors.Join(ErrNoMP3Support, err)}
}

// soxReadsMP3 looks for mp3 in the "AUDIO FILE FORMATS:" line of sox -h.
func soxReadsMP3(help []byte) bool {
	for line := range strings.Lines(string(help)) {
		formats, ok := strings.CutPrefix(strings.TrimSpace(line), "AUDIO FILE FORMATS:")
		if ok {
			return slices.Contains(strings.Fields(formats), "mp3")
		}
	}

	return false
}

func (s *SoX) Transcode(ctx context.Context, src, dst string, target audio.Target) error {
	args, err := soxArgs(src, dst, target)
	if err != nil {
		return err
	}

	_, err = s.runner.Run(ctx, s.bin, args...)

	return err
}

func soxArgs(src, dst string, t audio.Target) ([]string, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	encoding := "signed-integer"
	if t.BitDepth == 8 {
		encoding = "unsigned-integer"
	}

	return []string{
		"-q",
		"-t", "mp3", operand(src),
		"-t", "wav",
		"-e", encoding,
		"-b", strconv.Itoa(t.BitDepth),
		"-c", strconv.Itoa(t.Channels),
		"-r", strconv.Itoa(t.SampleRate),
		operand(dst),
	}, nil
}
