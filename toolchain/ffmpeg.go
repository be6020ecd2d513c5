// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ik5/wavbatch/audio"
)

// FFmpeg transcodes by running the ffmpeg binary.
type FFmpeg struct {
	external
}

// NewFFmpeg uses bin, or "ffmpeg" from PATH when bin is empty.
func NewFFmpeg(bin string) *FFmpeg {
	return NewFFmpegWithRunner(bin, ExecRunner{})
}

func NewFFmpegWithRunner(bin string, r Runner) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}

	return &FFmpeg{external{name: string(KindFFmpeg), bin: bin, runner: r}}
}

func (f *FFmpeg) Name() string { return f.name }

func (f *FFmpeg) Probe(ctx context.Context) error {
	return f.probe(ctx, "-hide_banner", "-version")
}

func (f *FFmpeg) Transcode(ctx context.Context, src, dst string, target audio.Target) error {
	args, err := ffmpegArgs(src, dst, target)
	if err != nil {
		return err
	}

	_, err = f.runner.Run(ctx, f.bin, args...)

	return err
}

func ffmpegArgs(src, dst string, t audio.Target) ([]string, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	var codec string
	switch t.BitDepth {
	case 8:
		codec = "pcm_u8"
	case 16:
		codec = "pcm_s16le"
	case 24:
		codec = "pcm_s24le"
	case 32:
		codec = "pcm_s32le"
	default:
		return nil, fmt.Errorf("ffmpeg: no PCM codec for %d bit", t.BitDepth)
	}

	return []string{
		"-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", operand(src),
		"-vn",
		"-map_metadata", "-1",
		"-ac", strconv.Itoa(t.Channels),
		"-ar", strconv.Itoa(t.SampleRate),
		"-c:a", codec,
		"-f", "wav",
		operand(dst),
	}, nil
}
