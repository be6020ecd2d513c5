// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ik5/wavbatch/audio"
)

// Toolchain converts one MP3 file into a PCM WAV file.
type Toolchain interface {
	// Name identifies the toolchain in logs.
	Name() string
	// Probe checks that the toolchain can run. Failures wrap ErrUnavailable.
	Probe(ctx context.Context) error
	// Transcode reads src and writes dst in the target layout, replacing
	// dst if it exists.
	Transcode(ctx context.Context, src, dst string, target audio.Target) error
}

// Kind selects a toolchain implementation.
type Kind string

const (
	KindFFmpeg Kind = "ffmpeg"
	KindSoX    Kind = "sox"
	KindNative Kind = "native"
	KindAuto   Kind = "auto"
)

// Kinds lists every accepted Kind, default first.
var Kinds = []Kind{KindFFmpeg, KindSoX, KindNative, KindAuto}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Paths overrides the binaries used by the external toolchains. Empty
// fields fall back to the names looked up on PATH.
type Paths struct {
	FFmpeg string
	SoX    string
}

// New builds the toolchain for kind.
func New(kind Kind, paths Paths) (Toolchain, error) {
	switch kind {
	case KindFFmpeg:
		return NewFFmpeg(paths.FFmpeg), nil
	case KindSoX:
		return NewSoX(paths.SoX), nil
	case KindNative:
		return NewNative(), nil
	case KindAuto:
		return NewAuto(NewFFmpeg(paths.FFmpeg), NewSoX(paths.SoX), NewNative()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// Version returns the version banner of tc's tool after a successful Probe,
// or "" when tc has none. For an Auto it answers for the chosen toolchain.
func Version(tc Toolchain) string {
	if a, ok := tc.(*Auto); ok {
		tc = a.Chosen()
	}
	if v, ok := tc.(interface{ Version() string }); ok {
		return v.Version()
	}

	return ""
}
