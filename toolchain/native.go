// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/formats/mp3"
	"github.com/ik5/wavbatch/formats/wav"
)

// Native transcodes in process: go-mp3 decodes, the audio package resamples
// and remixes, go-audio/wav writes the result.
type Native struct {
	decoders *audio.Registry
}

func NewNative() *Native {
	reg := audio.NewRegistry()
	reg.Register("mp3", mp3.Decoder{})

	return &Native{decoders: reg}
}

func (*Native) Name() string { return string(KindNative) }

// Probe always succeeds; nothing outside the binary is needed.
func (*Native) Probe(context.Context) error { return nil }

func (n *Native) Transcode(ctx context.Context, src, dst string, target audio.Target) (err error) {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dec, ok := n.decoders.Lookup(src)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedInput, filepath.Ext(src))
	}

	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}

	decoded, err := dec.Decode(in)
	if err != nil {
		in.Close()
		return err
	}

	pipeline := audio.Normalize(&ctxSource{Source: decoded, ctx: ctx}, target)
	defer pipeline.Close()

	out, err := os.Create(filepath.Clean(dst))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if _, err := wav.Encode(out, pipeline, target.BitDepth); err != nil {
		return err
	}

	return nil
}

// ctxSource stops a decode when ctx is done.
type ctxSource struct {
	audio.Source
	ctx context.Context
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}

	return s.Source.ReadSamples(dst)
}
