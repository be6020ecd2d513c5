// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/formats/wav"
	"github.com/ik5/wavbatch/internal/audiotest"
	"github.com/ik5/wavbatch/toolchain"
)

var (
	errDecode      = errors.New("decode failed")
	errSkipDefault = errors.New("skip default output")
)

// fakeToolchain writes a short silent WAV in the requested layout. Sources
// whose base name starts with "bad" fail.
type fakeToolchain struct {
	mu        sync.Mutex
	probeErr  error
	transcode func(ctx context.Context, src, dst string) error
	seen      []string
	dsts      []string
}

func (f *fakeToolchain) Name() string { return "fake" }

func (f *fakeToolchain) Probe(context.Context) error { return f.probeErr }

func (f *fakeToolchain) Transcode(ctx context.Context, src, dst string, target audio.Target) error {
	f.mu.Lock()
	f.seen = append(f.seen, filepath.Base(src))
	f.dsts = append(f.dsts, dst)
	f.mu.Unlock()

	if f.transcode != nil {
		err := f.transcode(ctx, src, dst)
		if errors.Is(err, errSkipDefault) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if strings.HasPrefix(filepath.Base(src), "bad") {
		return errDecode
	}

	return writeSilence(dst, target)
}

func writeSilence(dst string, target audio.Target) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	src := audiotest.NewSilence(target.SampleRate, target.Channels, target.SampleRate/10)
	if _, err := wav.Encode(out, src, target.BitDepth); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

var _ toolchain.Toolchain = (*fakeToolchain)(nil)

// recordingReporter keeps every event as a short string.
type recordingReporter struct {
	events []string
	runIDs map[string]bool
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{runIDs: map[string]bool{}}
}

func (r *recordingReporter) Begin(rep *Report, files int) {
	r.runIDs[rep.RunID] = true
	r.events = append(r.events, "begin")
}

func (r *recordingReporter) Started(job Job) {
	r.runIDs[job.RunID] = true
	r.events = append(r.events, "start "+filepath.Base(job.Source))
}

func (r *recordingReporter) Succeeded(res Result) {
	r.events = append(r.events, "ok "+filepath.Base(res.Source))
}

func (r *recordingReporter) Failed(res Result) {
	r.events = append(r.events, "fail "+filepath.Base(res.Source))
}

func (r *recordingReporter) Finished(*Report) {
	r.events = append(r.events, "finish")
}
