// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/ik5/wavbatch/audio"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations instead of starting processes.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	missing bool   // LookPath fails
	out     []byte            // stdout of every Run
	outs    map[string][]byte // stdout by space-joined args, wins over out
	fail    error             // returned by Run when set
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.missing {
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}

	return "/usr/bin/" + file, nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call{name: name, args: args})
	if f.fail != nil {
		return nil, &ExecError{Tool: name, Args: args, Stderr: "boom", Err: f.fail}
	}
	if out, ok := f.outs[strings.Join(args, " ")]; ok {
		return out, nil
	}

	return f.out, nil
}

// stubToolchain is a Toolchain with a scripted Probe.
type stubToolchain struct {
	name       string
	probeErr   error
	probes     int
	transcodes int
}

func (s *stubToolchain) Name() string { return s.name }

func (s *stubToolchain) Probe(context.Context) error {
	s.probes++
	return s.probeErr
}

func (s *stubToolchain) Transcode(context.Context, string, string, audio.Target) error {
	s.transcodes++
	return nil
}

var errMissing = errors.New("missing")
