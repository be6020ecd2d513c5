// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner starts external programs. Tests substitute a fake.
type Runner interface {
	LookPath(file string) (string, error)
	// Run executes name with args and returns its stdout. On failure the
	// returned error is an *ExecError carrying stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A killed process reports "signal: killed"; the context says why.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		return stdout.Bytes(), &ExecError{
			Tool:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.Bytes(), nil
}

// external holds what FFmpeg and SoX share: a binary, a runner and the
// probe that checks both.
type external struct {
	name    string
	bin     string
	runner  Runner
	version string
}

// Version is the first line of the tool's version banner, known after a
// successful Probe.
func (e *external) Version() string { return e.version }

func (e *external) probe(ctx context.Context, versionArgs ...string) error {
	path, err := e.runner.LookPath(e.bin)
	if err != nil {
		return &UnavailableError{Tool: e.name, Err: err}
	}

	out, err := e.runner.Run(ctx, path, versionArgs...)
	if err != nil {
		return &UnavailableError{Tool: e.name, Err: err}
	}

	e.bin = path
	e.version = firstLine(out)

	return nil
}

// firstLine of a version banner, for logs.
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}

// operand prefixes a relative path with ./ so that a file name starting
// with "-" is not taken for an option, nor "name:" for an ffmpeg protocol.
func operand(path string) string {
	const sep = string(filepath.Separator)
	if filepath.IsAbs(path) || strings.HasPrefix(path, "."+sep) || strings.HasPrefix(path, ".."+sep) {
		return path
	}

	return "." + sep + path
}
