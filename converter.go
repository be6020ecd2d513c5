// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/toolchain"
)

const folderPerm = 0o755

// Converter runs batches with one toolchain. The zero value is not usable;
// set at least Toolchain, or use NewConverter.
type Converter struct {
	Toolchain toolchain.Toolchain
	// Target defaults to audio.SpeechTarget.
	Target audio.Target
	// Reporter defaults to a LogReporter on slog.Default.
	Reporter Reporter
	// FileTimeout bounds a single transcode. Zero means no limit.
	FileTimeout time.Duration

	newRunID func() string
	now      func() time.Time
}

// NewConverter returns a Converter that logs to logger.
func NewConverter(tc toolchain.Toolchain, logger *slog.Logger) *Converter {
	return &Converter{
		Toolchain: tc,
		Target:    audio.SpeechTarget,
		Reporter:  NewLogReporter(logger),
	}
}

// Convert converts with tc and logs through slog.Default.
func Convert(ctx context.Context, tc toolchain.Toolchain, inputFolder, outputFolder string) (*Report, error) {
	return NewConverter(tc, nil).Convert(ctx, inputFolder, outputFolder)
}

// Convert processes every MP3 file directly inside inputFolder and writes
// the WAV files into outputFolder, creating it when needed.
//
// The returned error is fatal for the batch: a missing input folder, an
// output folder that cannot be created, an unavailable toolchain or a
// cancelled ctx. Per-file failures are only recorded in the Report. On a
// fatal error before the first file the report is nil and nothing has been
// written.
func (c *Converter) Convert(ctx context.Context, inputFolder, outputFolder string) (*Report, error) {
	if c.Toolchain == nil {
		return nil, errors.New("wavbatch: converter has no toolchain")
	}

	target := c.Target
	if target == (audio.Target{}) {
		target = audio.SpeechTarget
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	if err := checkInput(inputFolder); err != nil {
		return nil, err
	}

	if err := c.Toolchain.Probe(ctx); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputFolder, folderPerm); err != nil {
		return nil, &FolderError{Kind: ErrOutputFolder, Path: outputFolder, Err: err}
	}

	names, err := ListSources(inputFolder)
	if err != nil {
		return nil, &FolderError{Kind: ErrInputFolder, Path: inputFolder, Err: err}
	}

	rep := &Report{
		RunID:        c.runID(),
		Toolchain:    c.Toolchain.Name(),
		ToolVersion:  toolchain.Version(c.Toolchain),
		InputFolder:  inputFolder,
		OutputFolder: outputFolder,
		Started:      c.clock(),
		Results:      make([]Result, 0, len(names)),
	}

	reporter := c.reporter()
	reporter.Begin(rep, len(names))

	defer func() {
		rep.Elapsed = c.clock().Sub(rep.Started)
		reporter.Finished(rep)
	}()

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		job := Job{
			RunID:  rep.RunID,
			Index:  i + 1,
			Total:  len(names),
			Source: filepath.Join(inputFolder, name),
			Output: filepath.Join(outputFolder, OutputName(name)),
		}

		res := c.convertOne(ctx, job, target)
		rep.Results = append(rep.Results, res)

		if res.OK() {
			reporter.Succeeded(res)
			continue
		}

		reporter.Failed(res)

		// The failure was the interruption itself; stop here.
		if err := ctx.Err(); err != nil {
			return rep, err
		}
	}

	return rep, nil
}

func (c *Converter) convertOne(ctx context.Context, job Job, target audio.Target) Result {
	c.reporter().Started(job)
	start := c.clock()

	if c.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.FileTimeout)
		defer cancel()
	}

	err := c.transcode(ctx, job, target)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && c.FileTimeout > 0 {
		err = fmt.Errorf("timed out after %s: %w", c.FileTimeout, err)
	}

	return Result{Job: job, Err: err, Elapsed: c.clock().Sub(start)}
}

func (c *Converter) transcode(ctx context.Context, job Job, target audio.Target) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: %v", ErrToolchainPanic, c.Toolchain.Name(), p)
		}
	}()

	return transcodeAtomic(ctx, c.Toolchain, job.Source, job.Output, target)
}

func checkInput(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return &FolderError{Kind: ErrInputFolder, Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &FolderError{Kind: ErrInputFolder, Path: dir, Err: errors.New("not a directory")}
	}

	return nil
}

func (c *Converter) reporter() Reporter {
	if c.Reporter == nil {
		c.Reporter = NewLogReporter(nil)
	}

	return c.Reporter
}

func (c *Converter) runID() string {
	if c.newRunID != nil {
		return c.newRunID()
	}

	// v7 IDs sort by start time.
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

func (c *Converter) clock() time.Time {
	if c.now != nil {
		return c.now()
	}

	return time.Now()
}
