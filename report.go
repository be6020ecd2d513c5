// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"
)

// Job is one source file of a batch.
type Job struct {
	RunID  string
	Index  int // 1-based position in the batch
	Total  int
	Source string // path of the MP3 file
	Output string // path of the WAV file
}

// Result is the outcome of a Job. Err is nil on success.
type Result struct {
	Job
	Err     error
	Elapsed time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

// Report describes a whole batch run.
type Report struct {
	RunID        string
	Toolchain    string
	ToolVersion  string // version banner of an external tool, if any
	InputFolder  string
	OutputFolder string
	Started      time.Time
	Elapsed      time.Duration
	Results      []Result
}

func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}

	return n
}

func (r *Report) Failed() int { return len(r.Results) - r.Converted() }

// Failures returns the results that did not convert.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}

	return out
}

// Reporter receives batch progress. Calls come from the converting
// goroutine, in order.
type Reporter interface {
	// Begin is called once the sources are known.
	Begin(rep *Report, files int)
	Started(job Job)
	Succeeded(res Result)
	Failed(res Result)
	// Finished is called after the last file, also when the batch was
	// interrupted.
	Finished(rep *Report)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Begin(*Report, int) {}
func (NopReporter) Started(Job)        {}
func (NopReporter) Succeeded(Result)   {}
func (NopReporter) Failed(Result)      {}
func (NopReporter) Finished(*Report)   {}

// LogReporter writes every event to a slog.Logger.
type LogReporter struct {
	Logger *slog.Logger
}

func NewLogReporter(l *slog.Logger) *LogReporter {
	if l == nil {
		l = slog.Default()
	}

	return &LogReporter{Logger: l}
}

func (r *LogReporter) Begin(rep *Report, files int) {
	l := r.Logger.With(slog.String("run_id", rep.RunID))
	if files == 0 {
		l.Warn("no MP3 files found", slog.String("input", rep.InputFolder))
		return
	}

	attrs := []any{
		slog.Int("files", files),
		slog.String("input", rep.InputFolder),
		slog.String("output", rep.OutputFolder),
		slog.String("toolchain", rep.Toolchain),
	}
	if rep.ToolVersion != "" {
		attrs = append(attrs, slog.String("version", rep.ToolVersion))
	}

	l.Info("converting", attrs...)
}

func (r *LogReporter) Started(job Job) {
	r.Logger.Info("processing",
		slog.String("run_id", job.RunID),
		slog.String("file", filepath.Base(job.Source)),
		slog.String("to", filepath.Base(job.Output)),
		slog.Int("n", job.Index),
		slog.Int("of", job.Total),
	)
}

func (r *LogReporter) Succeeded(res Result) {
	r.Logger.Info("saved",
		slog.String("run_id", res.RunID),
		slog.String("file", filepath.Base(res.Source)),
		slog.String("path", res.Output),
		slog.Duration("elapsed", res.Elapsed),
	)
}

func (r *LogReporter) Failed(res Result) {
	r.Logger.Error("conversion failed",
		slog.String("run_id", res.RunID),
		slog.String("file", filepath.Base(res.Source)),
		slog.Any("error", res.Err),
	)
}

func (r *LogReporter) Finished(rep *Report) {
	level := slog.LevelInfo
	if rep.Failed() > 0 {
		level = slog.LevelWarn
	}

	r.Logger.Log(context.Background(), level, "done",
		slog.String("run_id", rep.RunID),
		slog.Int("total", len(rep.Results)),
		slog.Int("converted", rep.Converted()),
		slog.Int("failed", rep.Failed()),
		slog.Duration("elapsed", rep.Elapsed),
	)
}
