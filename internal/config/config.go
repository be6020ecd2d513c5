// SPDX-License-Identifier: EPL-2.0

// Package config holds the runtime settings of the wavbatch command:
// defaults, environment overrides, the two folder flags and the interactive
// prompts for folders that were not given.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ik5/wavbatch/internal/logging"
	"github.com/ik5/wavbatch/toolchain"
)

// Environment variables read by FromEnv.
const (
	EnvToolchain   = "WAVBATCH_TOOLCHAIN"
	EnvFFmpeg      = "WAVBATCH_FFMPEG"
	EnvSoX         = "WAVBATCH_SOX"
	EnvFileTimeout = "WAVBATCH_FILE_TIMEOUT"
	EnvLogLevel    = "WAVBATCH_LOG_LEVEL"
	EnvLogFormat   = "WAVBATCH_LOG_FORMAT"
)

var ErrMissingFolder = errors.New("folder path is empty")

// Config is populated by Default, then FromEnv, then ParseFlags and Resolve.
type Config struct {
	InputFolder  string
	OutputFolder string

	Toolchain   toolchain.Kind
	Paths       toolchain.Paths // binary overrides, empty = PATH lookup
	FileTimeout time.Duration   // 0 = no limit

	LogLevel  slog.Level
	LogFormat logging.Format
}

func Default() Config {
	return Config{
		Toolchain: toolchain.KindFFmpeg,
		LogLevel:  slog.LevelInfo,
		LogFormat: logging.FormatText,
	}
}

// FromEnv applies the WAVBATCH_* variables found through getenv (usually
// os.Getenv). Unset or empty variables keep the current value.
func (c *Config) FromEnv(getenv func(string) string) error {
	if v := getenv(EnvToolchain); v != "" {
		k, err := toolchain.ParseKind(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvToolchain, err)
		}
		c.Toolchain = k
	}

	if v := getenv(EnvFFmpeg); v != "" {
		c.Paths.FFmpeg = v
	}
	if v := getenv(EnvSoX); v != "" {
		c.Paths.SoX = v
	}

	if v := getenv(EnvFileTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFileTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("%s: negative duration %s", EnvFileTimeout, v)
		}
		c.FileTimeout = d
	}

	if v := getenv(EnvLogLevel); v != "" {
		l, err := logging.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = l
	}

	if v := getenv(EnvLogFormat); v != "" {
		f, err := logging.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogFormat, err)
		}
		c.LogFormat = f
	}

	return nil
}

// Validate requires both folders and a known toolchain.
func (c *Config) Validate() error {
	if c.InputFolder == "" {
		return fmt.Errorf("input %w", ErrMissingFolder)
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("output %w", ErrMissingFolder)
	}
	if _, err := toolchain.ParseKind(string(c.Toolchain)); err != nil {
		return err
	}

	return nil
}

// NormalizeDirArg strips trailing slashes. "/" stays as is.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return path
	}

	return strings.TrimRight(path, "/")
}
