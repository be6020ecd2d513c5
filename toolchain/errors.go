// SPDX-License-Identifier: EPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable      = errors.New("codec toolchain unavailable")
	ErrUnknownKind      = errors.New("unknown toolchain")
	ErrUnsupportedInput = errors.New("unsupported input format")
	ErrNoMP3Support     = errors.New("built without mp3 support")
)

// UnavailableError reports a toolchain that cannot run on this host.
// It matches ErrUnavailable with errors.Is.
type UnavailableError struct {
	Tool string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not available: %v", e.Tool, e.Err)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// Guidance is the text shown to a user who has to install the tool.
func (e *UnavailableError) Guidance() string {
	switch e.Tool {
	case string(KindFFmpeg):
		return installHelp("FFmpeg", "ffmpeg", "https://ffmpeg.org/download.html")
	case string(KindSoX):
		if errors.Is(e.Err, ErrNoMP3Support) {
			return "SoX is installed but cannot read MP3. Please install its MP3 handler:\n" +
				"  Debian/Ubuntu:         sudo apt install libsox-fmt-mp3\n" +
				"Or use FFmpeg instead: WAVBATCH_TOOLCHAIN=ffmpeg"
		}
		return installHelp("SoX", "sox", "https://sourceforge.net/projects/sox/files/sox/")
	default:
		return fmt.Sprintf("No usable codec toolchain found (%s). Install FFmpeg or SoX, "+
			"or set WAVBATCH_TOOLCHAIN=native.", e.Tool)
	}
}

func installHelp(title, pkg, url string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is not installed. Please install %s:\n", title, title)
	fmt.Fprintf(&b, "  Debian/Ubuntu:         sudo apt install %s\n", pkg)
	fmt.Fprintf(&b, "  Fedora:                sudo dnf install %s\n", pkg)
	fmt.Fprintf(&b, "  macOS (Homebrew):      brew install %s\n", pkg)
	fmt.Fprintf(&b, "  Windows (Chocolatey):  choco install %s\n", pkg)
	fmt.Fprintf(&b, "Or download from: %s", url)

	return b.String()
}

// ExecError is a failed run of an external tool. Stderr holds what the tool
// printed, trimmed.
type ExecError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}

	return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ExecError) Unwrap() error { return e.Err }
