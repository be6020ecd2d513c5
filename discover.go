// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	SourceExt = ".mp3"
	OutputExt = ".wav"
)

// IsSource reports whether name ends in .mp3, in any letter case, and has
// something before the extension.
func IsSource(name string) bool {
	return len(name) > len(SourceExt) &&
		strings.EqualFold(name[len(name)-len(SourceExt):], SourceExt)
}

// OutputName replaces the source extension of name with .wav. Names that
// are not sources get .wav appended.
func OutputName(name string) string {
	if !IsSource(name) {
		return name + OutputExt
	}

	return name[:len(name)-len(SourceExt)] + OutputExt
}

// ListSources returns the names of the MP3 files directly inside dir,
// sorted. Subdirectories are not entered. Symlinks count when they resolve
// to a regular file.
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !IsSource(e.Name()) {
			continue
		}

		mode := e.Type()
		if mode&os.ModeSymlink != 0 {
			fi, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil {
				continue // dangling
			}
			mode = fi.Mode()
		}
		if !mode.IsRegular() {
			continue
		}

		names = append(names, e.Name())
	}

	slices.Sort(names)

	return names, nil
}
