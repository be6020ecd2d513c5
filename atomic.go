// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/wavbatch/audio"
	"github.com/ik5/wavbatch/formats/wav"
	"github.com/ik5/wavbatch/toolchain"
)

const outputPerm = 0o644

// renameFunc is swapped in tests.
var renameFunc = os.Rename

// transcodeAtomic has tc write into a temporary file next to dst, checks
// the result against target and renames it over dst. The temporary file is
// removed unless the rename succeeded, including when tc panics.
func transcodeAtomic(ctx context.Context, tc toolchain.Toolchain, src, dst string, target audio.Target) error {
	dir, name := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}

	// Leading dot keeps the temp file out of ordinary listings.
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tc.Transcode(ctx, src, tmpName, target); err != nil {
		return err
	}

	h, err := wav.Inspect(tmpName)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	if err := h.Matches(target); err != nil {
		return err
	}

	// CreateTemp makes the file 0600.
	if err := os.Chmod(tmpName, outputPerm); err != nil {
		return err
	}

	if err := renameFunc(tmpName, dst); err != nil {
		return fmt.Errorf("move into place: %w", err)
	}
	renamed = true

	return nil
}
