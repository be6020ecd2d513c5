// SPDX-License-Identifier: EPL-2.0

package wavbatch

import (
	"errors"
	"fmt"
)

var (
	ErrInputFolder  = errors.New("input folder")
	ErrOutputFolder = errors.New("output folder")

	// ErrToolchainPanic marks a file whose conversion panicked. The batch
	// carries on with the next file.
	ErrToolchainPanic = errors.New("toolchain panicked")
)

// FolderError is a fatal problem with the input or output folder. Kind is
// ErrInputFolder or ErrOutputFolder.
type FolderError struct {
	Kind error
	Path string
	Err  error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Err)
}

func (e *FolderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
