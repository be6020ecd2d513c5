// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrFormatMismatch   = errors.New("WAV format does not match target")
	ErrUnsupportedDepth = errors.New("unsupported bit depth")
)
