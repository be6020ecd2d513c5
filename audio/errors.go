// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidTarget  = errors.New("invalid target format")
	ErrNoChannels     = errors.New("source reports no channels")
)
