// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
)

// ErrMalformedFrame reports a frame go-mp3 could not parse without
// panicking. The stream cannot be read past it.
var ErrMalformedFrame = errors.New("malformed mp3 frame")

// recoverFrame turns a go-mp3 panic into ErrMalformedFrame. It must be
// deferred directly.
func recoverFrame(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("decode mp3: %w: %v", ErrMalformedFrame, p)
	}
}
