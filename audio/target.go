// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Target describes the PCM layout every converted file must end up with.
type Target struct {
	SampleRate int // Hz
	Channels   int
	BitDepth   int // bits per integer sample
}

// SpeechTarget is 16 kHz mono 16-bit PCM, the layout expected by most speech
// recognition engines.
var SpeechTarget = Target{SampleRate: 16000, Channels: 1, BitDepth: 16}

func (t Target) Validate() error {
	if t.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidTarget, t.SampleRate)
	}
	if t.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidTarget, t.Channels)
	}

	switch t.BitDepth {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: bit depth %d", ErrInvalidTarget, t.BitDepth)
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit", t.SampleRate, t.Channels, t.BitDepth)
}
