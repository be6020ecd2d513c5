// SPDX-License-Identifier: EPL-2.0

package audio

// Normalize wraps src so that it yields samples at target's sample rate and
// channel count. Stages whose parameter already matches are skipped.
//
// When channels are reduced the remix runs before the resampler so the
// interpolation works on fewer channels; when they grow it runs after.
// Both stages are linear, so the order does not change the result beyond
// rounding.
func Normalize(src Source, target Target) Source {
	out := src

	shrink := target.Channels < src.Channels()
	if shrink {
		out = NewRemixer(out, target.Channels)
	}
	if out.SampleRate() != target.SampleRate {
		out = NewResampler(out, target.SampleRate)
	}
	if !shrink && out.Channels() != target.Channels {
		out = NewRemixer(out, target.Channels)
	}

	return out
}
