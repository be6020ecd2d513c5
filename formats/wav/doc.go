// SPDX-License-Identifier: EPL-2.0

// Package wav writes and inspects PCM WAV files.
//
// The RIFF container itself is handled by github.com/go-audio/wav. Encode
// drains an audio.Source into an io.WriteSeeker (the header is patched with
// the final sizes on completion):
//
//	f, _ := os.Create("out.wav")
//	frames, err := wav.Encode(f, audio.Normalize(src, audio.SpeechTarget), 16)
//
// Inspect reads back the header of a file so callers can check that an
// encoder, external or not, produced the expected layout:
//
//	h, err := wav.Inspect("out.wav")
//	if err == nil {
//	    err = h.Matches(audio.SpeechTarget)
//	}
package wav
