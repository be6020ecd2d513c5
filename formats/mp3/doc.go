// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio into an audio.Source.
//
// Decoding is done by github.com/hajimehoshi/go-mp3; this package only
// adapts its 16-bit PCM byte stream to normalized float samples:
//
//	f, _ := os.Open("track.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an MP3 stream
//	}
//	defer src.Close() // also closes f
//
// The source always reports two channels at the stream's own sample rate;
// mono files come out with identical channels. Use audio.Normalize to reach
// a different layout.
//
// go-mp3 panics on some malformed frames. Decode and ReadSamples report
// those as ErrMalformedFrame instead.
package mp3
