// SPDX-License-Identifier: EPL-2.0

// Package toolchain runs the MP3 to WAV transcode for a single file.
//
// A Toolchain is probed once before a batch starts and then asked to
// transcode each file into a destination path chosen by the caller:
//
//	tc, err := toolchain.New(toolchain.KindFFmpeg, toolchain.Paths{})
//	if err != nil {
//	    return err
//	}
//	if err := tc.Probe(ctx); err != nil {
//	    var ue *toolchain.UnavailableError
//	    if errors.As(err, &ue) {
//	        fmt.Println(ue.Guidance())
//	    }
//	    return err
//	}
//	err = tc.Transcode(ctx, "in.mp3", "out.wav", audio.SpeechTarget)
//
// FFmpeg and SoX shell out to the respective binaries. Native decodes with
// go-mp3 and encodes with go-audio/wav in process, so it never needs
// anything installed. Auto picks the first of them that probes successfully.
package toolchain
