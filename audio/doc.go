// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks used to normalize
// decoded audio before it is written out.
//
// # Sources
//
// Every decoder and processing stage implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1]. Stages wrap one
// another, and closing the outermost stage closes the whole chain.
//
// # Normalizing
//
// Normalize chains the stages needed to reach a Target:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	out := audio.Normalize(src, audio.SpeechTarget) // 16 kHz, mono
//
// The individual stages are also exported:
//   - Resampler changes the sample rate (cubic interpolation, low-pass
//     filtered when downsampling)
//   - Remixer changes the channel count; NewMonoMixer folds to mono
//
// # Registry
//
// Registry maps file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register(".mp3", mp3.Decoder{})
//	dec, ok := reg.Lookup("Song.MP3")
//
// # End of stream
//
// ReadSamples reports the end of a stream with io.EOF, which may arrive
// together with the last samples:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    consume(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
