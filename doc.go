// SPDX-License-Identifier: EPL-2.0

// Package wavbatch converts every MP3 file in a folder into a 16 kHz mono
// WAV file in another folder.
//
// The work for each file is delegated to a toolchain.Toolchain; this package
// owns the batch: it checks the folders, probes the toolchain before writing
// anything, enumerates the sources, and reports one outcome per file. A file
// that fails to convert is reported and skipped, it never stops the batch.
//
//	tc := toolchain.NewFFmpeg("")
//	report, err := wavbatch.Convert(ctx, tc, "podcasts", "podcasts-wav")
//	if err != nil {
//	    // input folder missing, output folder not creatable,
//	    // toolchain unavailable or ctx cancelled
//	}
//	fmt.Println(report.Converted(), "converted,", report.Failed(), "failed")
//
// # Output files
//
// "Episode 1.MP3" becomes "Episode 1.wav": only the extension changes.
// Outputs are written to a hidden temporary file next to the destination,
// checked to be PCM in the target layout, and renamed into place, so an
// interrupted or failed conversion never leaves a partial WAV behind. An
// existing output is replaced.
//
// # Reporting
//
// Progress goes through a Reporter. LogReporter writes one slog record per
// event; every record carries the run_id of the batch.
package wavbatch
