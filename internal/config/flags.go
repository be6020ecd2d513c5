// SPDX-License-Identifier: EPL-2.0

package config

import (
	"flag"
	"fmt"
	"io"
)

// Flags records which folder flags were present on the command line. A flag
// given with an empty value counts as present and is not prompted for.
type Flags struct {
	InputSet  bool
	OutputSet bool
}

// ParseFlags parses args (without the program name) into cfg. Help output
// goes to out; on -h the returned error is flag.ErrHelp.
func ParseFlags(name string, args []string, out io.Writer, cfg *Config) (Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(fs, out) }

	fs.StringVar(&cfg.InputFolder, "input_folder", cfg.InputFolder, "Path to the folder containing MP3 files.")
	fs.StringVar(&cfg.OutputFolder, "output_folder", cfg.OutputFolder,
		"Path to the folder where converted WAV files will be stored.")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if fs.NArg() > 0 {
		return Flags{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var set Flags
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input_folder":
			set.InputSet = true
		case "output_folder":
			set.OutputSet = true
		}
	})

	return set, nil
}

func printUsage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [--input_folder DIR] [--output_folder DIR]\n\n", fs.Name())
	fmt.Fprintln(out, "Batch convert MP3 files to 16 kHz mono WAV.")
	fmt.Fprintln(out, "Folders that are not given are asked for interactively.")
	fmt.Fprintln(out)
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment:")
	fmt.Fprintf(out, "  %-22s ffmpeg (default), sox, native or auto\n", EnvToolchain)
	fmt.Fprintf(out, "  %-22s ffmpeg binary\n", EnvFFmpeg)
	fmt.Fprintf(out, "  %-22s sox binary\n", EnvSoX)
	fmt.Fprintf(out, "  %-22s per-file time limit, e.g. 2m (default none)\n", EnvFileTimeout)
	fmt.Fprintf(out, "  %-22s debug, info (default), warn or error\n", EnvLogLevel)
	fmt.Fprintf(out, "  %-22s text (default) or json\n", EnvLogFormat)
}
