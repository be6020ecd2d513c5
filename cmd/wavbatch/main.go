// SPDX-License-Identifier: EPL-2.0

// Command wavbatch converts every MP3 file in a folder to 16 kHz mono WAV.
//
//	wavbatch --input_folder podcasts --output_folder podcasts-wav
//
// Folders that are not given on the command line are asked for on stdin.
// See wavbatch -h for the environment variables that pick the toolchain and
// the log format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/wavbatch"
	"github.com/ik5/wavbatch/internal/config"
	"github.com/ik5/wavbatch/internal/logging"
	"github.com/ik5/wavbatch/toolchain"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer,
	getenv func(string) string,
) int {
	// Bootstrap: no logger yet, errors go straight to stderr.
	cfg := config.Default()
	if err := cfg.FromEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "wavbatch: %v\n", err)
		return exitFatal
	}

	set, err := config.ParseFlags("wavbatch", args, stderr, &cfg)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "wavbatch: %v\n", err)
		return exitUsage
	}

	if err := cfg.Resolve(set, config.NewLinePrompter(stdin, stdout)); err != nil {
		fmt.Fprintf(stderr, "wavbatch: %v\n", err)
		return exitFatal
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "wavbatch: %v\n", err)
		return exitFatal
	}

	log := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	tc, err := toolchain.New(cfg.Toolchain, cfg.Paths)
	if err != nil {
		log.Error("toolchain", "error", err)
		return exitFatal
	}

	conv := wavbatch.NewConverter(tc, log)
	conv.FileTimeout = cfg.FileTimeout

	_, err = conv.Convert(ctx, cfg.InputFolder, cfg.OutputFolder)

	var unavailable *toolchain.UnavailableError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		log.Warn("interrupted")
		return exitInterrupted
	case errors.As(err, &unavailable):
		log.Error("codec toolchain unavailable", "toolchain", unavailable.Tool, "error", unavailable.Err)
		fmt.Fprintf(stderr, "\nError: %s\n", unavailable.Guidance())
		return exitFatal
	default:
		log.Error("conversion aborted", "error", err)
		return exitFatal
	}
}
