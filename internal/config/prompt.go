// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	InputPrompt  = "Enter the path to your MP3 files folder: "
	OutputPrompt = "Enter the path where WAV files should be saved: "
)

// Prompter asks the user for one line of input.
type Prompter interface {
	Prompt(question string) (string, error)
}

// LinePrompter writes the question to Out and reads the answer from In.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt returns the answer with surrounding whitespace removed. A final
// line without newline is accepted; no input at all is io.ErrUnexpectedEOF.
func (p *LinePrompter) Prompt(question string) (string, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	}

	return strings.TrimSpace(line), nil
}

// Resolve asks for every folder flag that was not on the command line and
// normalizes both paths.
func (c *Config) Resolve(set Flags, p Prompter) error {
	if !set.InputSet {
		v, err := p.Prompt(InputPrompt)
		if err != nil {
			return fmt.Errorf("read input folder: %w", err)
		}
		c.InputFolder = v
	}

	if !set.OutputSet {
		v, err := p.Prompt(OutputPrompt)
		if err != nil {
			return fmt.Errorf("read output folder: %w", err)
		}
		c.OutputFolder = v
	}

	c.InputFolder = NormalizeDirArg(c.InputFolder)
	c.OutputFolder = NormalizeDirArg(c.OutputFolder)

	return nil
}
