package console

import (
	"bufio"
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// ScannerReader reads newline-terminated commands from a non-interactive
// source such as a pipe. It shows no prompt.
type ScannerReader struct {
	sc *bufio.Scanner
}

// NewScannerReader returns a LineReader over r.
func NewScannerReader(r io.Reader) *ScannerReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ScannerReader{sc: sc}
}

// Readline returns the next line without its terminator, or io.EOF.
func (s *ScannerReader) Readline() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// TerminalReader reads commands from an interactive terminal with line
// editing and history. An interrupt clears the current line.
type TerminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader opens a readline session showing prompt.
func NewTerminalReader(prompt string) (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, err
	}
	return &TerminalReader{rl: rl}, nil
}

// Readline returns the next line, an empty line after an interrupt, or
// io.EOF.
func (t *TerminalReader) Readline() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

// Close restores the terminal.
func (t *TerminalReader) Close() error {
	return t.rl.Close()
}
