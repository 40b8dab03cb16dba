package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads operator answers from the command's input stream, so
// tests can script an interaction by providing a buffer.
type Prompter struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from r and echoing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{raw: r, in: bufio.NewReader(r), out: w}
}

// Line asks for a single line. An empty answer yields def. The default
// is shown in brackets when non-empty. When the input is exhausted the
// returned error is io.EOF, so interactive loops can stop instead of
// spinning on an empty reader.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return def, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// YesNo asks a yes/no question defaulting to no. Both "y" and "s"
// (sim) count as yes, to match operator habit from the old register.
func (p *Prompter) YesNo(label string) bool {
	answer, err := p.Line(label+" (y/N)", "")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// Password asks for a secret. When the input is an interactive
// terminal the echo is disabled; otherwise it reads a plain line
// (tests, pipes).
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
