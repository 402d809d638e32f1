package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TerminalPrompter reads credentials from an interactive terminal. The
// password is read without echo.
type TerminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter bound to in and out, or nil when in
// is not a terminal.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	if in == nil || !isTerminal(in.Fd()) {
		return nil
	}
	return &TerminalPrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *TerminalPrompter) Username() (string, error) {
	fmt.Fprint(p.out, "TMDb username: ")
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *TerminalPrompter) Password() (string, error) {
	fmt.Fprint(p.out, "TMDb password: ")
	secret, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
