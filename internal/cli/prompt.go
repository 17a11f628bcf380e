package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user a single-line question
type Prompter interface {
	Prompt(msg string) (string, error)
}

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter writes the question to out and reads one line from in.
// End of input counts as an empty answer.
func NewLinePrompter(in io.Reader, out io.Writer) Prompter {
	return linePrompter{in: bufio.NewReader(in), out: out}
}

func (p linePrompter) Prompt(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question, defaulting to no
func confirm(p Prompter, msg string) (bool, error) {
	answer, err := p.Prompt(msg + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
