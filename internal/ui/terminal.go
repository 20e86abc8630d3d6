package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal is the line-oriented implementation of Notifier and Confirmer,
// and the input source for the shell.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Notify prints the text. Blocking notifications hold the flow until the
// user acknowledges them, the terminal analog of a modal alert.
func (t *Terminal) Notify(sev Severity, text string) {
	fmt.Fprintln(t.out, text)
	if sev == SeverityBlocking {
		fmt.Fprint(t.out, "Press Enter to continue...")
		t.in.ReadString('\n')
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (t *Terminal) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// ReadLine prompts and reads one line of input.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}
