package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// lineReader is satisfied by *term.Terminal and by bufferedLines.
type lineReader interface {
	ReadLine() (string, error)
}

type bufferedLines struct {
	r *bufio.Reader
}

func (b bufferedLines) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Terminal renders screens as text and reads the holder's answers line by
// line. Lost input (EOF) always counts as Reject.
type Terminal struct {
	in  lineReader
	out io.Writer
}

// NewTerminal drives the display over arbitrary streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufferedLines{r: bufio.NewReader(in)}, out: out}
}

// NewConsole drives the display on the process terminal. When stdin is a
// TTY it is switched to raw mode for line editing; restore must be called
// before exit.
func NewConsole() (d *Terminal, restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return NewTerminal(os.Stdin, os.Stdout), func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("console raw mode: %w", err)
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "> ")
	return &Terminal{in: t, out: t}, func() { _ = term.Restore(fd, state) }, nil
}

func (t *Terminal) ShowReview(r Review) bool {
	t.printf("\r\n%s %s%s\r\n", r.Icon, r.Title[0], r.Title[1])
	width := 0
	for _, f := range r.Fields {
		width = max(width, len(f.Name))
	}
	for _, f := range r.Fields {
		t.printf("  %-*s  %s\r\n", width, f.Name, f.Value)
	}

	for {
		t.printf("%s %s (a) / %s %s (r)\r\n", r.ApproveIcon, r.ApproveLabel, r.RejectIcon, r.RejectLabel)
		line, err := t.in.ReadLine()
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", strings.ToLower(r.ApproveLabel):
			return true
		case "r", strings.ToLower(r.RejectLabel):
			return false
		}
	}
}

func (t *Terminal) Popup(msg string) {
	t.printf("*** %s ***\r\n", msg)
}

func (t *Terminal) ShowMenu(items []string) int {
	for {
		for i, item := range items {
			t.printf("  %d. %s\r\n", i+1, item)
		}
		line, err := t.in.ReadLine()
		if err != nil {
			return -1
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(items) {
			return n - 1
		}
	}
}

func (t *Terminal) ScrollMessage(msg string) {
	t.printf("%s\r\n(enter)\r\n", msg)
	_, _ = t.in.ReadLine()
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}
