package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errCancelled = errors.New("cancelled")

// prompter reads answers line by line. Reads happen on a background goroutine so a
// prompt can be abandoned when its context is cancelled (Ctrl-C inside a form).
type prompter struct {
	out   io.Writer
	lines chan string
	eof   chan struct{}
	stdin *os.File
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{out: out, lines: make(chan string), eof: make(chan struct{})}
	if f, ok := in.(*os.File); ok {
		p.stdin = f
	}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		close(p.eof)
	}()
	return p
}

func (p *prompter) readLine(ctx context.Context) (string, error) {
	select {
	case line := <-p.lines:
		return line, nil
	case <-p.eof:
		return "", io.EOF
	case <-ctx.Done():
		return "", errCancelled
	}
}

// ask prints label and returns the trimmed answer, or def when the answer is empty.
func (p *prompter) ask(ctx context.Context, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// confirm defaults to no unless defYes.
func (p *prompter) confirm(ctx context.Context, question string, defYes bool) (bool, error) {
	hint := "y/N"
	if defYes {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, hint)
	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// secret reads a password without echo when stdin is a terminal.
func (p *prompter) secret(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.stdin == nil || !term.IsTerminal(int(p.stdin.Fd())) {
		return p.readLine(ctx)
	}

	fd := int(p.stdin.Fd())
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}
	type result struct {
		pw  []byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pw, err := term.ReadPassword(fd)
		ch <- result{pw, err}
	}()

	select {
	case r := <-ch:
		fmt.Fprintln(p.out)
		return string(r.pw), r.err
	case <-ctx.Done():
		_ = term.Restore(fd, state)
		fmt.Fprintln(p.out)
		return "", errCancelled
	}
}
