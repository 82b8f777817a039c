package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/williambechay/portfolio/internal/ui/model"
)

// readSecret reads a line without echo when stdin is a terminal, and a plain
// line otherwise.
func readSecret(prompt string, in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// printToast writes a toast as one or two lines.
func printToast(w io.Writer, t model.Toast) {
	prefix := "✓"
	if t.Destructive() {
		prefix = "✗"
	}
	fmt.Fprintf(w, "%s %s\n", prefix, t.Title)
	if t.Description != "" {
		fmt.Fprintf(w, "  %s\n", t.Description)
	}
}
