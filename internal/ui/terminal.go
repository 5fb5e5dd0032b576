package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mdp/qrterminal/v3"
	"golang.org/x/term"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// Term prompts on stdin/stdout with numbered menus. It is deliberately
// thin: all decisions live in the session controller.
type Term struct {
	in      *bufio.Reader
	out     io.Writer
	noColor bool
}

func New(noColor bool) *Term {
	return &Term{
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		noColor: noColor,
	}
}

func (t *Term) paint(color, s string) string {
	if t.noColor {
		return s
	}
	return color + s + colorReset
}

// Title prints a section banner.
func (t *Term) Title(s string) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.paint(colorBold, s))
	fmt.Fprintln(t.out, t.paint(colorDim, strings.Repeat("-", len(s))))
}

func (t *Term) Infof(format string, args ...any) {
	fmt.Fprintln(t.out, fmt.Sprintf(format, args...))
}

func (t *Term) Successf(format string, args ...any) {
	fmt.Fprintln(t.out, t.paint(colorGreen, fmt.Sprintf(format, args...)))
}

func (t *Term) Errorf(format string, args ...any) {
	fmt.Fprintln(t.out, t.paint(colorRed, fmt.Sprintf(format, args...)))
}

// Select shows a numbered menu and returns the chosen index.
func (t *Term) Select(prompt string, options []string) (int, error) {
	fmt.Fprintln(t.out)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %s %s\n", t.paint(colorCyan, fmt.Sprintf("%d)", i+1)), opt)
	}
	for {
		fmt.Fprintf(t.out, "%s [1-%d]: ", prompt, len(options))
		line, err := t.in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(t.out, t.paint(colorYellow, "Please enter a number from the list."))
	}
}

// Input reads a line, returning def when the user just presses Enter.
func (t *Term) Input(prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// InputSecret reads without echo when stdin is a terminal, so shared
// secrets do not end up in scrollback.
func (t *Term) InputSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(t.out, "%s: ", prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return t.Input(prompt, "")
}

// Confirm asks a yes/no question.
func (t *Term) Confirm(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.out, "%s [%s]: ", prompt, hint)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Table renders rows with aligned columns.
func (t *Term) Table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(t.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// ShowQR renders a provisioning URI as a scannable terminal QR code.
func (t *Term) ShowQR(uri string) {
	qrterminal.GenerateHalfBlock(uri, qrterminal.L, t.out)
}

// Countdown redraws the current code and its time budget in place.
func (t *Term) Countdown(code string, remaining int) {
	fmt.Fprintf(t.out, "\r\033[K  %s  %s",
		t.paint(colorBold, code),
		t.paint(colorDim, fmt.Sprintf("expires in %2ds (press Enter to go back)", remaining)))
}

// EndCountdown terminates the in-place countdown line.
func (t *Term) EndCountdown() {
	fmt.Fprintln(t.out)
}

// WaitEnter blocks until the user presses Enter.
func (t *Term) WaitEnter() error {
	_, err := t.in.ReadString('\n')
	return err
}
