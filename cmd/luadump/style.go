package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	sectionStyle = lipgloss.NewStyle().
			Underline(true)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF5F"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFD75F"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var stdoutIsTerminal int32 = -1 // -1 = unchecked, 0 = no, 1 = yes

func isTerminal(fd int, cached *int32) bool {
	if v := atomic.LoadInt32(cached); v >= 0 {
		return v == 1
	}
	result := term.IsTerminal(fd)
	if result {
		atomic.StoreInt32(cached, 1)
	} else {
		atomic.StoreInt32(cached, 0)
	}
	return result
}

// colorEnabled resolves the -color flag. With "always" on a non-terminal,
// lipgloss is forced to emit ANSI colors.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "never":
		return false, nil
	case "always":
		if !isTerminal(int(os.Stdout.Fd()), &stdoutIsTerminal) {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
		return true, nil
	case "auto", "":
		return isTerminal(int(os.Stdout.Fd()), &stdoutIsTerminal), nil
	default:
		return false, fmt.Errorf("invalid -color value %q (want auto, always or never)", mode)
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// styleLine colors one listing line by its shape. Column tabs are kept so
// the output still aligns like the plain listing.
func styleLine(l string) string {
	switch {
	case strings.HasPrefix(l, "main <"), strings.HasPrefix(l, "function <"):
		return headerStyle.Render(l)
	case isSummary(l):
		return summaryStyle.Render(l)
	case strings.HasPrefix(l, "constants ("), strings.HasPrefix(l, "locals ("), strings.HasPrefix(l, "upvalues ("):
		return sectionStyle.Render(l)
	}

	f := strings.Split(l, "\t")
	// "", pc, [line], word, name, operands, "; comment"
	if len(f) < 5 || f[0] != "" || !strings.HasPrefix(f[2], "[") {
		return l
	}
	f[2] = lineStyle.Render(f[2])
	f[3] = wordStyle.Render(f[3])
	f[4] = opStyle.Render(f[4])
	if len(f) > 6 {
		f[6] = commentStyle.Render(f[6])
	}
	return strings.Join(f, "\t")
}

// isSummary reports whether l has the shape of a prototype summary line,
// "N[+] param(s), N slot(s), ...".
func isSummary(l string) bool {
	i := 0
	for i < len(l) && l[i] >= '0' && l[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	rest := strings.TrimPrefix(l[i:], "+")
	if !strings.HasPrefix(rest, " param") {
		return false
	}
	_, after, ok := strings.Cut(rest, ", ")
	return ok && after != "" && after[0] >= '0' && after[0] <= '9' && strings.Contains(after, " slot")
}
