// Package ctl implements the client-side commands for satctl.
// It talks to a running sattrackd over HTTP and WebSocket and renders the
// results to the terminal.
package ctl

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ANSI escape codes for terminal formatting.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// colorEnabled reports whether stdout is a terminal. When output is piped
// or redirected, ANSI escape codes are suppressed.
func colorEnabled() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// colorize wraps text with an ANSI color sequence.
// Returns the text unchanged when color output is disabled.
func colorize(color, text string) string {
	if !colorEnabled() {
		return text
	}
	return color + text + reset
}

// header returns a bold section header, or plain text when color is off.
func header(title string) string {
	if colorEnabled() {
		return bold + title + reset
	}
	return title
}

// activeColor returns the color for an active/inactive flag.
func activeColor(active bool) string {
	if !colorEnabled() {
		return ""
	}
	if active {
		return green
	}
	return red
}

// formatDuration renders a time.Duration as a compact human string like
// "2h 14m 8s" or "45s".
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// table accumulates rows and renders them with aligned columns.
type table struct {
	indent  string
	headers []string
	rows    [][]string
	right   map[int]bool
}

func newTable(indent string, headers ...string) *table {
	return &table{indent: indent, headers: headers, right: make(map[int]bool)}
}

// alignRight right-aligns the given column index.
func (t *table) alignRight(col int) { t.right[col] = true }

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

// flush renders the accumulated table to stdout.
func (t *table) flush() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var hdr strings.Builder
	hdr.WriteString(t.indent)
	for i, h := range t.headers {
		hdr.WriteString(pad(h, widths[i], t.right[i]))
		hdr.WriteString("  ")
	}
	fmt.Println(colorize(dim, hdr.String()))

	for _, r := range t.rows {
		var line strings.Builder
		line.WriteString(t.indent)
		for i, c := range r {
			if i < len(widths) {
				line.WriteString(pad(c, widths[i], t.right[i]))
				line.WriteString("  ")
			}
		}
		fmt.Println(line.String())
	}
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}
