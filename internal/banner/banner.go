// Package banner prints the startup and shutdown messages of the server.
package banner

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"
)

// innerWidth is the number of columns between the box borders.
const innerWidth = 58

var titleColor = color.New(color.FgCyan, color.Bold)

// Startup returns the banner lines for a server listening on port.
func Startup(title string, port int) []string {
	return Box(title, []string{
		fmt.Sprintf("Server running at: http://localhost:%d", port),
		"",
		"Press Ctrl+C to stop the server",
	})
}

// Box frames the title and body lines in a double-line box. Lines wider
// than the box widen it; narrower lines are padded by display width, so
// East Asian wide characters stay aligned.
func Box(title string, body []string) []string {
	w := innerWidth
	for _, l := range append([]string{title}, body...) {
		if n := DisplayWidth(l) + 2; n > w {
			w = n
		}
	}

	rule := strings.Repeat("═", w)
	lines := []string{
		"╔" + rule + "╗",
		"║" + center(title, w) + "║",
		"╠" + rule + "╣",
	}
	for _, l := range body {
		lines = append(lines, "║  "+pad(l, w-2)+"║")
	}
	return append(lines, "╚"+rule+"╝")
}

// Print writes the lines to w, coloring the title row when w is a terminal.
func Print(w io.Writer, lines []string) {
	fmt.Fprintln(w)
	for i, l := range lines {
		if i == 1 {
			titleColor.Fprintln(w, l)
			continue
		}
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}

// Stopped writes the termination notice.
func Stopped(w io.Writer) {
	fmt.Fprint(w, "\n\nServer stopped.\n")
}

// DisplayWidth returns the number of terminal columns s occupies.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, w int) string {
	if d := w - DisplayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func center(s string, w int) string {
	d := w - DisplayWidth(s)
	if d <= 0 {
		return s
	}
	left := d / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", d-left)
}
