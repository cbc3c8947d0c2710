package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the envchecker banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()
	// Green to cyan, matching the success palette of the report.
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ _ ____   __", "#34d399"},
		{" / _ \\ '_ \\ \\ / /", "#2dd4bf"},
		{"|  __/ | | \\ V / ", "#22d3ee"},
		{" \\___|_| |_|\\_/  checker", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("  v%s", version)).Faint())
	fmt.Fprintln(w)
}
