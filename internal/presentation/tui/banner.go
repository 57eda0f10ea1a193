package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the campaign guide banner to w, colored for w's profile.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{`   ___                            _            `, "#818cf8"},
		{`  / __|__ _ _ __  _ __  __ _ (_)__ _ _ _      `, "#a78bfa"},
		{` | (__/ _' | '  \| '_ \/ _' || / _' | ' \     `, "#c084fc"},
		{`  \___\__,_|_|_|_| .__/\__,_||_\__, |_||_|    `, "#e879f9"},
		{`                 |_|  Guide  |___/          `, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors the label of a trace status for w's profile.
func Status(w io.Writer, status string) string {
	out := termenv.NewOutput(w)
	color := map[string]string{
		"completed":   "#22c55e",
		"started":     "#38bdf8",
		"playable":    "#facc15",
		"locked":      "#9ca3af",
		"skipped":     "#f87171",
		"placeholder": "#9ca3af",
	}[status]
	if color == "" {
		return status
	}
	return out.String(status).Foreground(out.Color(color)).String()
}
