package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/rlaunch/internal/placement"
	"github.com/kk-code-lab/rlaunch/internal/search"
	"github.com/kk-code-lab/rlaunch/internal/textutil"
)

const maxNameColumn = 40

func kindOf(r search.Result) string {
	switch {
	case r.IsError:
		return "error"
	case r.IsFolder:
		return "folder"
	}
	return "file"
}

// printResults writes one aligned row per result. Names are sanitized so
// file names cannot inject terminal control sequences.
func printResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}

	names := make([]string, len(results))
	nameWidth := 0
	for i, r := range results {
		names[i] = textutil.Truncate(textutil.SanitizeTerminalText(r.Name), maxNameColumn)
		nameWidth = max(nameWidth, runewidth.StringWidth(names[i]))
	}

	for i, r := range results {
		row := []string{
			runewidth.FillRight(names[i], nameWidth),
			runewidth.FillRight(kindOf(r), len("folder")),
			textutil.SanitizeTerminalText(r.Path),
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(row, "  "), " "))
	}
}

func printPlacement(w io.Writer, st placement.State) {
	point := func(p *placement.Point) string {
		if p == nil {
			return "unset"
		}
		return fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	size := "unset"
	if st.SettingsSize != nil {
		size = fmt.Sprintf("%dx%d", st.SettingsSize.Width, st.SettingsSize.Height)
	}
	fmt.Fprintf(w, "search         %s\n", point(st.Search))
	fmt.Fprintf(w, "settings       %s\n", point(st.Settings))
	fmt.Fprintf(w, "settings-size  %s\n", size)
}
