package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wbrown/img2sketch/pipeline"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// printResult writes one line per result.
func printResult(w io.Writer, res pipeline.Result) {
	if res.Status {
		fmt.Fprintf(w, "%s Video generated at: %s\n", styleSuccess.Render(iconSuccess), res.Message)
		return
	}
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), res.Message)
}

// printSplitLens shows the resolution line and the choices, marking the
// preferred one.
func printSplitLens(w io.Writer, info pipeline.SplitLensInfo) {
	fmt.Fprintln(w, styleTitle.Render(info.Display))
	parts := make([]string, len(info.SplitLens))
	for i, d := range info.SplitLens {
		s := strconv.Itoa(d)
		if d == info.Default {
			parts[i] = styleNumber.Render("[" + s + "]")
		} else {
			parts[i] = s
		}
	}
	fmt.Fprintf(w, "%s %s\n", styleDim.Render("split lengths:"), strings.Join(parts, " "))
}
