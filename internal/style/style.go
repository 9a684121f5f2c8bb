// Copyright (c) 2023 Colin McRae

// Package style provides consistent terminal styling for qsearch output
// using Lipgloss. A search that finds nothing is a normal outcome and is
// rendered apart from errors.
package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	// Success style for relations and product forms that were found
	Success = lipgloss.NewStyle().
		Foreground(colorPass).
		Bold(true)

	// Warning style for inexact conversions
	Warning = lipgloss.NewStyle().
		Foreground(colorWarn).
		Bold(true)

	// Error style for failures
	Error = lipgloss.NewStyle().
		Foreground(colorFail).
		Bold(true)

	// Info style for analysis headings
	Info = lipgloss.NewStyle().
		Foreground(colorAccent)

	// Dim style for searches that found nothing
	Dim = lipgloss.NewStyle().
		Foreground(colorMuted)

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().
		Bold(true)

	SuccessPrefix  = Success.Render("✓")
	WarningPrefix  = Warning.Render("⚠")
	ErrorPrefix    = Error.Render("✗")
	NotFoundPrefix = Dim.Render("○")
	ArrowPrefix    = Info.Render("→")
)

// Heading writes the title of an analysis
func Heading(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", ArrowPrefix, Info.Render(fmt.Sprintf(format, args...)))
}

// Found writes one line of a successful result
func Found(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", SuccessPrefix, fmt.Sprintf(format, args...))
}

// Inexact writes a result that only partly explains its input
func Inexact(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", WarningPrefix, fmt.Sprintf(format, args...))
}

// NotFound writes the outcome of a search that found nothing
func NotFound(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", NotFoundPrefix, Dim.Render(fmt.Sprintf(format, args...)))
}

// Failed writes an error
func Failed(w io.Writer, err error) {
	fmt.Fprintf(w, "  %s %s\n", ErrorPrefix, Error.Render(err.Error()))
}
