package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	domainErrors "github.com/thomas-vilte/github2range/internal/errors"
	"github.com/thomas-vilte/github2range/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

const (
	stepMarker = "▸"
	itemMarker = "•"
	warnMarker = "!"
)

// Printer writes the human-readable run report. It never decides anything,
// it only formats.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Step prints a top-level progress line.
func (p *Printer) Step(msg string) {
	_, _ = Info.Fprintf(p.w, "%s %s\n", stepMarker, msg)
}

// Item prints a detail line under the current step.
func (p *Printer) Item(msg string) {
	_, _ = Dim.Fprintf(p.w, "%s %s\n", itemMarker, msg)
}

func (p *Printer) Warn(msg string) {
	_, _ = Warning.Fprintf(p.w, "%s %s\n", warnMarker, msg)
}

func (p *Printer) Done(msg string) {
	_, _ = Success.Fprintf(p.w, "%s %s\n", stepMarker, msg)
}

// Raw prints msg as is, e.g. a JSON payload.
func (p *Printer) Raw(msg string) {
	_, _ = fmt.Fprintln(p.w, msg)
}

// Field prints an aligned "label: value" pair.
func (p *Printer) Field(label, value string) {
	_, _ = fmt.Fprintf(p.w, "%-28s %s\n", Accent.Sprint(label+":"), value)
}

// HandleAppError prints err to w and, for an AppError, its suggestion.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	_, _ = Error.Fprintf(w, "ERROR: %v\n", err)

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Suggestion != "" {
		msg := "Suggestion: " + appErr.Suggestion
		if t != nil {
			msg = t.GetMessage("error_suggestion", 0, map[string]interface{}{"Suggestion": appErr.Suggestion})
		}
		_, _ = Dim.Fprintln(w, msg)
	}
}
