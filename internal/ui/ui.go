// Package ui is the human-facing output side channel: leveled log/warn/
// error lines with ANSI styling, plus recipe listings. Styling is cosmetic
// only; every message is also valid plain text when color is disabled.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

// DisableColorFromEnv applies the NO_COLOR convention. Explicit flags use
// DisableColor directly.
func DisableColorFromEnv() {
	if os.Getenv("NO_COLOR") != "" {
		DisableColor()
	}
}

// DisableColor turns off all ANSI styling process-wide.
func DisableColor() {
	color.Disable()
}

// Printer writes leveled, human-readable messages. The zero value is not
// usable; construct with New.
type Printer struct {
	w io.Writer
}

// New returns a printer writing to w, conventionally stderr.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Log writes an informational line.
func (p *Printer) Log(format string, args ...any) {
	fmt.Fprintln(p.w, color.OpFuzzy.Sprint("[log]"), fmt.Sprintf(format, args...))
}

// Warn writes a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, color.Yellow.Sprint("[warn]"), fmt.Sprintf(format, args...))
}

// Error writes an error line. It does not exit; callers decide the exit
// status.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, color.Magenta.Sprintf("[error] %s", fmt.Sprintf(format, args...)))
}

// Hint writes a dim remediation hint under a preceding error or warning.
func (p *Printer) Hint(format string, args ...any) {
	fmt.Fprintln(p.w, color.OpFuzzy.Sprintf("(%s)", fmt.Sprintf(format, args...)))
}

// Entry is one row of a recipe listing.
type Entry struct {
	Name        string
	Description string
}

// ListRecipes enumerates recipes in the classic `-- name` format with the
// description indented underneath. When all is false, undescribed recipes
// are skipped. Listings go to w (conventionally stdout), not to a
// Printer's message stream.
func ListRecipes(w io.Writer, entries []Entry, all bool) {
	for _, e := range entries {
		if e.Description == "" && !all {
			continue
		}
		fmt.Fprintln(w, color.Bold.Sprintf("-- %s", e.Name))
		if e.Description != "" {
			fmt.Fprintf(w, "   %s\n", e.Description)
		}
	}
}
