// Package repl implements the interactive command loop for lexigraph,
// using pterm for all terminal output.
package repl

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/sinanm89/lexigraph/internal/engine/query"
)

// UI wraps pterm components for the interactive session.
type UI struct {
	quiet bool
}

// NewUI creates a UI instance. When quiet is true, pterm's default printers
// are silenced.
func NewUI(quiet bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet}
}

// Banner prints the application banner at startup.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("lexi", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("graph", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint("In-memory string indexing engine"))
	fmt.Println()
}

// Section prints a section header.
func (u *UI) Section(title string) {
	pterm.DefaultSection.Println(title)
}

func (u *UI) Info(format string, args ...interface{}) {
	pterm.Info.Println(fmt.Sprintf(format, args...))
}

func (u *UI) Success(format string, args ...interface{}) {
	pterm.Success.Println(fmt.Sprintf(format, args...))
}

func (u *UI) Warning(format string, args ...interface{}) {
	pterm.Warning.Println(fmt.Sprintf(format, args...))
}

func (u *UI) Error(format string, args ...interface{}) {
	pterm.Error.Println(fmt.Sprintf(format, args...))
}

// Prompt reads one line of input, labelled with the given prompt text.
func (u *UI) Prompt(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(label)
}

// Result renders a query result as a table of ids (and, for similarity
// queries, their distances), along with the elapsed time and any
// out-of-range notice.
func (u *UI) Result(res query.Result) {
	if res.OutOfRange {
		u.Warning("query range falls entirely outside observed ids")
	}
	if len(res.IDs) == 0 {
		pterm.Info.Println("no matches")
	} else {
		data := pterm.TableData{{"ID", "Distance"}}
		for _, id := range res.IDs {
			dist := "-"
			if d, ok := res.Distances[id]; ok {
				dist = fmt.Sprintf("%d", d)
			}
			data = append(data, []string{fmt.Sprintf("%d", id), dist})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	pterm.FgGray.Printf("(%d results, %s)\n", len(res.IDs), res.Elapsed)
}

// WordTable renders a plain list of words.
func (u *UI) WordTable(words []string) {
	if len(words) == 0 {
		pterm.Info.Println("no words")
		return
	}
	data := pterm.TableData{{"Word"}}
	for _, w := range words {
		data = append(data, []string{w})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// Spinner starts a spinner for a long-running operation (e.g. rebuild).
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	return spinner
}
