package cli

import (
	"errors"
	"io"

	"github.com/fatih/color"

	"github.com/example/routesim/internal/core/command"
)

// PrintError writes err as a single human-readable line.
// Rejected input gets the parse-error prefix; anything else is reported as Error.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed)

	var perr *command.ParseError
	if errors.As(err, &perr) {
		red.Fprintf(w, "There was an error parsing the input: %v\n", err)
		return
	}
	red.Fprintf(w, "Error: %v\n", err)
}
