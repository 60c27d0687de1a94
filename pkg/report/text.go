package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nsxbet/changelog-linter/pkg/linter"
)

// TextReporter writes a human readable report. Colors follow
// color.NoColor, which is off when stdout is not a terminal.
type TextReporter struct{}

func (*TextReporter) Report(w io.Writer, results []*linter.Result) error {
	total := 0
	for _, result := range results {
		if result.Pass {
			fmt.Fprintf(w, "%s %s\n", color.GreenString("✔"), result.Location)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", color.RedString("✘"), result.Location)
		for _, v := range result.Violations {
			loc := v.ChangeLog
			if v.ChangeSet != "" {
				loc += "::" + v.ChangeSet
			}
			fmt.Fprintf(w, "\t%s [%s] %s\n", loc, color.New(color.FgYellow, color.Bold).Sprint(v.Rule), v.Message)
		}
		total += len(result.Violations)
	}

	if total == 0 {
		fmt.Fprintln(w, color.GreenString("No changelog violations found."))
		return nil
	}
	fmt.Fprintf(w, "\n%s found %d violations.\n", color.RedString("✘"), total)
	return nil
}
