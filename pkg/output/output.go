package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/iocheck/pkg/check"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, dim, reset = "", "", "", "", ""
	}
}

// Render formats a checker result as indented plain text. The output is a
// pure function of the result: no reordering, no filtering, no colour.
func Render(r *check.Result) string {
	return render(r, func(s check.Status) string { return string(s) })
}

// PrintResult writes the rendered result to w, colouring status words when
// the terminal supports it.
func PrintResult(w io.Writer, r *check.Result) {
	_, _ = fmt.Fprintln(w, render(r, colorStatus))
}

func colorStatus(s check.Status) string {
	color := ""
	switch s {
	case check.StatusPass:
		color = green
	case check.StatusFail:
		color = red
	case check.StatusToEvaluate:
		color = yellow
	case check.StatusUndefined:
		color = dim
	}
	if color == "" {
		return string(s)
	}
	return color + string(s) + reset
}

func render(r *check.Result, status func(check.Status) string) string {
	checks := r.Checks()

	var b strings.Builder
	if len(checks) > 1 {
		b.WriteString("Results")
	} else {
		b.WriteString("Result")
	}
	b.WriteString(" from ")
	b.WriteString(r.Title)
	b.WriteString("\n")

	for _, c := range checks {
		if cmd := strings.TrimSpace(c.Command); cmd != "" {
			b.WriteString("\n\t")
			b.WriteString(cmd)
		}
		b.WriteString("\n\t\tStatus: ")
		b.WriteString(status(c.Status))

		b.WriteString("\n\t\tExpected: \n\t\t\t")
		if expected := strings.TrimSpace(c.Expected); expected == "" {
			b.WriteString("-")
		} else {
			b.WriteString(expected)
		}

		// Lines keep their indentation; only the block is trimmed.
		b.WriteString("\n\t\tResult: ")
		if result := strings.TrimSpace(c.Result); result == "" {
			b.WriteString("\n\t\t\t-")
		} else {
			for _, line := range strings.Split(result, "\n") {
				b.WriteString("\n\t\t\t")
				b.WriteString(line)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
