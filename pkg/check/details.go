package check

import (
	"fmt"
	"strings"
)

// Details accumulates evidence lines for a Check's Result field.
type Details []string

// Add appends a line.
func (d *Details) Add(line string) *Details {
	*d = append(*d, line)
	return d
}

// Addf appends a formatted line.
func (d *Details) Addf(format string, args ...any) *Details {
	return d.Add(fmt.Sprintf(format, args...))
}

// Empty reports whether no lines were added.
func (d Details) Empty() bool {
	return len(d) == 0
}

// String joins the lines with newlines.
func (d Details) String() string {
	return strings.Join(d, "\n")
}
