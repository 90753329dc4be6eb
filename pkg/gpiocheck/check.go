package gpiocheck

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/probe"
)

// Title is the heading of the GPIO report.
const Title = "GPIO Detection"

// DefaultTools are the locations probed for gpiodetect, in order.
var DefaultTools = []string{"/usr/bin/gpiodetect", "/usr/local/bin/gpiodetect", "/bin/gpiodetect"}

// Check reports the GPIO chips the kernel exposes.
type Check struct {
	Probe *probe.Prober
	Tools []string   // gpiodetect locations (default: DefaultTools)
	Chips ChipLister // nil skips the character-device enumeration
	Extra []string   // additional commands shown for human evaluation
}

// Detect runs gpiodetect from every known location, then enumerates the
// GPIO character devices directly.
func (c *Check) Detect(ctx context.Context) *check.Result {
	result := check.NewResult(Title, c.gpiodetect(ctx))
	if c.Chips != nil {
		result.Add(c.enumerate())
	}
	for _, cmd := range c.Extra {
		result.Add(c.Probe.WithCommand(ctx, cmd, "GPIO information"))
	}
	return result
}

func (c *Check) gpiodetect(ctx context.Context) check.Check {
	tools := c.Tools
	if len(tools) == 0 {
		tools = DefaultTools
	}

	var outputs []string
	for _, tool := range tools {
		info, err := c.Probe.FS.Stat(tool)
		if err != nil || info.IsDir() {
			continue
		}
		if err := c.Probe.FS.Access(tool, probe.AccessExec); err != nil {
			continue
		}
		if out := c.Probe.Runner.Run(ctx, tool).Output(); out != "" {
			outputs = append(outputs, out)
		}
	}
	slices.Sort(outputs)
	outputs = slices.Compact(outputs)

	return check.PassIf(len(outputs) > 0,
		"gpiodetect",
		"gpiochip0 [pinctrl-bcm2835] (54 lines) or similar",
		strings.Join(outputs, "\n"))
}

func (c *Check) enumerate() check.Check {
	const (
		command  = "Enumerate GPIO character devices"
		expected = "One or more gpiochipN character devices"
	)

	chips, err := c.Chips.Chips()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return check.Fail(command, expected, err.Error())
		}
		return check.Fail(command, expected, fmt.Sprintf("Error listing GPIO chips: %v", err))
	}

	var lines check.Details
	usable := 0
	for _, chip := range chips {
		if chip.Err != nil {
			lines.Addf("%s - error: %v", chip.Name, chip.Err)
			continue
		}
		usable++
		lines.Add(chip.String())
	}
	return check.PassIf(usable > 0, command, expected, lines.String())
}

// ErrUnsupported is returned by ChipLister on platforms without the GPIO character device API.
var ErrUnsupported = errors.New("GPIO character devices are only available on linux")

// ChipInfo describes one GPIO chip.
type ChipInfo struct {
	Name  string // e.g. "gpiochip0"
	Label string // e.g. "pinctrl-bcm2711"
	Lines int
	Err   error // set when the chip could not be opened
}

// String formats the chip the way gpiodetect does.
func (c ChipInfo) String() string {
	return fmt.Sprintf("%s [%s] (%d lines)", c.Name, c.Label, c.Lines)
}

// ChipLister abstracts GPIO chip enumeration for testability.
type ChipLister interface {
	Chips() ([]ChipInfo, error)
}
