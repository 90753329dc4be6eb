package pwmcheck

import (
	"context"
	"strings"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/probe"
)

const (
	// Title is the heading of the PWM report.
	Title = "PWM Detection"
	// DefaultSysfsRoot is where the kernel lists PWM controllers.
	DefaultSysfsRoot = "/sys/class/pwm"
)

// Check reports whether PWM is enabled and exposed.
type Check struct {
	Probe     *probe.Prober
	SysfsRoot string   // default: DefaultSysfsRoot
	Extra     []string // additional commands shown for human evaluation
}

// Detect checks the boot overlay, the sysfs controllers and the pin functions.
func (c *Check) Detect(ctx context.Context) *check.Result {
	root := c.SysfsRoot
	if root == "" {
		root = DefaultSysfsRoot
	}

	result := check.NewResult(Title,
		c.Probe.ConfigSetting("dtoverlay=pwm", "PWM", "dtoverlay=pwm (or dtoverlay=pwm-2chan for 2-channel PWM)"),
		c.Probe.Entries(ctx, root, "pwm", "ls -l "+strings.TrimSuffix(root, "/")+"/", "One or more pwmchipX (X = number)"),
		c.pinFunctions(ctx),
	)
	for _, cmd := range c.Extra {
		result.Add(c.Probe.WithCommand(ctx, cmd, "PWM information"))
	}
	return result
}

// pinFunctions filters `pinctrl` output for lines muxed to a PWM function.
func (c *Check) pinFunctions(ctx context.Context) check.Check {
	var lines check.Details
	for _, line := range strings.Split(c.Probe.Run(ctx, "pinctrl").Output(), "\n") {
		if strings.Contains(line, "PWM") {
			lines.Add(strings.TrimSpace(line))
		}
	}
	return check.PassIf(!lines.Empty(),
		"pinctrl | grep PWM",
		"GPIO line(s) with PWM function (e.g., GPIO18 = PWM0_CHAN2)",
		lines.String())
}
