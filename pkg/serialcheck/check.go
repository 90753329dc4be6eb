package serialcheck

import (
	"context"
	"errors"
	"io/fs"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/probe"
)

// Title is the heading of the serial report.
const Title = "Serial Detection"

// DefaultDevices are the serial device nodes checked, in order.
var DefaultDevices = []string{"/dev/ttyS0", "/dev/ttyAMA0", "/dev/ttyUSB0", "/dev/ttyACM0"}

// Check reports whether a UART is enabled and usable.
type Check struct {
	Probe   *probe.Prober
	Devices []string // default: DefaultDevices
	Extra   []string // additional commands shown for human evaluation
}

// Detect checks the boot setting, the device tree and the device nodes.
func (c *Check) Detect(ctx context.Context) *check.Result {
	result := check.NewResult(Title,
		c.Probe.ConfigSetting("enable_uart", "UART", "enable_uart=1"),
		c.Probe.DeviceTree(ctx, "uart", "UART serial controller"),
		c.deviceNodes(),
	)
	for _, cmd := range c.Extra {
		result.Add(c.Probe.WithCommand(ctx, cmd, "Serial port information"))
	}
	return result
}

// deviceNodes passes when at least one node exists and can be opened for
// reading or writing by the current user.
func (c *Check) deviceNodes() check.Check {
	devices := c.Devices
	if len(devices) == 0 {
		devices = DefaultDevices
	}

	var lines check.Details
	usable := false
	for _, dev := range devices {
		if _, err := c.Probe.FS.Stat(dev); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				lines.Addf("%s not available", dev)
			} else {
				lines.Addf("%s - error checking: %v", dev, err)
			}
			continue
		}

		readable := c.Probe.FS.Access(dev, probe.AccessRead) == nil
		writable := c.Probe.FS.Access(dev, probe.AccessWrite) == nil
		switch {
		case readable && writable:
			lines.Addf("%s exists (readable, writable)", dev)
		case readable:
			lines.Addf("%s exists (readable)", dev)
		case writable:
			lines.Addf("%s exists (writable)", dev)
		default:
			lines.Addf("%s exists (no permissions)", dev)
		}
		if readable || writable {
			usable = true
		}
	}

	return check.PassIf(usable,
		"Checking serial device availability",
		"/dev/ttyS0 exists (readable, writable)",
		lines.String())
}
